package discovery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Reasons a publication date could not be resolved.
var (
	ErrDateElementMissing  = errors.New("date element not found")
	ErrDatePatternNotFound = errors.New("date pattern not found")
	ErrDateFormatMismatch  = errors.New("date does not match expected format")
)

// datePattern captures "DD/MM/YYYY" and the site's "HHhMM" time token.
var datePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*(\d{2}h\d{2})`)

const dateLayout = "02/01/2006 15:04"

// Sentinel returns the instant used when an article's date is unknown:
// midnight of 1970-01-01 in loc. It sorts after every real article.
func Sentinel(loc *time.Location) time.Time {
	return time.Date(1970, 1, 1, 0, 0, 0, 0, loc)
}

// ParseDateText finds the date and time tokens in text and returns the
// instant they name as civil time in loc.
func ParseDateText(text string, loc *time.Location) (time.Time, error) {
	match := datePattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDatePatternNotFound, text)
	}

	clean := match[1] + " " + strings.Replace(match[2], "h", ":", 1)
	t, err := time.ParseInLocation(dateLayout, clean, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrDateFormatMismatch, clean, err)
	}
	return t, nil
}

// DateResult is the resolved publication instant of one article. When Err
// is set the instant is the sentinel.
type DateResult struct {
	PublishedAt time.Time
	// Raw text of the date element, when one was found
	Text string
	Err  error
}

// Degraded reports whether the sentinel was substituted.
func (r DateResult) Degraded() bool {
	return r.Err != nil
}

// degraded builds a sentinel result carrying the reason.
func degraded(loc *time.Location, text string, err error) DateResult {
	return DateResult{
		PublishedAt: Sentinel(loc),
		Text:        text,
		Err:         err,
	}
}

// ResolveDate reads the publication date from an article page. It never
// fails: any problem yields the sentinel with the reason attached.
func ResolveDate(doc *goquery.Document, selector string, loc *time.Location) DateResult {
	el := doc.Find(selector).First()
	if el.Length() == 0 {
		return degraded(loc, "", fmt.Errorf("%w: %q", ErrDateElementMissing, selector))
	}

	text := normalizeText(el.Text())
	t, err := ParseDateText(text, loc)
	if err != nil {
		return degraded(loc, text, err)
	}

	return DateResult{
		PublishedAt: t,
		Text:        text,
	}
}

// ResolveDateHTML is ResolveDate over raw markup.
func ResolveDateHTML(html string, selector string, loc *time.Location) DateResult {
	doc, err := ParseHTML(html)
	if err != nil {
		return degraded(loc, "", err)
	}
	return ResolveDate(doc, selector, loc)
}
