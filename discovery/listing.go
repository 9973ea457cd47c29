package discovery

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/olharfeed/newsfeed"
	"github.com/pevans/olharfeed/scraper"
)

// ErrContainerNotFound means the listing page has no article container. The
// site layout changed or the page never rendered; the run cannot continue.
var ErrContainerNotFound = errors.New("article container not found")

// Listing is the outcome of extracting a listing page.
type Listing struct {
	// Stubs that passed the required-field check, in page order
	Stubs []newsfeed.ArticleStub
	// Number of item elements matched inside the container, including the
	// ones that were dropped
	Matched int
}

// Skipped returns how many matched items were dropped for missing fields.
func (l *Listing) Skipped() int {
	return l.Matched - len(l.Stubs)
}

// ParseHTML parses page markup into a goquery document.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ExtractListing finds the article container and turns each item in it into
// a stub. Relative links and image sources are resolved against baseURL.
// Items without a link, title or summary are skipped. A container with no
// items is not an error.
func ExtractListing(doc *goquery.Document, cfg scraper.ListConfig, baseURL string) (*Listing, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	container := doc.Find(cfg.ContainerSelector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, cfg.ContainerSelector)
	}

	items := container.Find(cfg.ArticleSelector)
	listing := &Listing{
		Stubs:   make([]newsfeed.ArticleStub, 0, items.Length()),
		Matched: items.Length(),
	}

	items.Each(func(_ int, item *goquery.Selection) {
		if stub, ok := extractStub(item, cfg, base); ok {
			listing.Stubs = append(listing.Stubs, stub)
		}
	})

	return listing, nil
}

// ExtractListingHTML is ExtractListing over raw markup.
func ExtractListingHTML(html string, cfg scraper.ListConfig, baseURL string) (*Listing, error) {
	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}
	return ExtractListing(doc, cfg, baseURL)
}

// extractStub reads one listing item. The boolean is false when a required
// field is missing.
func extractStub(item *goquery.Selection, cfg scraper.ListConfig, base *url.URL) (newsfeed.ArticleStub, bool) {
	href, _ := item.Attr("href")
	link, ok := resolveURL(base, href)
	if !ok {
		return newsfeed.ArticleStub{}, false
	}

	title := normalizeText(item.Find(cfg.TitleSelector).First().Text())
	summary := normalizeText(item.Find(cfg.SummarySelector).First().Text())
	if title == "" || summary == "" {
		return newsfeed.ArticleStub{}, false
	}

	return newsfeed.ArticleStub{
		Link:     link,
		Title:    title,
		Summary:  summary,
		ImageURL: extractImage(item, cfg.ImageSelector, base),
	}, true
}

// extractImage returns the absolute image URL of an item, or "" when the
// item has no image or its source cannot be resolved. Lazy-loaded images
// keep the real source in data-lazy-src, so that wins over src.
func extractImage(item *goquery.Selection, selector string, base *url.URL) string {
	img := item.Find(selector).First()
	if img.Length() == 0 {
		return ""
	}

	src := strings.TrimSpace(img.AttrOr("data-lazy-src", ""))
	if src == "" {
		src = strings.TrimSpace(img.AttrOr("src", ""))
	}
	if src == "" {
		return ""
	}

	if strings.HasPrefix(src, "http") {
		return src
	}

	abs, ok := resolveURL(base, src)
	if !ok {
		return ""
	}
	return abs
}

// resolveURL joins ref onto base. Only http and https results are accepted.
func resolveURL(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}

// normalizeText trims and collapses runs of whitespace into single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
