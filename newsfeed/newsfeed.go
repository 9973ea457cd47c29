package newsfeed

import (
	"mime"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"
)

// DefaultImageType is the enclosure MIME type used when the image URL has no
// recognizable extension.
const DefaultImageType = "image/jpeg"

// Metadata holds the channel-level fields of a feed document.
type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Document is a feed ready to be serialized. Entries are in publication
// order, most recent first.
type Document struct {
	Metadata
	LastBuildDate time.Time
	Entries       []Entry
}

// Entry is a single item of a feed document.
type Entry struct {
	ID          string
	Title       string
	Link        string
	Description string
	PubDate     time.Time
	Enclosure   *Enclosure
}

// Enclosure is a media attachment of an entry.
type Enclosure struct {
	URL    string
	Length string
	Type   string
}

// SortRecords returns a copy of records ordered by PublishedAt, most recent
// first. Records with equal instants keep their relative order.
func SortRecords(records []ArticleRecord) []ArticleRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b ArticleRecord) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return sorted
}

// Assemble builds a feed document from records. An empty input produces a
// document with metadata and no entries. The build date is now expressed in
// loc.
func Assemble(records []ArticleRecord, meta Metadata, now time.Time, loc *time.Location) *Document {
	doc := &Document{
		Metadata:      meta,
		LastBuildDate: now.In(loc),
		Entries:       make([]Entry, 0, len(records)),
	}

	for _, record := range SortRecords(records) {
		doc.Entries = append(doc.Entries, recordToEntry(record))
	}

	return doc
}

// recordToEntry maps a record onto a feed entry. The article link doubles as
// the entry identifier.
func recordToEntry(record ArticleRecord) Entry {
	entry := Entry{
		ID:          record.Link,
		Title:       record.Title,
		Link:        record.Link,
		Description: record.Summary,
		PubDate:     record.PublishedAt,
	}

	if record.HasImage() {
		entry.Enclosure = &Enclosure{
			URL:    record.ImageURL,
			Length: "0",
			Type:   imageType(record.ImageURL),
		}
	}

	return entry
}

// imageType guesses the MIME type of an image from its URL path, falling
// back to DefaultImageType.
func imageType(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return DefaultImageType
	}

	t := mime.TypeByExtension(ext)
	if !strings.HasPrefix(t, "image/") {
		return DefaultImageType
	}

	// Drop parameters such as "; charset=utf-8"
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}
