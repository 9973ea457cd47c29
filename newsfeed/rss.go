package newsfeed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gorilla/feeds"
)

// rssFeed converts a document into the gorilla/feeds RSS channel. The
// channel is built directly rather than through feeds.Feed so that entry
// order and the language tag are preserved exactly.
func rssFeed(doc *Document) *feeds.RssFeed {
	channel := &feeds.RssFeed{
		Title:         doc.Title,
		Link:          doc.Link,
		Description:   doc.Description,
		Language:      doc.Language,
		LastBuildDate: formatRSSDate(doc.LastBuildDate),
		Items:         make([]*feeds.RssItem, 0, len(doc.Entries)),
	}

	for _, entry := range doc.Entries {
		item := &feeds.RssItem{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: entry.Description,
			Guid:        &feeds.RssGuid{Id: entry.ID, IsPermaLink: "true"},
			PubDate:     formatRSSDate(entry.PubDate),
		}
		if entry.Enclosure != nil {
			item.Enclosure = &feeds.RssEnclosure{
				Url:    entry.Enclosure.URL,
				Length: entry.Enclosure.Length,
				Type:   entry.Enclosure.Type,
			}
		}
		channel.Items = append(channel.Items, item)
	}

	return channel
}

// WriteRSS serializes the document as indented RSS 2.0 XML.
func WriteRSS(doc *Document, w io.Writer) error {
	if err := feeds.WriteXML(rssFeed(doc), w); err != nil {
		return fmt.Errorf("failed to write rss: %w", err)
	}
	return nil
}

// WriteFile serializes the document to path, replacing any existing file.
// The file is only touched once serialization has succeeded.
func WriteFile(doc *Document, path string) error {
	var buf bytes.Buffer
	if err := WriteRSS(doc, &buf); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write feed file: %w", err)
	}

	return nil
}

func formatRSSDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC1123Z)
}
