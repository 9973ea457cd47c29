package main

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/mmcdole/gofeed"
)

const titleWidth = 70

// printFeedTable prints a feed's entries in document order with dates
// shown in loc.
func printFeedTable(w io.Writer, feed *gofeed.Feed, loc *time.Location) {
	fmt.Fprintf(w, "%s (%s, language %s)\n", feed.Title, feed.FeedType, feed.Language)
	if len(feed.Items) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}

	fmt.Fprintf(w, "%d entries, most recent first:\n\n", len(feed.Items))
	for i, item := range feed.Items {
		published := "unknown"
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.In(loc).Format("02/01/2006 15:04")
		}

		fmt.Fprintf(w, "%3d. %s  %s\n", i+1, published, runewidth.Truncate(item.Title, titleWidth, "..."))
		fmt.Fprintf(w, "     %s\n", item.Link)
		if len(item.Enclosures) > 0 {
			fmt.Fprintf(w, "     image: %s\n", item.Enclosures[0].URL)
		}
	}
}
