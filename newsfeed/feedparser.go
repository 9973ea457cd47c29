package newsfeed

import (
	"fmt"
	"os"

	"github.com/mmcdole/gofeed"
)

// ParseFile reads a feed file back with gofeed. It is used to confirm that a
// written file is a valid feed and to inspect its entries.
func ParseFile(path string) (*gofeed.Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()

	feed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}
