package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/pevans/olharfeed/config"
	"github.com/pevans/olharfeed/fetcher"
	"github.com/pevans/olharfeed/newsfeed"
)

// titleLogWidth caps how many terminal cells a title takes in the ordered
// summary.
const titleLogWidth = 72

// Outcome describes one feed generation.
type Outcome struct {
	RunID uuid.UUID
	// Records in feed order, most recent first
	Records  []newsfeed.ArticleRecord
	Document *newsfeed.Document
	// Non-nil when the crawl aborted and an empty feed was written instead
	Fatal error
}

// Generator runs the pipeline and always ends by writing a feed file.
type Generator struct {
	cfg    config.Config
	loc    *time.Location
	open   fetcher.Opener
	logger *slog.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg config.Config, open fetcher.Opener, logger *slog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:    cfg,
		loc:    loc,
		open:   open,
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}, nil
}

// Generate crawls the site and writes the feed to the configured output
// path. A crawl that aborts still produces a valid, empty feed; the abort
// reason is reported in Outcome.Fatal. The returned error is only set when
// the feed file itself could not be written.
func (g *Generator) Generate(ctx context.Context) (*Outcome, error) {
	outcome := &Outcome{RunID: uuid.New()}
	logger := g.logger.With("run_id", outcome.RunID.String())

	pipeline, err := NewPipeline(g.cfg, g.open, logger)
	if err != nil {
		return nil, err
	}
	pipeline.sleep = g.sleep

	logger.Info("starting scraper", "url", g.cfg.TargetURL)
	records, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("crawl aborted, writing an empty feed", "error", err)
		outcome.Fatal = err
		records = nil
	}

	if len(records) == 0 {
		logger.Warn("no articles collected")
	}

	outcome.Records = newsfeed.SortRecords(records)
	g.logOrder(logger, outcome.Records)

	meta := newsfeed.Metadata{
		Title:       g.cfg.Feed.Title,
		Link:        g.cfg.Feed.Link,
		Description: g.cfg.Feed.Description,
		Language:    g.cfg.Feed.Language,
	}
	outcome.Document = newsfeed.Assemble(outcome.Records, meta, g.now(), g.loc)

	if err := newsfeed.WriteFile(outcome.Document, g.cfg.OutputPath); err != nil {
		return outcome, err
	}

	g.checkWritten(logger, outcome.Document)
	return outcome, nil
}

// logOrder prints the feed order, one line per article.
func (g *Generator) logOrder(logger *slog.Logger, records []newsfeed.ArticleRecord) {
	if len(records) == 0 {
		return
	}

	logger.Info("articles ordered by publication date, most recent first")
	for i, record := range records {
		logger.Info("ordered article",
			"n", i+1,
			"published_at", record.PublishedAt.Format(dateLayout),
			"title", runewidth.Truncate(record.Title, titleLogWidth, "…"),
		)
	}
}

// checkWritten reads the output back and reports what a feed reader sees.
// A mismatch is logged, not returned: the file is already in place.
func (g *Generator) checkWritten(logger *slog.Logger, doc *newsfeed.Document) {
	feed, err := newsfeed.ParseFile(g.cfg.OutputPath)
	if err != nil {
		logger.Warn("written feed could not be read back", "path", g.cfg.OutputPath, "error", err)
		return
	}

	if len(feed.Items) != len(doc.Entries) {
		logger.Warn("written feed entry count differs",
			"path", g.cfg.OutputPath, "expected", len(doc.Entries), "found", len(feed.Items))
		return
	}

	logger.Info("feed written", "path", g.cfg.OutputPath, "entries", len(feed.Items))
}
