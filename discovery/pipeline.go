package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pevans/olharfeed/config"
	"github.com/pevans/olharfeed/fetcher"
	"github.com/pevans/olharfeed/newsfeed"
)

// Pipeline crawls the listing page and then every article on it, one page
// at a time through a single fetcher session.
type Pipeline struct {
	cfg    config.Config
	loc    *time.Location
	open   fetcher.Opener
	logger *slog.Logger
	debug  *debugDumper
	sleep  func(time.Duration)
}

// NewPipeline creates a pipeline. open is called once per Run.
func NewPipeline(cfg config.Config, open fetcher.Opener, logger *slog.Logger) (*Pipeline, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:    cfg,
		loc:    loc,
		open:   open,
		logger: logger,
		debug:  &debugDumper{paths: cfg.Debug, logger: logger},
		sleep:  time.Sleep,
	}, nil
}

// fetcherOptions maps the browser configuration onto session options.
func fetcherOptions(cfg config.Config) fetcher.Options {
	return fetcher.Options{
		Headless:          cfg.Browser.Headless,
		NoSandbox:         cfg.Browser.NoSandbox,
		DisableDevShm:     cfg.Browser.DisableDevShm,
		UserAgent:         cfg.Browser.UserAgent,
		WindowWidth:       cfg.Browser.WindowWidth,
		WindowHeight:      cfg.Browser.WindowHeight,
		NavigationTimeout: cfg.Wait.Timeout,
	}
}

// Run opens a session, extracts the listing and resolves the publication
// date of every article. Records come back in listing order. Per-article
// failures degrade to the sentinel date; only a listing page without its
// article container (or a session that cannot be opened) returns an error.
// The session is closed on every path.
func (p *Pipeline) Run(ctx context.Context) ([]newsfeed.ArticleRecord, error) {
	p.logger.Info("starting browser session", "headless", p.cfg.Browser.Headless)
	session, err := p.open(ctx, fetcherOptions(p.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	defer p.closeSession(session)

	stubs, err := p.collectListing(session)
	if err != nil {
		return nil, err
	}

	records := make([]newsfeed.ArticleRecord, 0, len(stubs))
	if len(stubs) == 0 {
		return records, nil
	}

	p.logger.Info("resolving publication dates", "articles", len(stubs))
	for i, stub := range stubs {
		p.logger.Info("visiting article", "n", fmt.Sprintf("%d/%d", i+1, len(stubs)), "title", stub.Title)

		result := p.resolveArticle(session, stub)
		if result.Degraded() {
			p.logger.Warn("publication date not resolved, using sentinel",
				"link", stub.Link, "text", result.Text, "error", result.Err)
		} else {
			p.logger.Info("publication date found", "published_at", result.PublishedAt.Format(dateLayout))
		}

		records = append(records, stub.WithPublishedAt(result.PublishedAt))
	}

	return records, nil
}

// collectListing loads the listing page and extracts its stubs.
func (p *Pipeline) collectListing(session fetcher.Session) ([]newsfeed.ArticleStub, error) {
	list := p.cfg.Scraper.ListConfig

	p.logger.Info("accessing listing page", "url", p.cfg.TargetURL)
	if err := session.Navigate(p.cfg.TargetURL); err != nil {
		p.debug.pageError(p.debug.currentHTML(session))
		return nil, fmt.Errorf("failed to load listing page: %w", err)
	}

	p.logger.Info("waiting for article container", "selector", list.ContainerSelector, "timeout", p.cfg.Wait.Timeout)
	if err := session.WaitVisible(list.ContainerSelector, p.cfg.Wait.Timeout); err != nil {
		p.debug.pageError(p.debug.currentHTML(session))
		return nil, fmt.Errorf("%w: %w", ErrContainerNotFound, err)
	}
	p.logger.Info("article container loaded")

	// Late elements keep arriving after the container becomes visible
	p.sleep(p.cfg.Wait.ListingSettle)

	html, err := session.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page: %w", err)
	}

	listing, err := ExtractListingHTML(html, list, p.cfg.BaseURL)
	if errors.Is(err, ErrContainerNotFound) {
		p.debug.pageError(html)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract listing: %w", err)
	}

	if listing.Matched == 0 {
		p.logger.Warn("no articles found on listing page; the site may be blocking access")
		p.debug.emptyListing(session, html)
		return listing.Stubs, nil
	}

	p.logger.Info("articles found on listing page", "matched", listing.Matched, "kept", len(listing.Stubs))
	if skipped := listing.Skipped(); skipped > 0 {
		p.logger.Debug("listing items skipped for missing fields", "skipped", skipped)
	}

	return listing.Stubs, nil
}

// resolveArticle visits one article page and resolves its date. Every
// failure becomes a degraded result.
func (p *Pipeline) resolveArticle(session fetcher.Session, stub newsfeed.ArticleStub) DateResult {
	selector := p.cfg.Scraper.ArticleConfig.DateSelector

	if err := session.Navigate(stub.Link); err != nil {
		return degraded(p.loc, "", err)
	}

	if err := session.WaitVisible(selector, p.cfg.Wait.Timeout); err != nil {
		return degraded(p.loc, "", err)
	}

	p.sleep(p.cfg.Wait.ArticleSettle)

	html, err := session.HTML()
	if err != nil {
		return degraded(p.loc, "", err)
	}

	return ResolveDateHTML(html, selector, p.loc)
}

// closeSession releases the session. Close errors are logged and dropped.
func (p *Pipeline) closeSession(session fetcher.Session) {
	p.logger.Info("closing browser session")
	if err := session.Close(); err != nil {
		p.logger.Warn("ignored error closing browser session", "error", err)
	}
}
