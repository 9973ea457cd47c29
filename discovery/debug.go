package discovery

import (
	"log/slog"
	"os"

	"github.com/pevans/olharfeed/config"
	"github.com/pevans/olharfeed/fetcher"
)

// debugDumper writes diagnostic copies of the listing page. Every write is
// best-effort: failures are logged and never change the run's outcome.
type debugDumper struct {
	paths  config.DebugConfig
	logger *slog.Logger
}

// pageError saves the raw listing markup after the container was not found.
// Nothing is written when the markup could not be read.
func (d *debugDumper) pageError(html string) {
	if html == "" {
		return
	}
	d.write(d.paths.PageErrorPath, []byte(html))
}

// emptyListing saves a screenshot and the raw markup of a listing page that
// rendered without any article items.
func (d *debugDumper) emptyListing(session fetcher.Session, html string) {
	if png, err := session.Screenshot(); err != nil {
		d.logger.Warn("could not capture debug screenshot", "error", err)
	} else {
		d.write(d.paths.ScreenshotPath, png)
	}
	d.write(d.paths.PagePath, []byte(html))
}

// currentHTML returns the session's markup, or "" if it cannot be read.
func (d *debugDumper) currentHTML(session fetcher.Session) string {
	html, err := session.HTML()
	if err != nil {
		d.logger.Warn("could not read page source for debugging", "error", err)
		return ""
	}
	return html
}

func (d *debugDumper) write(path string, data []byte) {
	if path == "" {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		d.logger.Warn("could not write debug artifact", "path", path, "error", err)
		return
	}
	d.logger.Info("debug artifact saved", "path", path)
}
