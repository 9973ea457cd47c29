// Package fetcher turns URLs into rendered HTML. A Session is a single
// stateful page: callers navigate it, wait for an element, then read the
// page back. Sessions are not safe for concurrent use.
package fetcher

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotVisible is returned by WaitVisible when the selector did not
	// become visible within the timeout.
	ErrNotVisible = errors.New("element not visible before timeout")

	// ErrScreenshotUnsupported is returned by sessions that cannot render
	// pixels.
	ErrScreenshotUnsupported = errors.New("screenshots not supported by this session")
)

// Session is one page-rendering context.
type Session interface {
	// Navigate loads url, replacing the current page.
	Navigate(url string) error
	// WaitVisible blocks until selector matches a visible element or
	// timeout elapses.
	WaitVisible(selector string, timeout time.Duration) error
	// HTML returns the current document markup.
	HTML() (string, error)
	// Screenshot captures the current viewport as PNG bytes.
	Screenshot() ([]byte, error)
	// Close releases the session.
	Close() error
}

// Options configures a new session.
type Options struct {
	Headless      bool
	NoSandbox     bool
	DisableDevShm bool
	UserAgent     string
	WindowWidth   int
	WindowHeight  int
	// Timeout for a single navigation. Zero means no limit beyond the
	// caller's context.
	NavigationTimeout time.Duration
}

// Opener starts a session.
type Opener func(ctx context.Context, opts Options) (Session, error)
