package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/olharfeed/fetcher"
)

// fakePage is one scripted response of a fakeSession.
type fakePage struct {
	html    string
	navErr  error
	waitErr error
}

// fakeSession serves canned pages keyed by URL.
type fakeSession struct {
	pages map[string]fakePage

	current   string
	loaded    bool
	navigated []string

	screenshot    []byte
	screenshotErr error

	closeErr error
	closed   int
}

func newFakeSession(pages map[string]fakePage) *fakeSession {
	return &fakeSession{
		pages:      pages,
		screenshot: []byte("\x89PNG fake"),
	}
}

func (f *fakeSession) opener() fetcher.Opener {
	return func(context.Context, fetcher.Options) (fetcher.Session, error) {
		return f, nil
	}
}

func (f *fakeSession) Navigate(url string) error {
	f.navigated = append(f.navigated, url)
	page, ok := f.pages[url]
	if !ok {
		f.loaded = false
		return fmt.Errorf("navigation failed: no page for %s", url)
	}
	if page.navErr != nil {
		f.loaded = false
		return page.navErr
	}
	f.current = url
	f.loaded = true
	return nil
}

func (f *fakeSession) WaitVisible(selector string, timeout time.Duration) error {
	if !f.loaded {
		return errors.New("no page loaded")
	}
	page := f.pages[f.current]
	if page.waitErr != nil {
		return page.waitErr
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.html))
	if err != nil {
		return err
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %q after %v", fetcher.ErrNotVisible, selector, timeout)
	}
	return nil
}

func (f *fakeSession) HTML() (string, error) {
	if !f.loaded {
		return "", errors.New("no page loaded")
	}
	return f.pages[f.current].html, nil
}

func (f *fakeSession) Screenshot() ([]byte, error) {
	return f.screenshot, f.screenshotErr
}

func (f *fakeSession) Close() error {
	f.closed++
	return f.closeErr
}
