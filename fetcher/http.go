package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// defaultHTTPTimeout applies when Options.NavigationTimeout is zero.
const defaultHTTPTimeout = 30 * time.Second

// HTTP is a Session that fetches pages without executing scripts. It suits
// pages whose markup is server-rendered. WaitVisible only checks that the
// selector is present in the fetched document.
type HTTP struct {
	ctx       context.Context
	client    *http.Client
	userAgent string

	body string
	doc  *goquery.Document
}

// OpenHTTP creates an HTTP session. Browser-only options are ignored.
func OpenHTTP(ctx context.Context, opts Options) (Session, error) {
	timeout := opts.NavigationTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewHTTP(ctx, &http.Client{Timeout: timeout}, opts.UserAgent), nil
}

// NewHTTP creates an HTTP session around an existing client.
func NewHTTP(ctx context.Context, client *http.Client, userAgent string) *HTTP {
	return &HTTP{
		ctx:       ctx,
		client:    client,
		userAgent: userAgent,
	}
}

func (h *HTTP) Navigate(url string) error {
	h.body = ""
	h.doc = nil

	req, err := http.NewRequestWithContext(h.ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	h.body = string(data)
	h.doc = doc
	return nil
}

func (h *HTTP) WaitVisible(selector string, timeout time.Duration) error {
	if h.doc == nil {
		return errors.New("no page loaded")
	}
	if h.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %q after %v", ErrNotVisible, selector, timeout)
	}
	return nil
}

func (h *HTTP) HTML() (string, error) {
	if h.doc == nil {
		return "", errors.New("no page loaded")
	}
	return h.body, nil
}

func (h *HTTP) Screenshot() ([]byte, error) {
	return nil, ErrScreenshotUnsupported
}

func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
