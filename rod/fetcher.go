package rod

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/elephantlog"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements elephantlog.Fetcher at compile time.
var _ elephantlog.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from article URLs using headless Chrome.
// It is meant for news sites that build the article body in JavaScript.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	chrome       *pool
	timeout      time.Duration
	userAgent    string
	recycleAfter int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRecycleAfter sets how many articles are rendered before Chrome is
// restarted. Values below 1 keep DefaultRecycleAfter.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: elephantlog.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	p, err := newPool(f.recycleAfter)
	if err != nil {
		return nil, err
	}
	f.chrome = p
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// Context errors are returned as is; every other failure is EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.chrome.acquire()
	if browser == nil {
		return "", elephantlog.Errorf(elephantlog.EINVALID, "fetcher is closed")
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", elephantlog.Errorf(elephantlog.EFETCH, "open page for %s: %v", url, err)
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", elephantlog.Errorf(elephantlog.EFETCH, "set user agent: %v", err)
		}
	}

	page = page.Context(ctx)
	if f.timeout > 0 {
		page = page.Timeout(f.timeout)
	}

	if err := page.Navigate(url); err != nil {
		return "", fetchError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(url, err)
	}
	if strings.TrimSpace(html) == "" {
		return "", elephantlog.Errorf(elephantlog.EFETCH, "empty page for %s", url)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.chrome.close()
}

// LauncherPID returns the process ID of the Chrome launcher, or 0 once closed.
func (f *Fetcher) LauncherPID() int {
	return f.chrome.pid()
}

func fetchError(url string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return elephantlog.Errorf(elephantlog.EFETCH, "load %s: %v", url, err)
}
