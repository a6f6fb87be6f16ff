// Package robotstxt checks article URLs against the publishing site's
// robots.txt.
package robotstxt

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/elephantlog"
	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// DefaultTTL is how long a parsed robots.txt is reused for a host.
const DefaultTTL = time.Hour

// Ensure Checker implements elephantlog.RobotsChecker at compile time.
var _ elephantlog.RobotsChecker = (*Checker)(nil)

// Checker fetches robots.txt once per host and answers whether the
// configured User-Agent may fetch a URL. Checker is safe for concurrent use.
type Checker struct {
	client    *http.Client
	userAgent string
	cache     *gocache.Cache
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets the client used to fetch robots.txt.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.client = c
	}
}

// WithTTL sets how long robots.txt data is cached per host.
func WithTTL(ttl time.Duration) Option {
	return func(ch *Checker) {
		ch.cache = gocache.New(ttl, 2*ttl)
	}
}

// NewChecker creates a Checker for userAgent.
func NewChecker(userAgent string, opts ...Option) *Checker {
	c := &Checker{
		client:    &http.Client{Timeout: elephantlog.DefaultFetchTimeout},
		userAgent: userAgent,
		cache:     gocache.New(DefaultTTL, 2*DefaultTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Allowed reports whether rawURL may be fetched. An unreachable or
// unparseable robots.txt allows everything and is not cached.
func (c *Checker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, elephantlog.Errorf(elephantlog.EINVALID, "invalid URL %q", rawURL)
	}

	data, err := c.robots(ctx, u)
	if err != nil {
		return true, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, agentToken(c.userAgent)), nil
}

func (c *Checker) robots(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host
	if v, ok := c.cache.Get(key); ok {
		return v.(*robotstxt.RobotsData), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create robots.txt request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EFETCH, "fetch robots.txt for %s: %v", u.Host, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "parse robots.txt for %s: %v", u.Host, err)
	}

	c.cache.SetDefault(key, data)
	return data, nil
}

// agentToken returns the product token of a User-Agent, which is what
// robots.txt groups are matched against.
func agentToken(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return "*"
	}
	return strings.Split(parts[0], "/")[0]
}
