package elephantlog

import "context"

// DefaultUserAgent is sent with every article and robots.txt request.
// Several news sites refuse requests without a desktop browser agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Fetcher retrieves raw HTML from article URLs.
type Fetcher interface {
	// Fetch returns the HTML for the URL.
	// Network failures, non-200 statuses, and empty bodies are EFETCH errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsChecker reports whether a URL may be fetched under the site's robots.txt.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string) (bool, error)
}
