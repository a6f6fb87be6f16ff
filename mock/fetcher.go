package mock

import (
	"context"

	"github.com/fwojciec/elephantlog"
)

var _ elephantlog.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of elephantlog.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ elephantlog.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of elephantlog.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ elephantlog.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of elephantlog.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string) (bool, error) {
	return r.AllowedFn(ctx, url)
}
