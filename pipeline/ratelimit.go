package pipeline

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/elephantlog"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var _ elephantlog.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each news publisher. A publisher is
// the registrable domain of the host, so "epaper.thehindu.com" and
// "www.thehindu.com" draw from one budget while other publishers proceed
// independently.
type DomainLimiter struct {
	limit rate.Limit

	mu         sync.Mutex
	publishers map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each publisher, one at a time. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limit:      rate.Limit(rps),
		publishers: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the publisher of host may be contacted again, or ctx
// is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.limit <= 0 {
		return ctx.Err()
	}
	return d.publisher(host).Wait(ctx)
}

func (d *DomainLimiter) publisher(host string) *rate.Limiter {
	key := Publisher(host)

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.publishers[key]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.publishers[key] = l
	}
	return l
}

// Publisher returns the registrable domain of host ("thehindu.com" for
// "epaper.thehindu.com", "example.co.in" for "news.example.co.in").
// IP addresses and single-label hosts such as "localhost" are returned
// lowercased.
func Publisher(host string) string {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if net.ParseIP(host) != nil {
		return host
	}
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}
