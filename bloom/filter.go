// Package bloom detects repeated article URLs in an input list using a
// Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used by Duplicates.
const DefaultFalsePositiveRate = 0.001

// Filter wraps a Bloom filter keyed by normalized article URLs.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(Normalize(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(Normalize(rawURL))
}

// Seen reports whether the URL might have been added before, then adds it.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestAndAddString(Normalize(rawURL))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Duplicates returns the URLs in urls that probably repeat an earlier
// entry, in input order. Blank entries are ignored. A false positive
// reports a unique URL as repeated, so callers only warn.
func Duplicates(urls []string) []string {
	f := NewFilter(uint(len(urls)), DefaultFalsePositiveRate)
	var dups []string
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			continue
		}
		if f.Seen(u) {
			dups = append(dups, u)
		}
	}
	return dups
}

// Normalize reduces a URL to the form compared for duplicates: the host
// is lowercased with any "www." prefix dropped, the fragment is removed,
// and a trailing slash on the path is trimmed. Unparseable input is only
// trimmed of surrounding space.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
