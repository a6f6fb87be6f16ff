package extract

import (
	"strings"
	"sync"
	"unicode"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s, strips diacritics, and collapses every run of
// non-alphanumerics into one space. The result starts and ends with a space
// so terms folded with foldTerm only match on word boundaries.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// foldTerm folds a dictionary term the same way as foldText.
// Returns "" for terms with no letters or digits.
func foldTerm(s string) string {
	f := foldText(s)
	if strings.TrimSpace(f) == "" {
		return ""
	}
	return f
}

// termMatcher finds which of a fixed set of folded terms occur in folded text.
type termMatcher struct {
	// ahocorasick.Matcher mutates internal counters on every Match.
	mu      sync.Mutex
	matcher *ahocorasick.Matcher
	terms   []string
}

func newTermMatcher(terms []string) *termMatcher {
	return &termMatcher{
		matcher: ahocorasick.NewStringMatcher(terms),
		terms:   terms,
	}
}

// match returns the indices of distinct terms found in folded.
func (m *termMatcher) match(folded string) []int {
	if len(m.terms) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matcher.Match([]byte(folded))
}
