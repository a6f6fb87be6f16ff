package readability

import (
	"strings"

	"github.com/fwojciec/elephantlog"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements elephantlog.Extractor at compile time.
var _ elephantlog.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article body from HTML.
// It is the last extractor in the fallback chain.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*elephantlog.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "readability: %v", err)
	}

	var published string
	if article.PublishedTime != nil {
		published = article.PublishedTime.Format("2006-01-02")
	}

	return &elephantlog.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Published:   published,
		SiteName:    article.SiteName,
	}, nil
}
