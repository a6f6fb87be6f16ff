package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/elephantlog"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements elephantlog.Extractor at compile time.
var _ elephantlog.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the article body and its
// metadata from news pages.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			ExcludeTables:  true,
		},
	}
}

// Extract processes raw HTML and returns the main content with the
// title, publication date, and site name found in the page metadata.
func (e *Extractor) Extract(rawHTML string) (*elephantlog.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, elephantlog.Errorf(elephantlog.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, elephantlog.Errorf(elephantlog.EPARSE, "render content: %v", err)
		}
	}

	var published string
	if !result.Metadata.Date.IsZero() {
		published = result.Metadata.Date.Format("2006-01-02")
	}

	return &elephantlog.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Published:   published,
		SiteName:    result.Metadata.Sitename,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
