// Package goquery extracts news articles with per-site CSS selectors.
package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/elephantlog"
)

// Ensure SiteExtractor implements elephantlog.Extractor at compile time.
var _ elephantlog.Extractor = (*SiteExtractor)(nil)

// metaDates lists publication date sources that carry a machine-readable
// value, in order of preference.
var metaDates = []struct {
	selector string
	attr     string
}{
	{"meta[property='article:published_time']", "content"},
	{"meta[itemprop='datePublished']", "content"},
	{"meta[name='publish-date']", "content"},
	{"meta[name='pubdate']", "content"},
	{"time[datetime]", "datetime"},
}

// SiteExtractor extracts article content using the selector set of the
// site the page came from.
type SiteExtractor struct {
	registry *Registry
	detector *Detector
}

// NewSiteExtractor creates a SiteExtractor over registry.
// A nil registry means DefaultRegistry.
func NewSiteExtractor(registry *Registry) *SiteExtractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &SiteExtractor{registry: registry, detector: NewDetector()}
}

// Extract returns the title, publication date, and paragraphs of the
// article. Pages where no content selector matches are EPARSE errors.
func (e *SiteExtractor) Extract(src string) (*elephantlog.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "failed to parse HTML: %v", err)
	}

	site, _ := e.registry.Get(e.detector.detect(doc))

	content := contentHTML(doc, site.Content)
	if content == "" {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "no article content matched")
	}

	published := metaDate(doc)
	if published == "" {
		published = firstText(doc, site.Date)
	}

	return &elephantlog.ExtractResult{
		Title:       firstText(doc, site.Title),
		ContentHTML: content,
		Published:   published,
		SiteName:    site.Name,
	}, nil
}

// firstText returns the text of the first element matched by the first
// selector with a non-empty match.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// contentHTML renders every element matched by the first productive
// selector as a paragraph.
func contentHTML(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var b strings.Builder
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.Join(strings.Fields(s.Text()), " ")
			if text == "" {
				return
			}
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(text))
			b.WriteString("</p>\n")
		})
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func metaDate(doc *goquery.Document) string {
	for _, m := range metaDates {
		if v, ok := doc.Find(m.selector).First().Attr(m.attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
