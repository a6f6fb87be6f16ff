package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector finds the host a page was published on from its own markup.
// Extractors only see HTML, so the canonical link is the most reliable
// trace of the original URL.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the lowercase host of the page or "" if none is declared.
// It checks link[rel=canonical], og:url, then base[href].
func (d *Detector) Detect(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return d.detect(doc)
}

func (d *Detector) detect(doc *goquery.Document) string {
	candidates := []struct {
		selector string
		attr     string
	}{
		{"link[rel='canonical']", "href"},
		{"meta[property='og:url']", "content"},
		{"base[href]", "href"},
	}
	for _, c := range candidates {
		raw, ok := doc.Find(c.selector).First().Attr(c.attr)
		if !ok {
			continue
		}
		if host := hostOf(raw); host != "" {
			return host
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
