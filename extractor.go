package elephantlog

// ExtractResult holds the extracted content from an article page.
type ExtractResult struct {
	// Title is the headline from metadata or the page heading.
	Title string

	// ContentHTML is the article body as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Published is the raw publication date text, if the page has one.
	Published string

	// SiteName is the publication name, if known.
	SiteName string
}

// Extractor extracts the article body from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the article content.
	// An error means the page yielded nothing usable.
	Extract(html string) (*ExtractResult, error)
}
