package elephantlog

import "net/url"

// Article is the fetched and extracted form of one news article.
// It is read-only to the extraction strategies.
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// Text is the article body as plain text.
	Text string `json:"text"`

	// Published is the raw published date from page metadata.
	// Empty when the page carries no date.
	Published string `json:"published,omitempty"`

	// Source is the human-readable publication name, e.g. "The Hindu".
	Source string `json:"source"`
}

// Validate returns an error if the article cannot be extracted from.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Title == "" && a.Text == "" {
		return Errorf(EPARSE, "article %s has no title or text", a.URL)
	}
	return nil
}

// FullText returns the title and body joined for extraction.
func (a *Article) FullText() string {
	if a.Title == "" {
		return a.Text
	}
	if a.Text == "" {
		return a.Title
	}
	return a.Title + "\n\n" + a.Text
}

// Host returns the URL host without a leading "www.".
// Returns an empty string for unparseable URLs.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if len(host) > 4 && host[:4] == "www." {
		host = host[4:]
	}
	return host
}
