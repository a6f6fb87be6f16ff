package goquery

// Site holds the CSS selectors for one news site. Each list is tried in
// order and the first selector that matches wins.
type Site struct {
	// Domain is matched against the page host, including subdomains.
	Domain string

	// Name is the publication name written to the Source column.
	Name string

	Title   []string
	Date    []string
	Content []string
}

// GenericSite is used for pages from unrecognized hosts.
var GenericSite = Site{
	Title:   []string{"h1", ".title", ".article-title"},
	Date:    []string{".date", ".article-date", ".published-on"},
	Content: []string{"article p", ".content p", ".article-content p"},
}

// NewsSites returns the selector sets for the Indian news sites that
// report most elephant incidents.
func NewsSites() []Site {
	return []Site{
		{
			Domain:  "thehindu.com",
			Name:    "The Hindu",
			Title:   []string{"h1.title", "h1.heading", ".article-title h1", "h1"},
			Date:    []string{".publish-time", ".date", ".article-date", ".published-on"},
			Content: []string{".article-content p", ".story-content p", ".article-body p", "article p"},
		},
		{
			Domain:  "timesofindia.indiatimes.com",
			Name:    "Times of India",
			Title:   []string{"h1._1Y-96", "h1.heading", "h1", ".article-title"},
			Date:    []string{"._3Mkg-", ".date", ".article-date", ".published-on"},
			Content: []string{"._3YYSt p", ".article-content p", ".story-content p", "article p"},
		},
		{
			Domain:  "indianexpress.com",
			Name:    "Indian Express",
			Title:   []string{"h1.heading", "h1.title", "h1", ".article-title"},
			Date:    []string{".date", ".article-date", ".published-on", ".timestamp"},
			Content: []string{".story-details p", ".article-content p", ".story-content p", "article p"},
		},
		{
			Domain:  "hindustantimes.com",
			Name:    "Hindustan Times",
			Title:   []string{"h1.heading", "h1.title", "h1", ".article-title"},
			Date:    []string{".date", ".article-date", ".published-on", ".timestamp"},
			Content: []string{".story-content p", ".article-content p", ".story-details p", "article p"},
		},
		{
			Domain:  "deccanherald.com",
			Name:    "Deccan Herald",
			Title:   []string{"h1.heading", "h1.title", "h1", ".article-title"},
			Date:    []string{".date", ".article-date", ".published-on", ".timestamp"},
			Content: []string{".story-content p", ".article-content p", ".story-details p", "article p"},
		},
	}
}
