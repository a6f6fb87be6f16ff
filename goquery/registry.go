package goquery

import "strings"

// Registry maps page hosts to site selector sets, falling back to a
// generic set when the host is unknown.
type Registry struct {
	fallback Site
	sites    []Site
}

// NewRegistry creates a new Registry with the given fallback site.
func NewRegistry(fallback Site) *Registry {
	return &Registry{fallback: fallback}
}

// DefaultRegistry returns a registry of NewsSites over GenericSite.
func DefaultRegistry() *Registry {
	r := NewRegistry(GenericSite)
	for _, s := range NewsSites() {
		r.Register(s)
	}
	return r
}

// Register adds a site. A site already registered for the same domain is
// replaced.
func (r *Registry) Register(site Site) {
	site.Domain = strings.ToLower(site.Domain)
	for i := range r.sites {
		if r.sites[i].Domain == site.Domain {
			r.sites[i] = site
			return
		}
	}
	r.sites = append(r.sites, site)
}

// Get returns the site for host and whether it was recognized.
// A host matches a domain exactly or as a subdomain of it.
func (r *Registry) Get(host string) (Site, bool) {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	for _, s := range r.sites {
		if host == s.Domain || strings.HasSuffix(host, "."+s.Domain) {
			return s, true
		}
	}
	return r.fallback, false
}

// List returns the registered domains in registration order.
func (r *Registry) List() []string {
	domains := make([]string, len(r.sites))
	for i, s := range r.sites {
		domains[i] = s.Domain
	}
	return domains
}
