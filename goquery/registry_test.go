package goquery_test

import (
	"testing"

	"github.com/fwojciec/elephantlog/goquery"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("matches the domain exactly", func(t *testing.T) {
		t.Parallel()

		r := goquery.DefaultRegistry()

		site, ok := r.Get("indianexpress.com")

		assert.True(t, ok)
		assert.Equal(t, "Indian Express", site.Name)
	})

	t.Run("matches www and other subdomains", func(t *testing.T) {
		t.Parallel()

		r := goquery.DefaultRegistry()

		site, ok := r.Get("www.thehindu.com")
		assert.True(t, ok)
		assert.Equal(t, "The Hindu", site.Name)

		site, ok = r.Get("m.timesofindia.indiatimes.com")
		assert.True(t, ok)
		assert.Equal(t, "Times of India", site.Name)
	})

	t.Run("does not match a domain embedded in another name", func(t *testing.T) {
		t.Parallel()

		r := goquery.DefaultRegistry()

		site, ok := r.Get("notthehindu.com")

		assert.False(t, ok)
		assert.Equal(t, goquery.GenericSite, site)
	})

	t.Run("returns the fallback for unknown and empty hosts", func(t *testing.T) {
		t.Parallel()

		fallback := goquery.Site{Name: "fallback", Content: []string{"p"}}
		r := goquery.NewRegistry(fallback)

		site, ok := r.Get("")
		assert.False(t, ok)
		assert.Equal(t, "fallback", site.Name)

		site, ok = r.Get("example.com")
		assert.False(t, ok)
		assert.Equal(t, "fallback", site.Name)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("replaces a site with the same domain", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRegistry(goquery.GenericSite)
		r.Register(goquery.Site{Domain: "example.com", Name: "First"})
		r.Register(goquery.Site{Domain: "Example.com", Name: "Second"})

		site, ok := r.Get("example.com")

		assert.True(t, ok)
		assert.Equal(t, "Second", site.Name)
		assert.Equal(t, []string{"example.com"}, r.List())
	})

	t.Run("lists domains in registration order", func(t *testing.T) {
		t.Parallel()

		r := goquery.DefaultRegistry()

		assert.Equal(t, []string{
			"thehindu.com",
			"timesofindia.indiatimes.com",
			"indianexpress.com",
			"hindustantimes.com",
			"deccanherald.com",
		}, r.List())
	})
}
