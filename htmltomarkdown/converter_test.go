package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements elephantlog.Converter at compile time.
var _ elephantlog.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>A herd of 5 elephants was sighted.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "A herd of 5 elephants was sighted.", text)
	})

	t.Run("separates paragraphs with a blank line", func(t *testing.T) {
		t.Parallel()

		html := `<p>First paragraph.</p><p>Second paragraph.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
	})

	t.Run("strips heading markers", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Tusker found dead</h1><h2>Forest officials investigate</h2>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Tusker found dead")
		assert.Contains(t, text, "Forest officials investigate")
		assert.NotContains(t, text, "#")
	})

	t.Run("keeps link text and drops the target", func(t *testing.T) {
		t.Parallel()

		html := `<p>Read the <a href="https://example.com/report">forest report</a> for details.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Read the forest report for details.", text)
	})

	t.Run("drops images", func(t *testing.T) {
		t.Parallel()

		html := `<p><img src="/herd.jpg" alt="herd"> Elephants crossed the road.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Elephants crossed the road.", text)
	})

	t.Run("strips emphasis around numbers", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>3</strong> elephants and <em>two</em> calves.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "3 elephants and two calves.", text)
	})

	t.Run("strips list bullets and blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Paddy destroyed</li><li>Two huts damaged</li></ul><blockquote><p>We stayed awake all night.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Paddy destroyed\nTwo huts damaged")
		assert.Contains(t, text, "We stayed awake all night.")
		assert.NotContains(t, text, "- ")
		assert.NotContains(t, text, ">")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, elephantlog.EINVALID, elephantlog.ErrorCode(err))
	})
}
