package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/elephantlog"
)

// Ensure Converter implements elephantlog.Converter at compile time.
var _ elephantlog.Converter = (*Converter)(nil)

var (
	imagePattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingPattern  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	quotePattern    = regexp.MustCompile(`(?m)^>\s?`)
	bulletPattern   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	emphasisPattern = regexp.MustCompile(`\*\*|__|\*([^*\s][^*]*)\*`)
	blankPattern    = regexp.MustCompile(`\n{3,}`)
)

// Converter wraps html-to-markdown to turn article HTML into plain text.
// Markdown markup is stripped so that patterns see only words and numbers.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into plain text with one paragraph per
// block.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", elephantlog.Errorf(elephantlog.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", elephantlog.Errorf(elephantlog.EPARSE, "convert HTML: %v", err)
	}
	return plain(md), nil
}

func plain(md string) string {
	s := imagePattern.ReplaceAllString(md, "")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = headingPattern.ReplaceAllString(s, "")
	s = quotePattern.ReplaceAllString(s, "")
	s = bulletPattern.ReplaceAllString(s, "")
	s = emphasisPattern.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Trim(m, "*_")
	})
	s = strings.ReplaceAll(s, `\`, "")
	s = blankPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
