package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter wraps goldmark with the extensions the source dialect needs:
// GFM (tables, strikethrough, autolinks) and auto heading IDs. Raw inline
// HTML passes through unescaped; mention references arrive as raw anchors
// inside the markdown and must survive conversion.
//
// Auto heading IDs are deduplicated through a parser context, which makes the
// converter stateful across calls. Reset must be called between documents so
// heading IDs from one document do not leak into the next.
type Converter struct {
	md  goldmark.Markdown
	ctx parser.Context
}

// NewConverter creates a converter with a fresh heading-ID context.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		ctx: parser.NewContext(),
	}
}

// Reset discards accumulated heading-ID state.
func (c *Converter) Reset() {
	c.ctx = parser.NewContext()
}

// Convert renders a markdown string to an HTML fragment.
func (c *Converter) Convert(text string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf, parser.WithContext(c.ctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
