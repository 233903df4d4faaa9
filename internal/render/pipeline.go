package render

import (
	"html"
	"log/slog"
	"strings"
)

// noContentFragment is emitted for documents with empty or whitespace-only text.
const noContentFragment = "<p><em>No content</em></p>"

// Pipeline renders one document at a time through the fixed stage sequence.
// It owns the (stateful) converter; not safe for concurrent use, which is fine
// since compilation is strictly sequential.
type Pipeline struct {
	conv *Converter
}

// NewPipeline creates a pipeline with a fresh converter.
func NewPipeline() *Pipeline {
	return &Pipeline{conv: NewConverter()}
}

// Render transforms raw markdown into an HTML fragment with mermaid fences
// preserved as diagram containers and mentions resolved against anchors.
//
// Render never fails: empty input short-circuits to a "No content" marker and
// a converter error degrades to an escaped preformatted fallback so one broken
// document cannot abort the compilation.
func (p *Pipeline) Render(raw string, anchors AnchorMap) string {
	if strings.TrimSpace(raw) == "" {
		return noContentFragment
	}

	text := NormalizeListIndent(raw)
	text, bodies := ExtractMermaidBlocks(text)

	p.conv.Reset()
	fragment, err := p.conv.Convert(text)
	if err != nil {
		slog.Warn("Markdown conversion failed, emitting raw fallback", slog.Any("error", err))
		return "<pre>" + html.EscapeString(raw) + "</pre>"
	}

	fragment = RestoreMermaidBlocks(fragment, bodies)
	return ResolveMentions(fragment, anchors)
}
