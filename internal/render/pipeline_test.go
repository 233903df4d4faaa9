package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipeline_EmptyTextShortCircuits(t *testing.T) {
	p := NewPipeline()
	require.Equal(t, noContentFragment, p.Render("", nil))
	require.Equal(t, noContentFragment, p.Render("   \n\t\n", nil))
}

func TestPipeline_PlainMarkdown(t *testing.T) {
	p := NewPipeline()
	out := p.Render("# Title\n\nsome *text*", nil)
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "<em>text</em>")
}

func TestPipeline_NestedListSurvivesConversion(t *testing.T) {
	// 2-space nesting in the source must come out as an actual nested list,
	// which is the whole point of the indentation stage.
	p := NewPipeline()
	out := p.Render("* parent\n  * child", nil)
	require.Equal(t, 2, strings.Count(out, "<ul>"))
}

func TestPipeline_MermaidAndMentionTogether(t *testing.T) {
	p := NewPipeline()
	anchors := AnchorMap{"target": "doc-3"}
	raw := "Diagram:\n\n```mermaid\nA-->B\n```\n\nSee @<a href=\"mention://t/document/target\">Target</a>."

	out := p.Render(raw, anchors)
	require.Contains(t, out, "<div class=\"mermaid\">\nA-->B\n</div>")
	require.Contains(t, out, `<a href="#doc-3" title="Jump to Target">Target</a>`)
}

func TestPipeline_HeadingIDsDoNotLeakAcrossDocuments(t *testing.T) {
	p := NewPipeline()
	first := p.Render("# Overview", nil)
	second := p.Render("# Overview", nil)
	// Without a reset between documents the second heading would be
	// deduplicated to overview-1.
	require.Equal(t, first, second)
	require.NotContains(t, second, "overview-1")
}

func TestPipeline_DeterministicForSameInput(t *testing.T) {
	raw := "# H\n\n* a\n  * b\n\n```mermaid\nX-->Y\n```\n"
	anchors := AnchorMap{"z": "doc-0"}
	p := NewPipeline()
	require.Equal(t, p.Render(raw, anchors), p.Render(raw, anchors))
}
