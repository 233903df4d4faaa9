package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractMermaidBlocks_SingleBlock(t *testing.T) {
	in := "before\n```mermaid\nA-->B\n```\nafter"
	out, bodies := ExtractMermaidBlocks(in)

	require.Equal(t, []string{"A-->B"}, bodies)
	require.Contains(t, out, "MERMAID_PLACEHOLDER_0")
	require.NotContains(t, out, "A-->B")
	require.Contains(t, out, "before")
	require.Contains(t, out, "after")
}

func TestExtractMermaidBlocks_MermaidJSVariant(t *testing.T) {
	in := "```mermaidjs\ngraph TD\n```"
	_, bodies := ExtractMermaidBlocks(in)
	require.Equal(t, []string{"graph TD"}, bodies)
}

func TestExtractMermaidBlocks_TrailingWhitespaceOnFence(t *testing.T) {
	in := "```mermaid  \nA-->B\n```  "
	_, bodies := ExtractMermaidBlocks(in)
	require.Equal(t, []string{"A-->B"}, bodies)
}

func TestExtractMermaidBlocks_OtherFencesUntouched(t *testing.T) {
	in := "```go\nfunc main() {}\n```"
	out, bodies := ExtractMermaidBlocks(in)
	require.Empty(t, bodies)
	require.Equal(t, in, out)
}

func TestExtractMermaidBlocks_BlankLinesTrimmedBodyVerbatim(t *testing.T) {
	in := "```mermaid\n\nA-->B\n  C-->D\n\n```"
	_, bodies := ExtractMermaidBlocks(in)
	require.Equal(t, []string{"A-->B\n  C-->D"}, bodies)
}

func TestExtractMermaidBlocks_MultipleBlocksDiscoveryOrder(t *testing.T) {
	in := "```mermaid\nfirst\n```\ntext\n```mermaid\nsecond\n```"
	out, bodies := ExtractMermaidBlocks(in)
	require.Equal(t, []string{"first", "second"}, bodies)
	require.Less(t, strings.Index(out, "MERMAID_PLACEHOLDER_0"), strings.Index(out, "MERMAID_PLACEHOLDER_1"))
}

func TestRestoreMermaidBlocks_ParagraphWrappedFirst(t *testing.T) {
	html := "<p>MERMAID_PLACEHOLDER_0</p>"
	out := RestoreMermaidBlocks(html, []string{"A-->B"})
	require.Equal(t, "<div class=\"mermaid\">\nA-->B\n</div>", out)
	require.NotContains(t, out, "<p>")
}

func TestRestoreMermaidBlocks_BareForm(t *testing.T) {
	html := "<li>MERMAID_PLACEHOLDER_0</li>"
	out := RestoreMermaidBlocks(html, []string{"A-->B"})
	require.Equal(t, "<li><div class=\"mermaid\">\nA-->B\n</div></li>", out)
}

func TestRestoreMermaidBlocks_TenPlusPlaceholdersNoPrefixClash(t *testing.T) {
	bodies := make([]string, 11)
	var sb strings.Builder
	for i := range bodies {
		bodies[i] = fmt.Sprintf("body-%d", i)
		fmt.Fprintf(&sb, "<p>MERMAID_PLACEHOLDER_%d</p>", i)
	}
	out := RestoreMermaidBlocks(sb.String(), bodies)
	for i := range bodies {
		require.Contains(t, out, fmt.Sprintf("body-%d", i))
	}
	require.NotContains(t, out, "MERMAID_PLACEHOLDER")
}

func TestMermaid_ProtectConvertRestoreRoundTrip(t *testing.T) {
	// The full stage-2/3/4 round trip from the compilation pipeline: a fence
	// survives goldmark conversion and comes back as a diagram container with
	// an unmodified body.
	in := "intro\n\n```mermaid\nA-->B\n```\n\noutro"
	text, bodies := ExtractMermaidBlocks(in)

	conv := NewConverter()
	fragment, err := conv.Convert(text)
	require.NoError(t, err)

	out := RestoreMermaidBlocks(fragment, bodies)
	require.Contains(t, out, "<div class=\"mermaid\">\nA-->B\n</div>")
	require.NotContains(t, out, "MERMAID_PLACEHOLDER")
	require.NotContains(t, out, "<p><div")
}
