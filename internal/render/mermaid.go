package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Mermaid fences must not reach the markdown converter: it would render the
// diagram source as a highlighted code block instead of leaving it for the
// client-side mermaid runtime. Bodies are parked behind placeholder tokens for
// the duration of the conversion.

const mermaidPlaceholderPrefix = "MERMAID_PLACEHOLDER_"

// Opening line is exactly ```mermaid or ```mermaidjs (optional trailing
// whitespace); the block runs to the next closing ``` line. Non-greedy, blocks
// do not nest.
var mermaidFence = regexp.MustCompile("(?ms)^```mermaid(?:js)?[ \t]*$\n(.*?)^```[ \t]*$")

// ExtractMermaidBlocks replaces every mermaid fence with a sequential
// placeholder token and returns the bodies in discovery order. Bodies are kept
// verbatim apart from stripping surrounding blank lines.
func ExtractMermaidBlocks(text string) (string, []string) {
	var bodies []string
	out := mermaidFence.ReplaceAllStringFunc(text, func(match string) string {
		body := mermaidFence.FindStringSubmatch(match)[1]
		bodies = append(bodies, strings.Trim(body, "\n"))
		return fmt.Sprintf("%s%d", mermaidPlaceholderPrefix, len(bodies)-1)
	})
	return out, bodies
}

// RestoreMermaidBlocks swaps placeholder tokens in the converted HTML for
// diagram containers. The paragraph-wrapped form is tried first so the bare
// substitution never leaves stray <p> tags behind.
//
// Tokens are restored in descending index order: MERMAID_PLACEHOLDER_1 is a
// prefix of MERMAID_PLACEHOLDER_10.
func RestoreMermaidBlocks(html string, bodies []string) string {
	for i := len(bodies) - 1; i >= 0; i-- {
		token := fmt.Sprintf("%s%d", mermaidPlaceholderPrefix, i)
		container := "<div class=\"mermaid\">\n" + bodies[i] + "\n</div>"
		html = strings.ReplaceAll(html, "<p>"+token+"</p>", container)
		html = strings.ReplaceAll(html, token, container)
	}
	return html
}
