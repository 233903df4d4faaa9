package render

import "strings"

// NormalizeListIndent doubles the leading whitespace of indented list lines.
// Outline emits nested lists with 2-space increments while the converter
// requires 4-space nesting.
//
// Only lines whose trimmed content starts with "* " or "- " and that carry
// leading whitespace are touched. Irregular indentation (odd widths, tabs) is
// still doubled arithmetically; this is an accepted limitation, the source is
// assumed to use 2-space increments.
func NormalizeListIndent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if len(trimmed) == len(line) {
			continue // no leading whitespace
		}
		if !strings.HasPrefix(trimmed, "* ") && !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + indent + trimmed
	}
	return strings.Join(lines, "\n")
}
