package render

import (
	"fmt"
	"regexp"
)

// Outline embeds cross-document references as raw anchors with a mention://
// protocol URL. They survive markdown conversion untouched (raw inline HTML)
// and are rewritten here against the compilation's anchor map.
var mentionPattern = regexp.MustCompile(`@<a\s+href="mention://[^/"]+/document/([^"]+)">([^<]*)</a>`)

// ResolveMentions rewrites mention references in a converted HTML fragment.
// A mention whose target document was retained becomes a hyperlink to its
// section anchor; one whose target is absent (never in the tree, or dropped
// after a fetch failure) becomes an inert, visually distinguished span.
func ResolveMentions(html string, anchors AnchorMap) string {
	return mentionPattern.ReplaceAllStringFunc(html, func(match string) string {
		sub := mentionPattern.FindStringSubmatch(match)
		docID, name := sub[1], sub[2]
		if anchor, ok := anchors[docID]; ok {
			return fmt.Sprintf(`<a href="#%s" title="Jump to %s">%s</a>`, anchor, name, name)
		}
		return fmt.Sprintf(`<span class="mention-unresolved" title="This document is not part of this compilation">%s</span>`, name)
	})
}
