package render

import (
	"fmt"

	"git.home.luguber.info/inful/outbook/internal/outline"
)

// AnchorMap maps a document ID to the in-page anchor token of its compiled
// section. It covers exactly the retained (successfully fetched) documents,
// so every anchor it hands out is dereferenceable in the final output.
type AnchorMap map[string]string

// BuildAnchors assigns each retained document the positional anchor token
// "doc-<i>". Indices reflect retained position, not tree position: the map
// must be rebuilt whenever the retained set changes.
func BuildAnchors(docs []outline.Document) AnchorMap {
	anchors := make(AnchorMap, len(docs))
	for i, doc := range docs {
		anchors[doc.ID] = fmt.Sprintf("doc-%d", i)
	}
	return anchors
}
