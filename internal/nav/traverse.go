// Package nav flattens the collection navigation tree into the ordered
// document sequence used for fetching and layout.
package nav

import (
	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
	"git.home.luguber.info/inful/outbook/internal/outline"
)

// FlatEntry is one document position in the flattened tree.
type FlatEntry struct {
	ID    string
	Title string
	Depth int
}

// UntitledFallback is used when a navigation node carries no title.
const UntitledFallback = "Untitled"

// ErrCycle is returned when a node is its own ancestor. Duplicate IDs at
// sibling level (a diamond) are not detected; such documents are simply
// emitted more than once.
var ErrCycle = errors.ValidationError("collection tree contains a cycle").Build()

// Traverse walks the forest depth-first in pre-order: each node is emitted
// before its descendants, and a full subtree is emitted before the next
// sibling. Depth equals the number of ancestors.
func Traverse(forest []outline.NavigationNode) ([]FlatEntry, error) {
	entries := make([]FlatEntry, 0, len(forest))
	path := make(map[string]struct{})

	var walk func(nodes []outline.NavigationNode, depth int) error
	walk = func(nodes []outline.NavigationNode, depth int) error {
		for _, node := range nodes {
			if _, onPath := path[node.ID]; onPath {
				return ErrCycle.WithContext("id", node.ID)
			}

			title := node.Title
			if title == "" {
				title = UntitledFallback
			}
			entries = append(entries, FlatEntry{ID: node.ID, Title: title, Depth: depth})

			path[node.ID] = struct{}{}
			if err := walk(node.Children, depth+1); err != nil {
				return err
			}
			delete(path, node.ID)
		}
		return nil
	}

	if err := walk(forest, 0); err != nil {
		return nil, err
	}
	return entries, nil
}
