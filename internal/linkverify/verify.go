// Package linkverify checks the assembled artifact for dangling in-page
// references: fragment links whose target ID does not exist. With positional
// anchors this should never fire; it is a cheap post-assembly sanity check
// exposed behind a CLI flag.
package linkverify

import (
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

// Report summarizes one verification pass.
type Report struct {
	AnchorCount   int
	FragmentLinks int
	Dangling      []string // fragment targets with no matching element ID
}

// OK reports whether every fragment link resolves.
func (r *Report) OK() bool {
	return len(r.Dangling) == 0
}

// Verify parses the final HTML document and cross-checks fragment hrefs
// against element IDs.
func Verify(doc string) (*Report, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryCompile, "parse output HTML").Build()
	}

	ids := make(map[string]bool)
	var fragments []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch {
				case attr.Key == "id" && attr.Val != "":
					ids[attr.Val] = true
				case attr.Key == "href" && strings.HasPrefix(attr.Val, "#") && len(attr.Val) > 1:
					fragments = append(fragments, strings.TrimPrefix(attr.Val, "#"))
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	report := &Report{
		AnchorCount:   len(ids),
		FragmentLinks: len(fragments),
	}
	seen := make(map[string]bool)
	for _, target := range fragments {
		if !ids[target] && !seen[target] {
			seen[target] = true
			report.Dangling = append(report.Dangling, target)
		}
	}
	return report, nil
}
