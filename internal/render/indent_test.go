package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeListIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two space indent doubled", "  * child", "    * child"},
		{"dash marker doubled", "  - child", "    - child"},
		{"zero indent unchanged", "* top", "* top"},
		{"non-list line unchanged", "  plain text", "  plain text"},
		{"four space becomes eight", "    * deep", "        * deep"},
		{"odd indent doubled arithmetically", "   * odd", "      * odd"},
		{"tab indent doubled", "\t* tabbed", "\t\t* tabbed"},
		{"marker without space unchanged", "  *emphasis*", "  *emphasis*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeListIndent(tt.in))
		})
	}
}

func TestNormalizeListIndent_MultilineMixed(t *testing.T) {
	in := "# Heading\n\n* top\n  * child\n    * grandchild\nplain\n"
	want := "# Heading\n\n* top\n    * child\n        * grandchild\nplain\n"
	require.Equal(t, want, NormalizeListIndent(in))
}
