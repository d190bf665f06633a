package fst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name  string
		edge  string
		key   string
		n     int
		match prefixMatch
	}{
		{"no match", "abc", "def", 0, prefixNone},
		{"no match leading space", " DEF", "DEF", 0, prefixNone},
		{"edge inside key", "foo", "foobar", 3, prefixEdge},
		{"edge inside key long", "longer/test", "longer/test/item", 11, prefixEdge},
		{"key inside edge", "a/b/c/d", "a/b/c", 5, prefixKey},
		{"divergent", "a/b/c", "a/b/d", 4, prefixDivergent},
		{"exact", "a/b/c", "a/b/c", 5, prefixExact},
		{"both empty", "", "", 0, prefixExact},
		{"empty edge", "", "abc", 0, prefixEdge},
		{"empty key", "abc", "", 0, prefixKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, match := commonPrefix([]byte(tt.edge), []byte(tt.key))
			require.Equal(t, tt.n, n)
			require.Equal(t, tt.match, match)
		})
	}
}
