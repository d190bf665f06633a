package fst

// prefixMatch classifies how an edge label relates to the unconsumed portion
// of a key. The builder's insert cases and the reader's descent both branch on
// this classification.
type prefixMatch uint8

const (
	// prefixNone: no shared prefix at all, e.g. edge "abc" vs key "def".
	prefixNone prefixMatch = iota
	// prefixDivergent: a strict partial common prefix, e.g. "foobar" vs "foojam".
	prefixDivergent
	// prefixEdge: the edge is fully consumed and key bytes remain,
	// e.g. edge "foo" vs key "foobar".
	prefixEdge
	// prefixKey: the key is exhausted inside the edge, e.g. edge "foobar" vs key "foo".
	prefixKey
	// prefixExact: edge and key are identical.
	prefixExact
)

// commonPrefix returns the length of the longest common prefix of edge and
// key, and the classification of the match.
func commonPrefix(edge, key []byte) (int, prefixMatch) {
	limit := len(edge)
	if len(key) < limit {
		limit = len(key)
	}

	n := 0
	for n < limit && edge[n] == key[n] {
		n++
	}

	switch {
	case n == len(edge) && n == len(key):
		return n, prefixExact
	case n == len(edge):
		return n, prefixEdge
	case n == len(key):
		return n, prefixKey
	case n == 0:
		return 0, prefixNone
	default:
		return n, prefixDivergent
	}
}
