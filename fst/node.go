package fst

import "sort"

// trieNode is a node of the mutable Patricia trie. Each node is owned
// exclusively by its parent; the Builder owns the root.
//
// Invariants maintained by insert:
//   - children are sorted by the leading byte of their edge, and no two
//     children share a leading byte
//   - every non-root edge is non-empty
//   - a non-terminal node always has at least two children (single-child
//     chains are fused into one edge), except for the root
type trieNode struct {
	edge     []byte
	children []*trieNode
	terminal bool
	output   uint64
}

// findChild returns the index of the child whose edge starts with b, and
// whether such a child exists. When it does not exist, the index is the
// insertion position that keeps children sorted.
func (n *trieNode) findChild(b byte) (int, bool) {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].edge[0] >= b
	})
	if i < len(n.children) && n.children[i].edge[0] == b {
		return i, true
	}

	return i, false
}

// addChild inserts c at position i, keeping children sorted.
func (n *trieNode) addChild(i int, c *trieNode) {
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// insert adds key below n, where n's own edge has already been consumed.
// key must be non-empty. Reports whether a new key was added (false means an
// existing key's output was overwritten).
func (n *trieNode) insert(key []byte, output uint64) bool {
	i, ok := n.findChild(key[0])
	if !ok {
		// Case 1: no edge shares a prefix with the remaining key.
		n.addChild(i, &trieNode{edge: key, terminal: true, output: output})
		return true
	}

	child := n.children[i]
	cp, match := commonPrefix(child.edge, key)

	switch match {
	case prefixExact:
		added := !child.terminal
		child.terminal = true
		child.output = output

		return added

	case prefixEdge:
		// Case 2: the child's edge is a prefix of the key; descend.
		return child.insert(key[cp:], output)

	case prefixKey:
		// The key ends inside the child's edge: split the edge and mark the
		// intermediate node terminal.
		child.edge = child.edge[cp:]
		mid := &trieNode{
			edge:     key,
			children: []*trieNode{child},
			terminal: true,
			output:   output,
		}
		n.children[i] = mid

		return true

	default:
		// Case 3: strict partial common prefix; split at the divergence point
		// and attach both subtrees to a new branching node.
		mid := &trieNode{edge: child.edge[:cp]}
		child.edge = child.edge[cp:]
		leaf := &trieNode{edge: key[cp:], terminal: true, output: output}

		if child.edge[0] < leaf.edge[0] {
			mid.children = []*trieNode{child, leaf}
		} else {
			mid.children = []*trieNode{leaf, child}
		}
		n.children[i] = mid

		return true
	}
}

// get descends below n matching key, where n's own edge has already been
// consumed. key must be non-empty.
func (n *trieNode) get(key []byte) (uint64, bool) {
	i, ok := n.findChild(key[0])
	if !ok {
		return 0, false
	}

	child := n.children[i]
	cp, match := commonPrefix(child.edge, key)

	switch match {
	case prefixExact:
		return child.output, child.terminal
	case prefixEdge:
		return child.get(key[cp:])
	default:
		// Key diverges from or ends inside the edge: absent.
		return 0, false
	}
}

// walk enumerates terminal descendants of n in lexicographic order. prefix is
// the concatenation of edges above n; the yielded key slice is reused across
// yields and is only valid until the callback returns.
func (n *trieNode) walk(prefix []byte, yield func([]byte, uint64) bool) bool {
	key := append(prefix, n.edge...)

	if n.terminal && !yield(key, n.output) {
		return false
	}

	for _, child := range n.children {
		if !child.walk(key, yield) {
			return false
		}
	}

	return true
}
