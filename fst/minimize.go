package fst

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// canonNode is the canonical representative of a class of structurally
// identical subtrees. Unlike trieNodes, canonical nodes may be referenced by
// multiple parents; the minimized structure is a DAG, not a tree.
//
// Structural identity covers the edge bytes, the terminal flag, the output
// value, and the ordered (label, child identity) pairs. Two subtrees with the
// same shape but different outputs are never merged.
type canonNode struct {
	edge     []byte
	children []canonEdge
	output   uint64
	digest   uint64
	id       uint64
	terminal bool
}

// canonEdge is an outgoing transition of a canonical node. label duplicates
// child.edge[0] so parents can dispatch without loading the child.
type canonEdge struct {
	node  *canonNode
	label byte
}

// minimizer hash-conses trie nodes into canonical nodes. Digests index a
// registry of previously seen nodes; buckets hold all nodes sharing a digest
// and a deep-equality check guards against hash collisions.
type minimizer struct {
	registry map[uint64][]*canonNode
	nextID   uint64
}

func newMinimizer() *minimizer {
	return &minimizer{registry: make(map[uint64][]*canonNode)}
}

// canonicalize returns the canonical node for the subtree rooted at n,
// visiting children before parents since a node's identity depends on its
// children's identities.
func (m *minimizer) canonicalize(n *trieNode) *canonNode {
	if !n.terminal && len(n.children) == 0 && len(n.edge) > 0 {
		// Unreachable through the Builder API.
		panic("pathfst: non-terminal leaf node")
	}

	c := &canonNode{
		edge:     n.edge,
		terminal: n.terminal,
		output:   n.output,
	}
	if len(n.children) > 0 {
		c.children = make([]canonEdge, len(n.children))
		for i, child := range n.children {
			c.children[i] = canonEdge{label: child.edge[0], node: m.canonicalize(child)}
		}
	}

	c.digest = digest(c)

	for _, seen := range m.registry[c.digest] {
		if structurallyEqual(seen, c) {
			return seen
		}
	}

	c.id = m.nextID
	m.nextID++
	m.registry[c.digest] = append(m.registry[c.digest], c)

	return c
}

// digest computes the content hash of c over its edge, terminal/output state
// and ordered child identities. Children must already be canonicalized.
func digest(c *canonNode) uint64 {
	var d xxhash.Digest
	d.Reset()

	var scratch [8]byte

	// Length-prefix the edge so digest input boundaries are unambiguous.
	binary.LittleEndian.PutUint64(scratch[:], uint64(len(c.edge)))
	_, _ = d.Write(scratch[:])
	_, _ = d.Write(c.edge)

	state := byte(0)
	if c.terminal {
		state = 1
	}
	_, _ = d.Write([]byte{state})

	if c.terminal {
		binary.LittleEndian.PutUint64(scratch[:], c.output)
		_, _ = d.Write(scratch[:])
	}

	for _, child := range c.children {
		binary.LittleEndian.PutUint64(scratch[:], child.node.id)
		_, _ = d.Write([]byte{child.label})
		_, _ = d.Write(scratch[:])
	}

	return d.Sum64()
}

// structurallyEqual reports whether two canonical candidates are identical.
// Children are already canonical, so comparing child pointers is equivalent
// to comparing whole subtrees.
func structurallyEqual(a, b *canonNode) bool {
	if a.terminal != b.terminal || len(a.children) != len(b.children) {
		return false
	}
	if a.terminal && a.output != b.output {
		return false
	}
	if !bytes.Equal(a.edge, b.edge) {
		return false
	}

	for i := range a.children {
		if a.children[i].label != b.children[i].label || a.children[i].node != b.children[i].node {
			return false
		}
	}

	return true
}
