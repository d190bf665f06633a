// Package pathfst stores large sets of hierarchical path-like keys compactly
// and compiles them into immutable, randomly-addressable finite-state
// transducers (FSTs).
//
// Keys are accumulated into a prefix-compressed Patricia trie in any insertion
// order. Building minimizes the trie by sharing structurally identical
// subtrees anywhere in the key space, then serializes the resulting DAG into a
// single byte buffer with relative-offset addressing. Readers answer
// exact-match lookups and prefix enumerations by walking the encoded bytes
// directly, without deserializing the structure.
//
// # Core Features
//
//   - Insertion in any order; the compiled result is order-independent
//   - Global subtree sharing via content hashing (64-bit xxHash64)
//   - Variable-length node records with position-independent relative offsets
//   - Optional node region compression (None, Zstd, S2, LZ4)
//   - Zero-copy, lock-free concurrent reads over uncompressed buffers
//
// # Basic Usage
//
// Building an FST:
//
//	import "github.com/arloliu/pathfst"
//
//	builder := pathfst.NewBuilder()
//	builder.Insert([]byte("usr/bin/ls"), 101)
//	builder.Insert([]byte("usr/bin/cat"), 102)
//	builder.Insert([]byte("etc/hosts"), 7)
//
//	data, err := builder.Build()
//
// Querying it:
//
//	f, err := pathfst.Open(data)
//	output, ok := f.Get([]byte("etc/hosts"))
//	for key, output := range f.Prefix([]byte("usr/bin/")) {
//	    fmt.Printf("%s -> %d\n", key, output)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fst package,
// simplifying the most common use cases. For build options and fine-grained
// control, use the fst package directly.
package pathfst

import (
	"github.com/arloliu/pathfst/fst"
)

// Builder accumulates (key, output) pairs and compiles them into an FST
// buffer. See fst.Builder.
type Builder = fst.Builder

// Fst is an immutable reader over an encoded FST buffer. See fst.Fst.
type Fst = fst.Fst

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return fst.NewBuilder()
}

// Open validates an encoded FST buffer and returns a reader over it.
func Open(data []byte) (*Fst, error) {
	return fst.Open(data)
}
