// Package fst builds and reads compact finite-state transducers over
// hierarchical path-like keys.
//
// A Builder accumulates (key, output) pairs in any order into a
// prefix-compressed Patricia trie. Build minimizes the trie by sharing
// structurally identical subtrees, then serializes the resulting DAG into an
// immutable byte buffer. Open wraps such a buffer in an Fst that answers
// exact-match lookups and prefix enumerations by walking the encoded bytes
// directly, without materializing an in-memory tree.
//
// # Basic Usage
//
//	builder := fst.NewBuilder()
//	builder.Insert([]byte("usr/bin/ls"), 1)
//	builder.Insert([]byte("usr/bin/cat"), 2)
//
//	data, _ := builder.Build()
//
//	f, _ := fst.Open(data)
//	output, ok := f.Get([]byte("usr/bin/ls")) // 1, true
//	for key, output := range f.Prefix([]byte("usr/bin/")) {
//	    fmt.Printf("%s -> %d\n", key, output)
//	}
//
// Builders are single-owner and not safe for concurrent use. An Fst is
// immutable and safe for unlimited concurrent readers.
package fst

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/pathfst/compress"
	"github.com/arloliu/pathfst/errs"
	"github.com/arloliu/pathfst/internal/pool"
	"github.com/arloliu/pathfst/section"
)

// Builder is a mutable Patricia trie that accumulates keys in any insertion
// order and compiles them into an encoded FST buffer.
//
// Note: The Builder is NOT thread-safe. Each builder instance should be used
// by a single goroutine at a time.
type Builder struct {
	root *trieNode
	size int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: &trieNode{}}
}

// Insert adds key with the given output value, or overwrites the output when
// the key is already present (last write wins). The empty key is valid.
//
// Key bytes are copied; the caller may reuse the slice.
func (b *Builder) Insert(key []byte, output uint64) {
	if len(key) == 0 {
		if !b.root.terminal {
			b.size++
		}
		b.root.terminal = true
		b.root.output = output

		return
	}

	owned := make([]byte, len(key))
	copy(owned, key)

	if b.root.insert(owned, output) {
		b.size++
	}
}

// Get returns the output associated with key and whether the key is present.
func (b *Builder) Get(key []byte) (uint64, bool) {
	if len(key) == 0 {
		return b.root.output, b.root.terminal
	}

	return b.root.get(key)
}

// Len returns the number of distinct keys inserted.
func (b *Builder) Len() int {
	return b.size
}

// All returns a lazy sequence of (key, output) pairs in lexicographic key
// order, independent of insertion order. The sequence is restartable; each
// range statement performs a fresh traversal.
//
// The yielded key slice is reused between iterations and is only valid until
// the loop body returns; copy it if it must be retained.
func (b *Builder) All() iter.Seq2[[]byte, uint64] {
	return func(yield func([]byte, uint64) bool) {
		b.root.walk(nil, yield)
	}
}

// Build minimizes and serializes the current key set into an immutable FST
// buffer. The builder remains usable afterwards; Build is a pure snapshot.
//
// Returns:
//   - []byte: Encoded buffer, ready for Open
//   - error: errs.ErrNoKeysAdded if no keys were inserted, or codec errors
func (b *Builder) Build(opts ...BuildOption) ([]byte, error) {
	if b.size == 0 {
		return nil, errs.ErrNoKeysAdded
	}

	cfg := newBuildConfig(opts...)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	root := newMinimizer().canonicalize(b.root)

	buf := pool.GetNodeBuffer()
	defer pool.PutNodeBuffer(buf)

	enc := newEncoder(buf)
	rootOffset := enc.emit(root)

	region := buf.Bytes()
	if len(region) > math.MaxUint32 {
		return nil, fmt.Errorf("node region size %d exceeds format limit", len(region))
	}

	compressed, err := codec.Compress(region)
	if err != nil {
		return nil, fmt.Errorf("compress node region: %w", err)
	}

	header := section.NewHeader(cfg.compression)
	header.RootOffset = rootOffset
	header.NodeRegionSize = uint32(len(region))
	header.KeyCount = uint32(b.size)

	out := make([]byte, 0, section.HeaderSize+len(compressed))
	out = append(out, header.Bytes()...)
	out = append(out, compressed...)

	return out, nil
}
