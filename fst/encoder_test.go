package fst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pathfst/internal/pool"
	"github.com/arloliu/pathfst/section"
)

func TestEncoder_SingleKeyLayout(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("ab"), 5)

	root := newMinimizer().canonicalize(b.root)

	buf := pool.NewByteBuffer(64)
	enc := newEncoder(buf)
	rootOffset := enc.emit(root)

	// Post-order: the "ab" leaf record precedes the root record.
	leaf := []byte{
		0x02, 'a', 'b', // edge
		0x01, // terminal flag
		0x05, // output
		0x00, // child count
	}
	rootRec := []byte{
		0x00,      // empty edge
		0x00,      // non-terminal
		0x01,      // one child
		'a', 0x0B, // label 'a', zigzag varint for relative offset -6
	}

	require.Equal(t, append(leaf, rootRec...), buf.Bytes())
	require.Equal(t, uint32(len(leaf)), rootOffset)
}

func TestEncoder_SharedNodeEmittedOnce(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("a/x"), 1)
	b.Insert([]byte("b/x"), 1)

	root := newMinimizer().canonicalize(b.root)
	require.Same(t, root.children[0].node.children[0].node, root.children[1].node.children[0].node)

	buf := pool.NewByteBuffer(64)
	enc := newEncoder(buf)
	enc.emit(root)

	// Records: shared "x" leaf, "a/", "b/", root.
	require.Len(t, enc.offsets, 4)

	// Both parents resolve their child to the same offset.
	shared := root.children[0].node.children[0].node
	require.Equal(t, uint32(0), enc.offsets[shared])
}

func TestEncoder_HeaderFields(t *testing.T) {
	b := NewBuilder()
	b.Insert([]byte("ab"), 5)

	data, err := b.Build()
	require.NoError(t, err)

	header, err := section.ParseHeader(data)
	require.NoError(t, err)

	require.Equal(t, section.MagicFstV1, header.Magic)
	require.Equal(t, section.Version, header.Version)
	require.Equal(t, uint32(6), header.RootOffset)
	require.Equal(t, uint32(11), header.NodeRegionSize)
	require.Equal(t, uint32(1), header.KeyCount)
	require.Equal(t, section.HeaderSize+11, len(data))
}
