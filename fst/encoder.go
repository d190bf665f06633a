package fst

import (
	"github.com/arloliu/pathfst/encoding"
	"github.com/arloliu/pathfst/internal/pool"
)

// flagTerminal marks a node record at which a complete key ends. The
// remaining flag bits are reserved and must be zero.
const flagTerminal = byte(0x01)

// Node record layout, appended back-to-back into the node region:
//
//	uvarint edge length
//	edge bytes
//	flag byte (bit 0: terminal)
//	uvarint output            (present iff terminal)
//	uvarint child count
//	child count times:
//	    label byte             (leading byte of the child's edge)
//	    signed varint offset   (child record start minus this record start)
//
// Emission is depth-first post-order, so every child record precedes its
// parents and all child offsets are strictly negative. Shared canonical nodes
// are emitted exactly once; later parents reference the memoized offset.
type encoder struct {
	buf     *pool.ByteBuffer
	offsets map[*canonNode]uint32
}

func newEncoder(buf *pool.ByteBuffer) *encoder {
	return &encoder{
		buf:     buf,
		offsets: make(map[*canonNode]uint32),
	}
}

// emit appends the record for c (and, first, any unemitted descendants) and
// returns the byte offset of c's record within the node region.
func (e *encoder) emit(c *canonNode) uint32 {
	if offset, ok := e.offsets[c]; ok {
		return offset
	}

	childOffsets := make([]uint32, len(c.children))
	for i, child := range c.children {
		childOffsets[i] = e.emit(child.node)
	}

	start := uint32(e.buf.Len())

	e.buf.Grow(encoding.MaxVarintLen + len(c.edge))

	b := e.buf.B
	b = encoding.AppendUvarint(b, uint64(len(c.edge)))
	b = append(b, c.edge...)

	if c.terminal {
		b = append(b, flagTerminal)
		b = encoding.AppendUvarint(b, c.output)
	} else {
		b = append(b, 0)
	}

	b = encoding.AppendUvarint(b, uint64(len(c.children)))
	for i, child := range c.children {
		b = append(b, child.label)
		b = encoding.AppendVarint(b, int64(childOffsets[i])-int64(start))
	}

	e.buf.B = b
	e.offsets[c] = start

	return start
}
