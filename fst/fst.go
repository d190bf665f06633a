package fst

import (
	"fmt"
	"iter"

	"github.com/arloliu/pathfst/compress"
	"github.com/arloliu/pathfst/encoding"
	"github.com/arloliu/pathfst/errs"
	"github.com/arloliu/pathfst/format"
	"github.com/arloliu/pathfst/section"
)

// Fst is an immutable view over an encoded FST buffer. All queries walk the
// encoded node records directly.
//
// An Fst performs no mutation after Open and is safe for unlimited concurrent
// readers. When the buffer is uncompressed the Fst aliases the caller's data;
// the caller must not modify the buffer while any Fst reads it.
type Fst struct {
	header section.Header
	nodes  []byte
}

// Open validates data as an encoded FST buffer and returns a reader over it.
//
// Open parses and validates the header, decompresses the node region when a
// codec is recorded, then verifies every reachable node record: varints and
// edges decode within bounds, child offsets land on earlier records, and
// child labels are strictly ascending and match the child's edge. After Open
// succeeds, queries cannot encounter malformed data.
//
// Returns:
//   - *Fst: Reader over the buffer
//   - error: errs.ErrBufferTooShort, errs.ErrInvalidMagicNumber,
//     errs.ErrUnsupportedVersion, errs.ErrInvalidCompressionType,
//     errs.ErrInvalidNodeRegionSize, errs.ErrOffsetOutOfRange,
//     errs.ErrMalformedVarint, errs.ErrMalformedNode or errs.ErrChildOrder
func Open(data []byte) (*Fst, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, errs.ErrInvalidCompressionType
	}

	nodes, err := codec.Decompress(data[section.HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress node region: %w", err)
	}
	if uint64(len(nodes)) != uint64(header.NodeRegionSize) {
		return nil, errs.ErrInvalidNodeRegionSize
	}

	f := &Fst{header: header, nodes: nodes}
	if err := f.verify(); err != nil {
		return nil, err
	}

	return f, nil
}

// Len returns the number of keys stored in the FST.
func (f *Fst) Len() int {
	return int(f.header.KeyCount)
}

// CompressionType returns the codec the node region was stored with.
func (f *Fst) CompressionType() format.CompressionType {
	return f.header.Compression
}

// Get returns the output associated with key and whether the key is present.
func (f *Fst) Get(key []byte) (uint64, bool) {
	offset := f.header.RootOffset
	rem := key

	for {
		rec, err := f.recordAt(offset)
		if err != nil {
			// Unreachable on a buffer verified by Open.
			return 0, false
		}

		cp, _ := commonPrefix(rec.edge, rem)
		if cp != len(rec.edge) {
			// Key diverges from or ends inside the edge.
			return 0, false
		}
		rem = rem[cp:]

		if len(rem) == 0 {
			return rec.output, rec.terminal
		}

		child, ok := rec.findChild(f, rem[0])
		if !ok {
			return 0, false
		}
		offset = child
	}
}

// Prefix returns a lazy sequence of all (key, output) pairs whose key starts
// with prefix, in ascending key order, with full key bytes reconstructed.
//
// The sequence is restartable; each range statement performs a fresh
// traversal, and abandoning it early leaks nothing. The yielded key slice is
// reused between iterations and is only valid until the loop body returns.
func (f *Fst) Prefix(prefix []byte) iter.Seq2[[]byte, uint64] {
	return func(yield func([]byte, uint64) bool) {
		offset := f.header.RootOffset
		rem := prefix

		// acc accumulates the edges consumed above the current record.
		var acc []byte

		for {
			rec, err := f.recordAt(offset)
			if err != nil {
				return
			}

			cp, _ := commonPrefix(rec.edge, rem)

			if cp == len(rem) {
				// Prefix exhausted, possibly mid-edge; every terminal
				// descendant of this record matches.
				f.enumerate(offset, acc, yield)
				return
			}
			if cp != len(rec.edge) {
				// Prefix diverges inside the edge: no matches.
				return
			}

			acc = append(acc, rec.edge...)
			rem = rem[cp:]

			child, ok := rec.findChild(f, rem[0])
			if !ok {
				return
			}
			offset = child
		}
	}
}

// All returns a lazy sequence of every (key, output) pair in ascending key
// order. Equivalent to Prefix(nil).
func (f *Fst) All() iter.Seq2[[]byte, uint64] {
	return f.Prefix(nil)
}

// enumerate yields all terminal descendants of the record at offset in
// depth-first, ascending child-byte order. acc holds the key bytes consumed
// above the record.
func (f *Fst) enumerate(offset uint32, acc []byte, yield func([]byte, uint64) bool) bool {
	rec, err := f.recordAt(offset)
	if err != nil {
		return false
	}

	key := append(acc, rec.edge...)

	if rec.terminal && !yield(key, rec.output) {
		return false
	}

	pos := rec.childrenPos
	for i := 0; i < rec.childCount; i++ {
		_, child, next, err := f.childAt(pos, offset)
		if err != nil {
			return false
		}
		pos = next

		if !f.enumerate(child, key, yield) {
			return false
		}
	}

	return true
}

// record is the decoded view of one node record. start is the record's own
// offset within the node region, the base child offsets are relative to.
type record struct {
	edge        []byte
	output      uint64
	start       uint32
	childCount  int
	childrenPos int
	terminal    bool
}

// recordAt decodes the record starting at offset, bounds-checking every read.
func (f *Fst) recordAt(offset uint32) (record, error) {
	if uint64(offset) >= uint64(len(f.nodes)) {
		return record{}, errs.ErrOffsetOutOfRange
	}

	pos := int(offset)

	edgeLen, n, err := encoding.Uvarint(f.nodes[pos:])
	if err != nil {
		return record{}, err
	}
	pos += n

	if edgeLen > uint64(len(f.nodes)-pos) {
		return record{}, errs.ErrMalformedNode
	}
	edge := f.nodes[pos : pos+int(edgeLen)]
	pos += int(edgeLen)

	if pos >= len(f.nodes) {
		return record{}, errs.ErrMalformedNode
	}
	flag := f.nodes[pos]
	pos++

	if flag&^flagTerminal != 0 {
		return record{}, errs.ErrMalformedNode
	}

	rec := record{edge: edge, start: offset, terminal: flag&flagTerminal != 0}

	if rec.terminal {
		rec.output, n, err = encoding.Uvarint(f.nodes[pos:])
		if err != nil {
			return record{}, err
		}
		pos += n
	}

	childCount, n, err := encoding.Uvarint(f.nodes[pos:])
	if err != nil {
		return record{}, err
	}
	pos += n

	if childCount > uint64(len(f.nodes)-pos) {
		return record{}, errs.ErrMalformedNode
	}
	rec.childCount = int(childCount)
	rec.childrenPos = pos

	return rec, nil
}

// childAt decodes the (label, relative offset) pair at pos, belonging to the
// record starting at base. It returns the label, the child's absolute offset,
// and the position of the next pair.
func (f *Fst) childAt(pos int, base uint32) (byte, uint32, int, error) {
	if pos >= len(f.nodes) {
		return 0, 0, 0, errs.ErrMalformedNode
	}
	label := f.nodes[pos]
	pos++

	rel, n, err := encoding.Varint(f.nodes[pos:])
	if err != nil {
		return 0, 0, 0, err
	}
	pos += n

	// Emission is post-order: child records always precede their parents.
	target := int64(base) + rel
	if rel >= 0 || target < 0 {
		return 0, 0, 0, errs.ErrOffsetOutOfRange
	}

	return label, uint32(target), pos, nil
}

// findChild scans the record's child pairs for label b and returns the
// child's absolute offset. Labels are stored in strictly ascending order, so
// the scan stops at the first larger label.
func (rec record) findChild(f *Fst, b byte) (uint32, bool) {
	pos := rec.childrenPos
	for i := 0; i < rec.childCount; i++ {
		label, child, next, err := f.childAt(pos, rec.start)
		if err != nil {
			return 0, false
		}
		pos = next

		if label == b {
			return child, true
		}
		if label > b {
			return 0, false
		}
	}

	return 0, false
}

// verify walks every record reachable from the root, confirming that the
// whole region decodes within bounds before any query runs. visited caches
// each record's leading edge byte (or -1 for an empty edge) so shared nodes
// are checked once and label agreement can still be confirmed for every
// referencing parent.
func (f *Fst) verify() error {
	visited := make(map[uint32]int16)

	return f.verifyRecord(f.header.RootOffset, -1, visited)
}

func (f *Fst) verifyRecord(offset uint32, wantLabel int16, visited map[uint32]int16) error {
	if lead, ok := visited[offset]; ok {
		if wantLabel >= 0 && lead != wantLabel {
			return errs.ErrChildOrder
		}

		return nil
	}

	rec, err := f.recordAt(offset)
	if err != nil {
		return err
	}

	lead := int16(-1)
	if len(rec.edge) > 0 {
		lead = int16(rec.edge[0])
	}
	visited[offset] = lead

	if wantLabel >= 0 {
		// Non-root records are reached by a labeled transition; the label
		// must be the first byte of a non-empty edge.
		if len(rec.edge) == 0 || lead != wantLabel {
			return errs.ErrChildOrder
		}
	}

	if !rec.terminal && rec.childCount == 0 {
		return errs.ErrMalformedNode
	}

	pos := rec.childrenPos
	prev := -1
	for i := 0; i < rec.childCount; i++ {
		label, child, next, err := f.childAt(pos, offset)
		if err != nil {
			return err
		}
		pos = next

		if int(label) <= prev {
			return errs.ErrChildOrder
		}
		prev = int(label)

		if err := f.verifyRecord(child, int16(label), visited); err != nil {
			return err
		}
	}

	return nil
}
