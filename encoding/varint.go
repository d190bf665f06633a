// Package encoding provides the low-level integer encodings used by the
// pathfst node record format.
//
// Node records store lengths, counts and outputs as unsigned LEB128 varints,
// and child offsets as zigzag-encoded signed varints. All decode functions are
// bounds-checked: they never read past the supplied slice and report
// truncation or overflow as errs.ErrMalformedVarint instead of guessing.
package encoding

import (
	"encoding/binary"

	"github.com/arloliu/pathfst/errs"
)

// MaxVarintLen is the maximum number of bytes a 64-bit varint occupies.
const MaxVarintLen = binary.MaxVarintLen64

// AppendUvarint appends v to buf as an unsigned varint and returns the
// extended buffer.
func AppendUvarint(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

// Uvarint decodes an unsigned varint from the start of buf.
//
// Returns:
//   - uint64: Decoded value
//   - int: Number of bytes consumed
//   - error: errs.ErrMalformedVarint if buf is truncated or the value overflows 64 bits
func Uvarint(buf []byte) (uint64, int, error) {
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, 0, errs.ErrMalformedVarint
	}

	return v, n, nil
}

// AppendVarint appends v to buf as a zigzag-encoded signed varint and returns
// the extended buffer.
func AppendVarint(buf []byte, v int64) []byte {
	return binary.AppendVarint(buf, v)
}

// Varint decodes a zigzag-encoded signed varint from the start of buf.
//
// Returns:
//   - int64: Decoded value
//   - int: Number of bytes consumed
//   - error: errs.ErrMalformedVarint if buf is truncated or the value overflows 64 bits
func Varint(buf []byte) (int64, int, error) {
	v, n := binary.Varint(buf)
	if n <= 0 {
		return 0, 0, errs.ErrMalformedVarint
	}

	return v, n, nil
}

// UvarintLen returns the number of bytes AppendUvarint would write for v.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
