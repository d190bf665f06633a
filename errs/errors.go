// Package errs defines the sentinel errors shared across pathfst packages.
//
// Callers match these values with errors.Is; call sites wrap them with
// fmt.Errorf("...: %w", err) when extra context helps.
package errs

import "errors"

// Header and buffer validation errors, reported by Fst.Open.
var (
	// ErrBufferTooShort indicates the buffer is smaller than the fixed header,
	// or the node region declared by the header does not fit in the buffer.
	ErrBufferTooShort = errors.New("buffer too short")

	// ErrInvalidMagicNumber indicates the buffer does not start with the
	// pathfst magic bytes.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates the buffer declares a format version
	// this library does not understand.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidCompressionType indicates the header declares an unknown
	// compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrInvalidNodeRegionSize indicates the decompressed node region does not
	// match the size recorded in the header.
	ErrInvalidNodeRegionSize = errors.New("invalid node region size")

	// ErrOffsetOutOfRange indicates a node or child offset points outside the
	// node region.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrMalformedVarint indicates a variable-length integer is truncated or
	// exceeds 64 bits.
	ErrMalformedVarint = errors.New("malformed varint")

	// ErrMalformedNode indicates a node record is truncated or otherwise
	// structurally invalid.
	ErrMalformedNode = errors.New("malformed node record")

	// ErrChildOrder indicates a node's child labels are not strictly ascending,
	// or a child label does not match the child's edge.
	ErrChildOrder = errors.New("child labels out of order")
)

// Builder errors.
var (
	// ErrNoKeysAdded indicates Build was called on a builder with no keys.
	ErrNoKeysAdded = errors.New("no keys added")
)
