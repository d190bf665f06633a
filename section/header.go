// Package section defines the fixed-size header section of an encoded FST
// buffer and its binary layout.
//
// The header occupies the first 16 bytes of every buffer:
//
//	byte 0-1:   magic number (0xDFFF, little-endian: 0xFF 0xDF on the wire)
//	byte 2:     format version
//	byte 3:     node region compression type
//	byte 4-7:   root record offset into the uncompressed node region
//	byte 8-11:  uncompressed node region size in bytes
//	byte 12-15: number of keys stored in the FST
//
// All multi-byte fields are little-endian. The node region follows the header
// immediately and runs to the end of the buffer (compressed form when the
// compression type is not None).
package section

import (
	"github.com/arloliu/pathfst/endian"
	"github.com/arloliu/pathfst/errs"
	"github.com/arloliu/pathfst/format"
)

// Header represents the fixed-size header section at the start of an encoded
// FST buffer.
type Header struct {
	// Magic identifies the buffer as a pathfst FST.
	Magic uint16
	// Version is the format version of the buffer.
	Version uint8
	// Compression is the codec applied to the node region.
	Compression format.CompressionType
	// RootOffset is the byte offset of the root node record within the
	// uncompressed node region.
	RootOffset uint32
	// NodeRegionSize is the uncompressed size of the node region in bytes.
	NodeRegionSize uint32
	// KeyCount is the number of keys stored in the FST.
	KeyCount uint32
}

// NewHeader creates a Header for the current format version with the given
// compression type. The root offset, node region size and key count are set
// by the encoder when it finishes.
func NewHeader(compression format.CompressionType) Header {
	return Header{
		Magic:       MagicFstV1,
		Version:     Version,
		Compression: compression,
	}
}

// Parse parses the header from a byte slice and validates it.
//
// Parameters:
//   - data: Byte slice starting with the header (must be at least 16 bytes)
//
// Returns:
//   - error: errs.ErrBufferTooShort, errs.ErrInvalidMagicNumber,
//     errs.ErrUnsupportedVersion or errs.ErrInvalidCompressionType
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrBufferTooShort
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = engine.Uint16(data[MagicOffset : MagicOffset+2])
	h.Version = data[VersionOffset]
	h.Compression = format.CompressionType(data[CompressionOffset])
	h.RootOffset = engine.Uint32(data[RootOffsetOffset : RootOffsetOffset+4])
	h.NodeRegionSize = engine.Uint32(data[NodeRegionSizeOffset : NodeRegionSizeOffset+4])
	h.KeyCount = engine.Uint32(data[KeyCountOffset : KeyCountOffset+4])

	return h.Validate()
}

// Validate checks the parsed header fields against the supported format.
func (h *Header) Validate() error {
	if h.Magic != MagicFstV1 {
		return errs.ErrInvalidMagicNumber
	}
	if h.Version != Version {
		return errs.ErrUnsupportedVersion
	}
	if !h.Compression.IsValid() {
		return errs.ErrInvalidCompressionType
	}
	if h.RootOffset >= h.NodeRegionSize {
		return errs.ErrOffsetOutOfRange
	}

	return nil
}

// Bytes serializes the header into a fresh 16-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[MagicOffset:MagicOffset+2], h.Magic)
	b[VersionOffset] = h.Version
	b[CompressionOffset] = uint8(h.Compression)
	engine.PutUint32(b[RootOffsetOffset:RootOffsetOffset+4], h.RootOffset)
	engine.PutUint32(b[NodeRegionSizeOffset:NodeRegionSizeOffset+4], h.NodeRegionSize)
	engine.PutUint32(b[KeyCountOffset:KeyCountOffset+4], h.KeyCount)

	return b
}

// ParseHeader parses and validates a Header from a byte slice.
//
// Returns:
//   - Header: Parsed header struct
//   - error: Validation errors from Parse
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
