package section

const (
	// HeaderSize is the size of the fixed FST header in bytes.
	HeaderSize = 16

	// MagicFstV1 is the version 1 magic number of the FST buffer format.
	// Stored little-endian, the first two bytes on the wire are 0xFF, 0xDF.
	MagicFstV1 = uint16(0xDFFF)

	// Version is the current format version written by the encoder.
	Version = uint8(1)

	// Header field byte offsets.
	MagicOffset          = 0  // bytes 0-1: magic number
	VersionOffset        = 2  // byte 2: format version
	CompressionOffset    = 3  // byte 3: node region compression type
	RootOffsetOffset     = 4  // bytes 4-7: root record offset into the node region
	NodeRegionSizeOffset = 8  // bytes 8-11: uncompressed node region size
	KeyCountOffset       = 12 // bytes 12-15: number of keys
)
