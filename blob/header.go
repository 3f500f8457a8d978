package blob

import (
	"github.com/arloliu/pgcodec/errs"
)

const (
	// HeaderSize is the fixed size of the blob header in bytes.
	HeaderSize = 16
	// DigestSize is the size of the optional trailing payload digest in bytes.
	DigestSize = 8
	// indexEntryFixedSize is the size of an index entry before the column name.
	indexEntryFixedSize = 22

	// MaxColumnCount is the maximum number of columns allowed in a single blob.
	MaxColumnCount = 65536
	// MaxColumnNameLength is the hard upper bound on column name length; the
	// index stores the length in one byte.
	MaxColumnNameLength = 255
)

// Header is the fixed-size section at the start of a blob.
//
// Multi-byte fields after the Options word use the byte order declared by the
// endianness bit; the Options word itself is always little-endian so a
// decoder can read it before it knows the byte order.
type Header struct {
	// Flag is the packed field for options, magic number, and compression.
	Flag Flag // byte offset 0-3

	// ColumnCount is the number of columns stored in the blob.
	ColumnCount uint32 // byte offset 4-7
	// PayloadOffset is the byte offset to the start of the payload section.
	// It records the offset after the index section.
	PayloadOffset uint32 // byte offset 8-11
	// PayloadLength is the length of the payload section after compression.
	PayloadLength uint32 // byte offset 12-15
}

// NewHeader creates a Header with default flags. The column count and payload
// offsets are set when the encoder finishes.
func NewHeader() *Header {
	return &Header{
		Flag: NewFlag(),
	}
}

// Parse parses the header from the start of a blob.
//
// Returns ErrInvalidHeaderSize if fewer than HeaderSize bytes are available,
// or a flag validation error.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The Options word is read little-endian to learn the byte order of
	// everything that follows.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	if data[2] != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.ColumnCount = engine.Uint32(data[4:8])
	h.PayloadOffset = engine.Uint32(data[8:12])
	h.PayloadLength = engine.Uint32(data[12:16])

	return nil
}

// Append appends the encoded header to buf and returns the extended slice.
func (h *Header) Append(buf []byte) []byte {
	buf = append(buf, byte(h.Flag.Options), byte(h.Flag.Options>>8))
	buf = append(buf, 0, h.Flag.CompressionType)

	engine := h.Flag.GetEndianEngine()
	buf = engine.AppendUint32(buf, h.ColumnCount)
	buf = engine.AppendUint32(buf, h.PayloadOffset)
	buf = engine.AppendUint32(buf, h.PayloadLength)

	return buf
}
