package blob

import (
	"github.com/arloliu/pgcodec/endian"
	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/format"
)

const (
	// DigestMask selects the digest-present bit (bit 0) of the Options field.
	DigestMask = 0x0001
	// EndiannessMask selects the endianness bit (bit 1) of the Options field.
	EndiannessMask = 0x0002
	// ReservedMask selects the reserved bits (bits 2-3) of the Options field.
	ReservedMask = 0x000C
	// MagicNumberMask selects the magic number (bits 4-15) of the Options field.
	MagicNumberMask = 0xFFF0

	// MagicColumnV1Opt is the version 1 magic number for the column blob format.
	MagicColumnV1Opt = 0xEC10
)

// Flag is the packed options field at the start of the blob header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the digest flag, 1 means a trailing payload digest is present.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xEC10 (0b1110_1100_0001_0000): column blob format v1
	Options uint16

	// CompressionType is the compression applied to the payload section.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFlag creates a Flag with default settings: big-endian payload byte
// order (PostgreSQL network order), no compression, no digest.
func NewFlag() Flag {
	flag := Flag{
		Options:         MagicColumnV1Opt,
		CompressionType: uint8(format.CompressionNone),
	}
	flag.WithBigEndian()

	return flag
}

// HasDigest returns whether a trailing payload digest is present.
func (f Flag) HasDigest() bool {
	return (f.Options & DigestMask) != 0
}

// SetDigest enables or disables the trailing payload digest.
func (f *Flag) SetDigest(enabled bool) {
	if enabled {
		f.Options |= DigestMask
	} else {
		f.Options &^= DigestMask
	}
}

// IsLittleEndian returns whether the blob body is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the blob body is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number identifies this format.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicColumnV1Opt
}

// GetCompression returns the payload compression type.
func (f Flag) GetCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression type.
func (f *Flag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// Validate checks the magic number, reserved bits, and compression type.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	if (f.Options & ReservedMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validCompressions[f.CompressionType]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
