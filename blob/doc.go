// Package blob packs columns of binary-encoded PostgreSQL values into a
// single self-describing payload for storage or transmission.
//
// A blob holds any number of named, typed columns. Each column carries values
// of exactly one type (date, timestamp, interval, or numeric) in their binary
// wire representation. Column names are hashed to xxHash64 IDs for compact
// index entries and fast lookup; the original names are stored alongside so
// decoders can list and verify them.
//
// # Blob Layout
//
//	┌────────────────┬───────────────┬──────────────────┬──────────────┐
//	│ Header (16B)   │ Index section │ Payload section  │ Digest (8B)  │
//	│                │ (per column)  │ (compressed)     │ (optional)   │
//	└────────────────┴───────────────┴──────────────────┴──────────────┘
//
// Header (fixed 16 bytes):
//
//	Bytes 0-1:   Options (always little-endian)
//	             Bit 0:     digest present
//	             Bit 1:     endianness (0=little-endian, 1=big-endian)
//	             Bits 2-3:  reserved, must be zero
//	             Bits 4-15: magic number (0xEC10 for column blob format v1)
//	Byte  2:     reserved, must be zero
//	Byte  3:     compression type (format.CompressionType)
//	Bytes 4-7:   column count
//	Bytes 8-11:  payload offset (header size + index section size)
//	Bytes 12-15: payload length (after compression)
//
// Index entry (22 bytes + name):
//
//	Bytes 0-7:   column ID (xxHash64 of the column name)
//	Byte  8:     value type (format.ValueType)
//	Byte  9:     name length in bytes
//	Bytes 10-13: value count
//	Bytes 14-17: byte offset into the decompressed payload
//	Bytes 18-21: byte length within the decompressed payload
//	Bytes 22-:   column name
//
// Multi-byte header and index fields after the Options word use the byte
// order the Options endianness bit declares. The payload section holds the
// concatenated wire encodings of every column's values, compressed as one
// unit. The optional trailing digest is the xxHash64 of the decompressed
// payload and lets decoders detect corruption that slips past the
// compression layer's own framing.
//
// # Encoding
//
//	enc, err := blob.NewEncoder(blob.WithCompression(format.CompressionZstd))
//	if err != nil { ... }
//	if err := enc.StartColumn("created", format.TypeDate); err != nil { ... }
//	for _, d := range days {
//	    if err := enc.AddDate(d); err != nil { ... }
//	}
//	if err := enc.EndColumn(); err != nil { ... }
//	payload, err := enc.Finish()
//
// An Encoder is single-use: after Finish returns, create a new Encoder for
// the next blob. Encoders are not safe for concurrent use.
//
// # Decoding
//
//	dec, err := blob.NewDecoder(payload)
//	if err != nil { ... }
//	days, err := dec.Dates("created")
//
// NewDecoder validates the header, index, digest, and payload bounds before
// returning; the typed accessors only fail on a missing column or a type
// mismatch. Decoders are read-only after construction and safe for
// concurrent use.
package blob
