// Package compress provides compression codecs for pgcodec blob payloads.
//
// Compression is applied at the payload level after the column values have
// been encoded to their binary wire representation. The package supports
// four algorithms, selected via format.CompressionType:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// All built-in codecs are stateless values and safe for concurrent use.
// Use GetCodec to obtain the shared instance for a compression type:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// # Zstd Backends
//
// The Zstd codec has two implementations selected at build time. When cgo is
// available it uses valyala/gozstd (bindings to the reference C library); in
// pure-Go builds it falls back to klauspost/compress/zstd. The two produce
// interchangeable streams, so blobs written by one backend decompress with
// the other.
//
// # Integration with the Blob Package
//
// The blob package uses this package internally. Configure compression via
// encoder options:
//
//	enc, _ := blob.NewEncoder(blob.WithCompression(format.CompressionLZ4))
//
// Decoders detect the algorithm from the blob header and decompress
// transparently.
package compress
