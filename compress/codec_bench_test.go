package compress

import (
	"testing"

	"github.com/arloliu/pgcodec/format"
)

func BenchmarkCompress(b *testing.B) {
	payload := samplePayload(4096)

	for _, compression := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(compression.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for bi := 0; bi < b.N; bi++ {
				if _, err := codec.Compress(payload); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	payload := samplePayload(4096)

	for _, compression := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		if err != nil {
			b.Fatal(err)
		}
		compressed, err := codec.Compress(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(compression.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for bi := 0; bi < b.N; bi++ {
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
