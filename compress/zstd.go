package compress

// ZstdCodec compresses payloads with Zstandard. It offers the best
// compression ratio of the supported algorithms and is the right choice when
// blobs are archived or shipped over constrained links.
//
// The Compress and Decompress methods are provided by one of two build-tagged
// backends: valyala/gozstd when cgo is available, klauspost/compress/zstd
// otherwise. See the package documentation for details.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
