package compress

// ZstdCodec provides Zstandard stream compression.
//
// The pure Go implementation (klauspost/compress/zstd) is used by default. Building
// with the gozstd tag and cgo enabled switches to the libzstd binding (valyala/gozstd).
//
// Characteristics:
//   - Best compression ratio of the built-in codecs on repetitive log text
//   - Decoder memory is bounded by the frame window, not the stream size
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
//
// Example:
//
//	w, err := compress.NewZstdCodec().NewWriter(file)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
