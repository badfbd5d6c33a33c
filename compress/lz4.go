package compress

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec uses the LZ4 frame format.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
//
// Returns:
//   - LZ4Codec: New LZ4 codec instance
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// NewWriter returns an LZ4 frame writer over w.
//
// Parameters:
//   - w: Destination of the compressed frame
//
// Returns:
//   - io.WriteCloser: Writer whose Close writes the frame trailer
//   - error: Writer configuration error if any
func (c LZ4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ConcurrencyOption(1)); err != nil {
		return nil, fmt.Errorf("lz4 writer: %w", err)
	}

	return zw, nil
}

// NewReader returns an LZ4 frame reader over r.
func (c LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
