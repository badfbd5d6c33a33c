package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec reads and writes gzip streams, the usual format of archived log exports.
type GzipCodec struct {
	level int
}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a gzip codec with the default compression level.
func NewGzipCodec() GzipCodec {
	return GzipCodec{level: gzip.DefaultCompression}
}

// NewWriter returns a gzip writer over w.
func (c GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := gzip.NewWriterLevel(w, c.level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}

	return zw, nil
}

// NewReader returns a gzip reader over r. Concatenated members are read as one stream.
func (c GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}

	return zr, nil
}
