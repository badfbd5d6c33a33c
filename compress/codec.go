package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/format"
)

// Compressor wraps a destination writer with a compressing stream.
type Compressor interface {
	// NewWriter returns a writer that compresses into w.
	//
	// Closing the returned writer flushes the final frame. It never closes w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Decompressor wraps a compressed source with a decompressing stream.
//
// Example:
//
//	rc, err := compress.NewZstdCodec().NewReader(file)
//	if err != nil {
//	    return fmt.Errorf("open zstd stream: %w", err)
//	}
//	defer rc.Close()
type Decompressor interface {
	// NewReader returns a reader yielding the decompressed bytes of r.
	//
	// Closing the returned reader releases decoder resources. It never closes r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Gzip, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w for %s: %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type %s", errs.ErrInvalidCompression, compressionType)
}

// Detect sniffs the compression format of r from its leading bytes.
//
// The returned reader replays the sniffed bytes followed by the rest of r, so it must
// be used in place of r. Inputs shorter than the longest magic number are reported as
// format.CompressionNone.
func Detect(r io.Reader) (format.CompressionType, io.Reader, error) {
	head := make([]byte, format.MaxMagicLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, nil, fmt.Errorf("%w: sniff compression: %w", errs.ErrRead, err)
	}
	head = head[:n]

	return format.DetectCompression(head), io.MultiReader(bytes.NewReader(head), r), nil
}

// NewDetectingReader detects the compression of r and returns a decompressed stream.
func NewDetectingReader(r io.Reader) (io.ReadCloser, format.CompressionType, error) {
	ct, replay, err := Detect(r)
	if err != nil {
		return nil, 0, err
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, 0, err
	}

	rc, err := codec.NewReader(replay)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open %s stream: %w", errs.ErrOpen, ct, err)
	}

	return rc, ct, nil
}
