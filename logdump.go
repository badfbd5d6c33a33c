// Package logdump reads exported log dumps one record at a time.
//
// A log dump is a JSON document whose top level is an array of log entry objects,
// such as the output of `gcloud logging read --format=json`. Dumps are often far
// larger than memory, so records are decoded one by one from a stream and the
// document is never materialized.
//
// # Core Features
//
//   - Streaming array scanner with memory bounded by the largest record
//   - Strict record schema with typed errors per element (see package errs)
//   - Transparent gzip, zstd, S2 and LZ4 decompression with magic-byte detection
//   - Leading bytes before the array (banners, stray objects) are skipped
//
// # Basic Usage
//
// Iterating a dump file:
//
//	r, err := logdump.Open("dump.json.gz")
//	if err != nil {
//	    return err // wraps errs.ErrOpen
//	}
//	defer r.Close()
//
//	for entry, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(entry.Severity, entry.TextPayload)
//	}
//
// Counting records from any reader:
//
//	n, err := logdump.Count(os.Stdin)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the stream, record
// and compress packages. For other element types or custom decoders, use
// stream.NewReader directly.
package logdump

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/logdump/compress"
	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/format"
	"github.com/arloliu/logdump/internal/options"
	"github.com/arloliu/logdump/record"
	"github.com/arloliu/logdump/stream"
	"github.com/rs/zerolog"
)

// Reader yields the log entries of a dump.
type Reader = stream.Reader[record.LogEntry]

// Config holds the settings shared by the facade constructors.
type Config struct {
	// compression of the input; zero selects detection by magic bytes.
	compression format.CompressionType
	chunkSize   int
	logger      zerolog.Logger
}

// Option represents a functional option for the facade constructors.
type Option = options.Option[*Config]

// WithCompression fixes the compression of the input instead of detecting it.
func WithCompression(ct format.CompressionType) Option {
	return options.New("WithCompression", func(c *Config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithAutoDetect selects the compression by sniffing the input. This is the default.
func WithAutoDetect() Option {
	return options.NoError("WithAutoDetect", func(c *Config) {
		c.compression = 0
	})
}

// WithChunkSize sets the read chunk size of the stream reader.
func WithChunkSize(n int) Option {
	return options.New("WithChunkSize", func(c *Config) error {
		if n < stream.MinChunkSize {
			return fmt.Errorf("chunk size %d below minimum %d", n, stream.MinChunkSize)
		}
		c.chunkSize = n

		return nil
	})
}

// WithLogger sets the logger handed to the stream reader.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError("WithLogger", func(c *Config) {
		c.logger = logger
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{logger: zerolog.Nop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewReader creates a Reader over r, decompressing it as configured.
//
// The Reader does not close r. Closing it releases the decompressor.
//
// Parameters:
//   - r: Source of the (possibly compressed) dump
//   - opts: WithCompression, WithAutoDetect, WithChunkSize, WithLogger
//
// Returns:
//   - *Reader: The log entry reader
//   - error: errs.ErrInvalidOption, or errs.ErrOpen/errs.ErrRead when the
//     compressed stream cannot be opened
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newReader(cfg, r, nil)
}

// Open opens the dump at path.
//
// A failure to open the file wraps errs.ErrOpen and names the path; callers
// processing several dumps usually report it and move on. The returned Reader owns
// the file and closes it on Close.
func Open(path string, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrOpen, path, err)
	}

	r, err := newReader(cfg, f, f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.logger.Debug().Str("path", path).Msg("dump opened")

	return r, nil
}

// ReadFile calls fn for each entry of the dump at path, in order.
//
// idx counts the entries handed to fn. Reading stops at the first element error or
// the first error returned by fn, which is returned as is.
//
// Returns:
//   - int: Number of entries handed to fn
//   - error: Open, element or callback error
func ReadFile(path string, fn func(idx int, entry record.LogEntry) error, opts ...Option) (int, error) {
	r, err := Open(path, opts...)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return forEach(r, fn)
}

// Count returns the number of entries in the dump read from r.
// It stops at the first element error.
func Count(r io.Reader, opts ...Option) (int, error) {
	reader, err := NewReader(r, opts...)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	return forEach(reader, nil)
}

func forEach(r *Reader, fn func(int, record.LogEntry) error) (int, error) {
	n := 0
	for entry, err := range r.All() {
		if err != nil {
			return n, err
		}
		if fn != nil {
			if err := fn(n, entry); err != nil {
				return n, err
			}
		}
		n++
	}

	return n, nil
}

// newReader wraps src with the configured decompressor. owned, if not nil, is closed
// after the decompressor when the Reader closes.
func newReader(cfg *Config, src io.Reader, owned io.Closer) (*Reader, error) {
	rc, err := openDecompressor(cfg.compression, src)
	if err != nil {
		return nil, err
	}

	streamOpts := []stream.ReaderOption{
		stream.WithLogger(cfg.logger),
		stream.WithCloser(closers{rc, owned}),
	}
	if cfg.chunkSize > 0 {
		streamOpts = append(streamOpts, stream.WithChunkSize(cfg.chunkSize))
	}

	r, err := stream.NewReader[record.LogEntry](rc, nil, streamOpts...)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}

	return r, nil
}

func openDecompressor(ct format.CompressionType, src io.Reader) (io.ReadCloser, error) {
	if ct == 0 {
		rc, _, err := compress.NewDetectingReader(src)
		return rc, err
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	rc, err := codec.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s stream: %w", errs.ErrOpen, ct, err)
	}

	return rc, nil
}

// closers closes each non-nil closer in order and joins the errors.
type closers []io.Closer

func (cs closers) Close() error {
	var errList []error
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
