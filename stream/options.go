package stream

import (
	"errors"
	"io"

	"github.com/arloliu/logdump/internal/options"
	"github.com/rs/zerolog"
)

// MinChunkSize is the smallest accepted read chunk.
const MinChunkSize = 16

// ReaderConfig holds the settings of a Reader.
type ReaderConfig struct {
	chunkSize int
	logger    zerolog.Logger
	closer    io.Closer
}

// ReaderOption represents a functional option for configuring a Reader.
type ReaderOption = options.Option[*ReaderConfig]

func newReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		logger: zerolog.Nop(),
	}
}

// WithChunkSize sets how many bytes are read from the underlying reader at a time.
// The lookahead buffer grows in increments of this size.
func WithChunkSize(n int) ReaderOption {
	return options.New("WithChunkSize", func(c *ReaderConfig) error {
		if n < MinChunkSize {
			return errors.New("chunk size below minimum")
		}
		c.chunkSize = n

		return nil
	})
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger zerolog.Logger) ReaderOption {
	return options.NoError("WithLogger", func(c *ReaderConfig) {
		c.logger = logger
	})
}

// WithCloser hands ownership of c to the Reader; Close closes it.
func WithCloser(closer io.Closer) ReaderOption {
	return options.NoError("WithCloser", func(c *ReaderConfig) {
		c.closer = closer
	})
}
