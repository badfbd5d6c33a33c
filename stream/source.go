package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/internal/pool"
	"github.com/rs/zerolog"
)

// maxConsecutiveEmptyReads bounds how many (0, nil) reads are tolerated before
// a source is reported as stuck.
const maxConsecutiveEmptyReads = 100

// Source is a lookahead buffer over an io.Reader.
//
// It answers "where is the next byte out of this set?" while reading every input byte
// exactly once, and it is itself an io.Reader: reads are served from the unconsumed
// lookahead first and then fall through to the underlying reader. That lets a value
// decoder consume bytes through the Source without a separate copy of the lookahead.
//
// Invariant: 0 <= off <= buf.Len(); buf.B[off:] is unconsumed lookahead and
// buf.B[:off] is consumed, waiting to be compacted away.
//
// Note: Source is NOT thread-safe.
type Source struct {
	r         io.Reader
	buf       *pool.ByteBuffer
	off       int
	chunkSize int
	bytesRead int64
	peak      int
	logger    zerolog.Logger
}

// NewSource creates a Source reading chunkSize bytes at a time.
// A non-positive chunkSize selects pool.ChunkSize.
func NewSource(r io.Reader, chunkSize int) *Source {
	if chunkSize <= 0 {
		chunkSize = pool.ChunkSize
	}

	return &Source{
		r:         r,
		buf:       pool.GetLookaheadBuffer(),
		chunkSize: chunkSize,
		logger:    zerolog.Nop(),
	}
}

// SeekByte consumes input up to and including the first byte contained in set and
// returns that byte.
//
// The unconsumed lookahead is searched first. Bytes searched without a match are
// skipped, so the buffer is compacted before each new chunk is read and only the
// freshly read bytes are scanned.
//
// Returns io.EOF when the input ends without a match, or an error wrapping
// errs.ErrRead when the underlying reader fails.
func (s *Source) SeekByte(set string) (byte, error) {
	if b, ok := s.scanTail(set); ok {
		return b, nil
	}

	for {
		s.skipAll()

		n, err := s.fill()
		if n > 0 {
			if b, ok := s.scanTail(set); ok {
				return b, nil
			}
		}
		if err != nil {
			return 0, err
		}
	}
}

// SkipSpace consumes JSON whitespace and returns the next byte without consuming it.
func (s *Source) SkipSpace() (byte, error) {
	for {
		tail := s.tail()
		for i, b := range tail {
			if !isSpace(b) {
				s.off += i
				return b, nil
			}
		}

		s.skipAll()

		n, err := s.fill()
		if n == 0 && err != nil {
			return 0, err
		}
	}
}

// Skip consumes up to n bytes of the unconsumed lookahead and returns how many
// were skipped. It never reads from the underlying reader.
func (s *Source) Skip(n int) int {
	n = max(0, min(n, s.Buffered()))
	s.off += n

	return n
}

// Compact discards the consumed prefix of the buffer.
func (s *Source) Compact() {
	if s.off == 0 {
		return
	}

	s.buf.Discard(s.off)
	s.off = 0
}

// Read implements io.Reader over the unconsumed lookahead followed by the
// underlying reader.
func (s *Source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if s.off < s.buf.Len() {
		n := copy(p, s.buf.B[s.off:])
		s.off += n

		return n, nil
	}

	n, err := s.r.Read(p)
	s.bytesRead += int64(n)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", errs.ErrRead, err)
	}

	return n, err
}

// Unread puts p back in front of the unconsumed lookahead.
//
// Decoders that read ahead in chunks hand back the bytes they did not use,
// so the next search starts exactly after the decoded value.
func (s *Source) Unread(p []byte) {
	if len(p) == 0 {
		return
	}

	if len(p) <= s.off {
		s.off -= len(p)
		copy(s.buf.B[s.off:], p)

		return
	}

	s.Compact()
	oldCap := s.buf.Cap()
	s.buf.Prepend(p)
	s.notePeak(oldCap)
}

// Buffered returns the number of unconsumed lookahead bytes.
func (s *Source) Buffered() int {
	return s.buf.Len() - s.off
}

// PeakBuffered returns the largest number of bytes the buffer has held.
func (s *Source) PeakBuffered() int {
	return s.peak
}

// BytesRead returns the number of bytes read from the underlying reader.
func (s *Source) BytesRead() int64 {
	return s.bytesRead
}

// Release returns the buffer to the pool. The Source must not be used afterwards.
func (s *Source) Release() {
	if s.buf == nil {
		return
	}

	pool.PutLookaheadBuffer(s.buf)
	s.buf = nil
	s.off = 0
}

func (s *Source) tail() []byte {
	return s.buf.B[s.off:]
}

// scanTail consumes the lookahead up to and including the first byte in set.
func (s *Source) scanTail(set string) (byte, bool) {
	i := bytes.IndexAny(s.tail(), set)
	if i < 0 {
		return 0, false
	}

	b := s.buf.B[s.off+i]
	s.off += i + 1

	return b, true
}

// skipAll marks the whole lookahead consumed and compacts it away.
func (s *Source) skipAll() {
	s.off = s.buf.Len()
	s.Compact()
}

// fill appends one chunk from the underlying reader to the buffer.
// It returns the number of bytes appended; io.EOF is returned unwrapped.
func (s *Source) fill() (int, error) {
	for range maxConsecutiveEmptyReads {
		oldCap := s.buf.Cap()
		spare := s.buf.Reserve(s.chunkSize)

		n, err := s.r.Read(spare[:s.chunkSize])
		if n < 0 || n > s.chunkSize {
			return 0, fmt.Errorf("%w: reader returned invalid count %d", errs.ErrRead, n)
		}
		s.buf.Commit(n)
		s.bytesRead += int64(n)
		s.notePeak(oldCap)

		if err == io.EOF {
			return n, io.EOF
		}
		if err != nil {
			return n, fmt.Errorf("%w: %w", errs.ErrRead, err)
		}
		if n > 0 {
			return n, nil
		}
	}

	return 0, fmt.Errorf("%w: %w", errs.ErrRead, io.ErrNoProgress)
}

func (s *Source) notePeak(oldCap int) {
	if n := s.buf.Len(); n > s.peak {
		s.peak = n
	}
	if newCap := s.buf.Cap(); newCap > oldCap {
		s.logger.Debug().
			Int("old_cap", oldCap).
			Int("new_cap", newCap).
			Msg("lookahead buffer grown")
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
