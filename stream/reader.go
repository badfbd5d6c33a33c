package stream

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/internal/options"
	"github.com/rs/zerolog"
)

// State is the position of a Reader within the array.
type State uint8

const (
	// StateNotStarted means the opening '[' has not been found yet.
	StateNotStarted State = iota
	// StateStarted means the array is open and elements are being produced.
	StateStarted
	// StateFinished is terminal: the array closed or an unrecoverable error occurred.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateStarted:
		return "started"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Iterator produces values one at a time. Next returns io.EOF once no values remain.
type Iterator[T any] interface {
	Next() (T, error)
}

// Stats summarizes the work done by a Reader.
type Stats struct {
	// Elements is the number of values decoded successfully.
	Elements int
	// Errors is the number of per-element errors returned.
	Errors int
	// BytesRead is the number of bytes pulled from the underlying reader.
	BytesRead int64
	// PeakBuffered is the largest size the lookahead buffer reached.
	PeakBuffered int
}

// Reader yields the elements of a top-level JSON array one at a time.
//
// Only the bytes of the element being decoded (plus at most one read chunk) are held
// in memory. Bytes before the opening '[' and between elements are skipped without
// interpretation.
//
// Error handling:
//   - end of input before '[', inside an element or before ']' finishes the reader
//     with an error wrapping errs.ErrUnexpectedEOF
//   - a failing underlying reader finishes the reader with errs.ErrRead
//   - malformed element syntax finishes the reader with errs.ErrDecode
//   - a complete element that does not fit T (missing field, invalid value) returns an
//     errs.ErrDecode error and the reader stays usable; Next moves on to the next element
//
// Every element error is an *errs.ElementError carrying the element index.
//
// Note: Reader is NOT thread-safe.
type Reader[T any] struct {
	src     *Source
	decoder ValueDecoder[T]
	state   State
	index   int
	stats   Stats
	closer  io.Closer
	logger  zerolog.Logger
	closed  bool
}

var (
	_ Iterator[any] = (*Reader[any])(nil)
	_ io.ReadCloser = (*Reader[any])(nil)
)

// NewReader creates a Reader over r. A nil decoder selects JSONDecoder[T].
func NewReader[T any](r io.Reader, decoder ValueDecoder[T], opts ...ReaderOption) (*Reader[T], error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", errs.ErrInvalidOption)
	}

	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if decoder == nil {
		decoder = JSONDecoder[T]{}
	}

	src := NewSource(r, cfg.chunkSize)
	src.logger = cfg.logger

	return &Reader[T]{
		src:     src,
		decoder: decoder,
		state:   StateNotStarted,
		closer:  cfg.closer,
		logger:  cfg.logger,
	}, nil
}

// Next returns the next element of the array.
//
// It returns io.EOF (unwrapped) once the array has closed, and keeps returning io.EOF
// after any error that finished the reader.
func (r *Reader[T]) Next() (T, error) {
	var zero T

	if r.closed {
		return zero, errs.ErrReaderClosed
	}

	switch r.state {
	case StateNotStarted:
		return r.begin()
	case StateStarted:
		return r.advance()
	case StateFinished:
		return zero, io.EOF
	default:
		panic(fmt.Sprintf("stream: invalid reader state %d", r.state))
	}
}

// All returns an iterator over the remaining elements.
//
// Recoverable element errors are yielded with a zero value and iteration continues.
// Iteration stops after the array closes or an error finishes the reader.
func (r *Reader[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			value, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(value, err) {
				return
			}
			if err != nil && (r.closed || r.state == StateFinished) {
				return
			}
		}
	}
}

// Read reads raw bytes from the current position: the unconsumed lookahead first,
// then the underlying reader.
func (r *Reader[T]) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errs.ErrReaderClosed
	}

	return r.src.Read(p)
}

// State returns the current state.
func (r *Reader[T]) State() State {
	return r.state
}

// Stats returns counters for the reader so far.
func (r *Reader[T]) Stats() Stats {
	s := r.stats
	s.BytesRead = r.src.BytesRead()
	s.PeakBuffered = r.src.PeakBuffered()

	return s
}

// Close releases the lookahead buffer and closes the owned closer, if any.
// Calling Close more than once is a no-op.
func (r *Reader[T]) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	r.state = StateFinished
	r.src.Release()

	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}

func (r *Reader[T]) begin() (T, error) {
	var zero T

	if _, err := r.src.SeekByte("["); err != nil {
		return zero, r.fail(err, "before array start")
	}

	r.logger.Debug().Int64("offset", r.src.BytesRead()-int64(r.src.Buffered())).Msg("array opened")

	b, err := r.src.SkipSpace()
	if err != nil {
		return zero, r.fail(err, "after array start")
	}

	if b == ']' {
		r.src.Skip(1)
		r.finish()

		return zero, io.EOF
	}

	r.state = StateStarted

	return r.decode()
}

func (r *Reader[T]) advance() (T, error) {
	var zero T

	b, err := r.src.SeekByte(",]")
	if err != nil {
		return zero, r.fail(err, "before array end")
	}

	if b == ']' {
		r.finish()
		return zero, io.EOF
	}

	return r.decode()
}

func (r *Reader[T]) decode() (T, error) {
	idx := r.index
	r.index++

	value, rest, err := r.decoder.DecodeValue(r.src)
	r.src.Unread(rest)
	r.src.Compact()

	if err != nil {
		var zero T
		return zero, r.elementError(idx, err)
	}

	r.stats.Elements++

	return value, nil
}

// elementError classifies a decode failure and finishes the reader unless the
// element was structurally complete.
func (r *Reader[T]) elementError(idx int, err error) error {
	var kind errs.Kind

	switch {
	case errors.Is(err, errs.ErrRead):
		kind = errs.KindRead
		r.finish()
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		kind = errs.KindTruncated
		err = fmt.Errorf("inside element: %w", io.ErrUnexpectedEOF)
		r.finish()
	case errors.Is(err, errs.ErrSyntax):
		kind = errs.KindDecode
		r.finish()
	default:
		kind = errs.KindDecode
	}

	r.stats.Errors++

	return &errs.ElementError{Index: idx, Kind: kind, Err: err}
}

// fail finishes the reader after a scan failure.
func (r *Reader[T]) fail(err error, where string) error {
	r.finish()
	r.stats.Errors++

	if err == io.EOF {
		return &errs.ElementError{
			Index: r.index,
			Kind:  errs.KindTruncated,
			Err:   fmt.Errorf("%s: %w", where, io.ErrUnexpectedEOF),
		}
	}

	return &errs.ElementError{Index: r.index, Kind: errs.KindRead, Err: err}
}

func (r *Reader[T]) finish() {
	if r.state == StateFinished {
		return
	}

	r.state = StateFinished
	r.logger.Debug().
		Int("elements", r.stats.Elements).
		Int("errors", r.stats.Errors).
		Int64("bytes_read", r.src.BytesRead()).
		Int("peak_buffered", r.src.PeakBuffered()).
		Msg("array finished")
}
