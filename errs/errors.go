// Package errs defines the error taxonomy shared by the logdump packages.
//
// Every failure surfaced by a reader belongs to one of four kinds:
//
//   - KindOpen: the input could not be opened (callers usually skip that input)
//   - KindRead: the underlying byte source failed mid-scan
//   - KindTruncated: the input ended before the array opened, inside a value, or before the array closed
//   - KindDecode: a value was malformed, missed a required field, or held an invalid value
//
// Callers branch with errors.Is against the sentinel of a kind, or with KindOf.
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels.
var (
	ErrOpen          = errors.New("open failure")
	ErrRead          = errors.New("read failure")
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrDecode        = errors.New("decode failure")
)

// Causes of a decode failure. The field-level ones are carried by a FieldError.
var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
	ErrInvalidType  = errors.New("invalid type")
	// ErrSyntax marks a value whose JSON grammar is broken; the stream position
	// after it is unknown, so no further values can be read.
	ErrSyntax = errors.New("malformed value")
)

// Configuration and lifecycle errors.
var (
	ErrInvalidOption      = errors.New("invalid option")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrReaderClosed       = errors.New("reader closed")
)

// Kind classifies a failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindOpen
	KindRead
	KindTruncated
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindRead:
		return "read"
	case KindTruncated:
		return "truncated"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinel returns the sentinel error for the kind, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	switch k {
	case KindOpen:
		return ErrOpen
	case KindRead:
		return ErrRead
	case KindTruncated:
		return ErrUnexpectedEOF
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// KindOf reports the kind of err. Truncation is checked before decode so that an
// element which ended early is never reported as a plain decode failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrOpen):
		return KindOpen
	case errors.Is(err, ErrRead):
		return KindRead
	case errors.Is(err, ErrUnexpectedEOF):
		return KindTruncated
	case errors.Is(err, ErrDecode):
		return KindDecode
	default:
		return KindUnknown
	}
}

// ElementError reports a failure while producing the value at Index of the array.
type ElementError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *ElementError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("element %d: %s", e.Index, e.Kind.Sentinel())
	}

	return fmt.Sprintf("element %d: %s: %v", e.Index, e.Kind.Sentinel(), e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ElementError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// FieldError reports a problem with a single field of a record.
type FieldError struct {
	Field string
	// Value is the offending text, empty when the field is missing.
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("field %q: %v %q", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// MissingField returns a FieldError for an absent required field.
func MissingField(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrMissingField}
}

// InvalidValue returns a FieldError naming the text that could not be mapped.
func InvalidValue(field, value string) *FieldError {
	return &FieldError{Field: field, Value: value, Err: ErrInvalidValue}
}

// InvalidType returns a FieldError for a value of the wrong JSON type.
func InvalidType(field, value string) *FieldError {
	return &FieldError{Field: field, Value: value, Err: ErrInvalidType}
}
