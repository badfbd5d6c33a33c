package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/logdump/errs"
)

// ValueDecoder decodes exactly one value from a byte stream.
//
// Implementations may read past the end of the value. Any such bytes must be
// returned as rest so the caller can put them back in front of the stream.
type ValueDecoder[T any] interface {
	DecodeValue(r io.Reader) (value T, rest []byte, err error)
}

// DecoderFunc adapts a function to the ValueDecoder interface.
type DecoderFunc[T any] func(r io.Reader) (T, []byte, error)

// DecodeValue calls f(r).
func (f DecoderFunc[T]) DecodeValue(r io.Reader) (T, []byte, error) {
	return f(r)
}

// JSONDecoder decodes one JSON value into T with encoding/json.
//
// A fresh json.Decoder is used per value; the bytes it buffered beyond the value
// are returned as rest. Syntax errors are wrapped with errs.ErrSyntax.
type JSONDecoder[T any] struct {
	// UseNumber makes interface{} fields decode numbers as json.Number.
	UseNumber bool
}

var _ ValueDecoder[any] = JSONDecoder[any]{}

// DecodeValue implements ValueDecoder.
func (d JSONDecoder[T]) DecodeValue(r io.Reader) (T, []byte, error) {
	dec := json.NewDecoder(r)
	if d.UseNumber {
		dec.UseNumber()
	}

	var value T
	err := dec.Decode(&value)

	rest, rerr := io.ReadAll(dec.Buffered())
	if rerr != nil {
		return value, nil, rerr
	}

	if err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			err = fmt.Errorf("%w at offset %d: %w", errs.ErrSyntax, syntaxErr.Offset, err)
		}

		return value, rest, err
	}

	return value, rest, nil
}
