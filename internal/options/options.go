// Package options implements the generic functional-option pattern used by the
// reader constructors.
package options

import (
	"fmt"

	"github.com/arloliu/logdump/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
	name() string
}

// Func is an Option backed by a named function.
type Func[T any] struct {
	label     string
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

func (f *Func[T]) name() string {
	return f.label
}

// New creates a named option whose function may reject its input.
// The name appears in the error returned by Apply.
func New[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{label: name, applyFunc: fn}
}

// NoError creates a named option that cannot fail.
func NoError[T any](name string, fn func(T)) *Func[T] {
	return &Func[T]{
		label: name,
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
// Failures are wrapped with errs.ErrInvalidOption and the option name.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("%w %s: %w", errs.ErrInvalidOption, opt.name(), err)
		}
	}

	return nil
}
