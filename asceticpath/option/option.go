// Package option distinguishes "no value" from a zero value, e.g. an
// optional route parameter that did not participate in a match versus one
// that captured an empty string.
package option

import "fmt"

type Option[T any] struct {
	val   T
	valid bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{val: val, valid: true}
}

func Nothing[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool {
	return o.valid
}

func (o Option[T]) IsNothing() bool {
	return !o.valid
}

// Unwrap panics on Nothing.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("option: Unwrap called on Nothing")
	}
	return o.val
}

func (o Option[T]) UnwrapOr(def T) T {
	if o.valid {
		return o.val
	}
	return def
}

func (o Option[T]) UnwrapOrZero() T {
	return o.val
}

// Get returns the value and whether it is present, for use in if-statements.
func (o Option[T]) Get() (T, bool) {
	return o.val, o.valid
}

func (o Option[T]) String() string {
	if o.valid {
		return fmt.Sprintf("Some(%v)", o.val)
	}
	return "Nothing"
}
