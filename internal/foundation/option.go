// Package foundation holds small generic helpers shared by the pipeline.
package foundation

// Option is a value that may be absent. Best-effort sub-results such as a
// failed analytics query or a missing credential are carried as None and
// defaulted by the caller.
type Option[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.present }
func (o Option[T]) IsNone() bool { return !o.present }

// Unwrap returns the value and panics on None.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("foundation: Unwrap on None")
	}
	return o.value
}

// UnwrapOr returns the value, or fallback on None.
func (o Option[T]) UnwrapOr(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Or returns o when present, otherwise other.
func (o Option[T]) Or(other Option[T]) Option[T] {
	if o.present {
		return o
	}
	return other
}

// ToPointer returns a copy of the value, or nil on None. JSON encodes the
// nil as null.
func (o Option[T]) ToPointer() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}
