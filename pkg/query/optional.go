package query

type optionalState uint8

const (
	optionalUnset optionalState = iota
	optionalSet
	optionalCleared
)

// Optional distinguishes "not set" from "set" from "explicitly cleared".
// The zero value is unset and is never sent. A cleared Optional is sent with an empty value,
// which is how the API erases a server-side field.
type Optional[T any] struct {
	value T
	state optionalState
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, state: optionalSet}
}

// Clear returns an Optional that asks the server to erase the field.
func Clear[T any]() Optional[T] {
	return Optional[T]{state: optionalCleared}
}

// Get returns the held value and whether one is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == optionalSet
}

// IsSet reports whether a value is held.
func (o Optional[T]) IsSet() bool { return o.state == optionalSet }

// IsCleared reports whether the field should be erased.
func (o Optional[T]) IsCleared() bool { return o.state == optionalCleared }

// Ptr returns a pointer to v. Handy for the pointer-typed fields of request objects.
func Ptr[T any](v T) *T {
	return &v
}
