// Package nullable provides a three-state value: not provided, explicit null,
// or a concrete value. JSON decoding records which of the three was sent.
package nullable

import (
	"bytes"
	"encoding/json"
)

type Value[T any] struct {
	value T
	set   bool
	null  bool
}

func Of[T any](v T) Value[T] { return Value[T]{value: v, set: true} }

func Null[T any]() Value[T] { return Value[T]{set: true, null: true} }

// IsSet reports whether the value was provided at all, null included.
func (v Value[T]) IsSet() bool { return v.set }

func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the concrete value; ok is false when unset or null.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.value, true
}

// Ptr returns nil for unset and null.
func (v Value[T]) Ptr() *T {
	if val, ok := v.Get(); ok {
		return &val
	}
	return nil
}

func (v *Value[T]) UnmarshalJSON(b []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(b, &v.value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
