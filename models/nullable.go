// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field wrapper that tells apart three request states:
// the field is absent, the field is explicitly null, or the field holds a
// value. It is used by partial-update payloads where "absent" means
// "leave unchanged".
//
// Decoding never fails: a value of the wrong JSON type marks the field as
// Invalid so validators can report it next to other field errors.
type Nullable[T any] struct {
	// Value is the decoded value. Meaningful only when Present, !Null and !Invalid.
	Value T

	// Present is true when the field appeared in the JSON document.
	Present bool

	// Null is true when the field was an explicit JSON null.
	Null bool

	// Invalid is true when the field could not be decoded into T.
	Invalid bool
}

// Set returns a present, non-null Nullable holding v.
func Set[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Present: true}
}

// Null returns a present Nullable holding an explicit null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Present: true, Null: true}
}

// HasValue reports whether the field carries a usable value.
func (n Nullable[T]) HasValue() bool {
	return n.Present && !n.Null && !n.Invalid
}

// Ptr returns a pointer to the value, or nil when the field is absent,
// null or invalid.
func (n Nullable[T]) Ptr() *T {
	if !n.HasValue() {
		return nil
	}
	v := n.Value
	return &v
}

// IsZero reports whether the field is absent. It makes the type work with
// the "omitzero" struct tag option.
func (n Nullable[T]) IsZero() bool {
	return !n.Present
}

// UnmarshalJSON implements [json.Unmarshaler].
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		n.Invalid = true
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
