package model

import "encoding/json"

// Optional is a patch field that tells apart a field missing from the request
// body, a field sent as JSON null and a field sent with a value.
type Optional[T any] struct {
	Set   bool // the field appeared in the body
	Null  bool // the field was the JSON literal null
	Value T
}

// Some returns a set, non-null Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Get returns the value when the field carries one.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}

// Ptr returns nil for an explicit null and a pointer to the value otherwise.
// Callers check Set first.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
