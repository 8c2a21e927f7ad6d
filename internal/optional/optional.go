package optional

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"time"
)

// Value holds a T that may be intentionally absent. The zero Value is absent.
// Fields of this type should carry the `omitzero` JSON option so that absent
// values are left out of the encoded object.
type Value[T any] struct {
	v  T
	ok bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

func (o Value[T]) IsPresent() bool {
	return o.ok
}

// IsZero reports absence; encoding/json uses it for `omitzero`.
func (o Value[T]) IsZero() bool {
	return !o.ok
}

// OrElse returns the value or fallback when absent.
func (o Value[T]) OrElse(fallback T) T {
	if o.ok {
		return o.v
	}
	return fallback
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Map applies fn to a present value.
func Map[T, U any](o Value[T], fn func(T) U) Value[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(fn(o.v))
}

func FromNullString(n sql.NullString) Value[string] {
	if !n.Valid {
		return None[string]()
	}
	return Some(n.String)
}

func FromNullFloat64(n sql.NullFloat64) Value[float64] {
	if !n.Valid {
		return None[float64]()
	}
	return Some(n.Float64)
}

func FromNullInt64(n sql.NullInt64) Value[int] {
	if !n.Valid {
		return None[int]()
	}
	return Some(int(n.Int64))
}

func FromNullTime(n sql.NullTime) Value[time.Time] {
	if !n.Valid {
		return None[time.Time]()
	}
	return Some(n.Time)
}

// ToNullFloat64 is the inverse of FromNullFloat64, used when writing.
func ToNullFloat64(o Value[float64]) sql.NullFloat64 {
	v, ok := o.Get()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func ToNullString(o Value[string]) sql.NullString {
	v, ok := o.Get()
	return sql.NullString{String: v, Valid: ok}
}
