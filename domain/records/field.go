package records

import (
	"encoding/json"
	"fmt"
)

type fieldState uint8

const (
	fieldNull fieldState = iota
	fieldValid
	fieldRaw
)

// Field is an optional record field. It holds nothing (null), a validated
// value of type T, or, for rows admitted by lenient parsing, the raw cell
// value exactly as it came from the sheet.
type Field[T any] struct {
	value T
	raw   any
	state fieldState
}

// Value returns a field holding a validated value.
func Value[T any](v T) Field[T] {
	return Field[T]{value: v, state: fieldValid}
}

// Unchecked returns a field holding a raw, unvalidated value.
func Unchecked[T any](raw any) Field[T] {
	if raw == nil {
		return Field[T]{}
	}
	return Field[T]{raw: raw, state: fieldRaw}
}

// Get returns the validated value and whether there is one.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == fieldValid
}

// Raw returns the unvalidated value held by an unchecked field.
func (f Field[T]) Raw() (any, bool) {
	return f.raw, f.state == fieldRaw
}

// IsNull reports whether the field holds nothing.
func (f Field[T]) IsNull() bool {
	return f.state == fieldNull
}

// Interface returns the held value, validated or raw, or nil.
func (f Field[T]) Interface() any {
	switch f.state {
	case fieldValid:
		return f.value
	case fieldRaw:
		return f.raw
	}
	return nil
}

func (f Field[T]) String() string {
	if v := f.Interface(); v != nil {
		return fmt.Sprint(v)
	}
	return "<null>"
}

// MarshalJSON renders null, the validated value, or the raw value.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	switch f.state {
	case fieldValid:
		return json.Marshal(f.value)
	case fieldRaw:
		return json.Marshal(f.raw)
	}
	return []byte("null"), nil
}

// binder is implemented by *Field[T]; the parser binds cells through it.
type binder interface {
	bind(raw any) error
	bindUnchecked(raw any)
}

func (f *Field[T]) bind(raw any) error {
	if raw == nil {
		*f = Field[T]{}
		return nil
	}
	v, err := coerce[T](raw)
	if err != nil {
		return err
	}
	*f = Value(v)
	return nil
}

// bindUnchecked stores raw without coercion. A value that already has type T
// is kept as a validated value since no conversion is involved.
func (f *Field[T]) bindUnchecked(raw any) {
	if v, ok := raw.(T); ok {
		*f = Value(v)
		return
	}
	*f = Unchecked[T](raw)
}

func coerce[T any](raw any) (T, error) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *string:
		*p, err = coerceString(raw)
	case *Decimal:
		*p, err = coerceDecimal(raw)
	case *bool:
		*p, err = coerceBool(raw)
	case *Date:
		*p, err = coerceDate(raw)
	default:
		err = fmt.Errorf("unsupported field type %T", out)
	}
	return out, err
}
