package regrid

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Formatter converts a reflect.Value to the text shown in a cell.
type Formatter interface {
	// Format returns errors.ErrUnsupported
	// if the formatter doesn't support the value's type.
	Format(reflect.Value) (string, error)
}

// FormatterFunc implements Formatter with a function.
type FormatterFunc func(reflect.Value) (string, error)

func (f FormatterFunc) Format(v reflect.Value) (string, error) {
	return f(v)
}

// SprintFormatter formats any value with fmt.Sprint.
// Pointers are dereferenced.
type SprintFormatter struct{}

func (SprintFormatter) Format(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface()), nil
}

// LayoutFormatter formats time.Time values with a time layout.
type LayoutFormatter string

func (layout LayoutFormatter) Format(v reflect.Value) (string, error) {
	t, ok := v.Interface().(time.Time)
	if !ok {
		return "", errors.ErrUnsupported
	}
	return t.Format(string(layout)), nil
}

// TypeFormatters selects a Formatter by the exact type of a value,
// then by its kind, and finally falls back to Other.
// A nil *TypeFormatters supports no values.
type TypeFormatters struct {
	Types map[reflect.Type]Formatter
	Kinds map[reflect.Kind]Formatter
	Other Formatter
}

var _ Formatter = new(TypeFormatters)

func (f *TypeFormatters) Format(v reflect.Value) (string, error) {
	if f == nil || !v.IsValid() {
		return "", errors.ErrUnsupported
	}
	if tf, ok := f.Types[v.Type()]; ok {
		str, err := tf.Format(v)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, err
		}
	}
	if kf, ok := f.Kinds[v.Kind()]; ok {
		str, err := kf.Format(v)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, err
		}
	}
	if f.Other != nil {
		return f.Other.Format(v)
	}
	return "", errors.ErrUnsupported
}

// WithType returns a copy of f using formatter for values of typ.
func (f *TypeFormatters) WithType(typ reflect.Type, formatter Formatter) *TypeFormatters {
	c := f.clone()
	c.Types[typ] = formatter
	return c
}

// WithKind returns a copy of f using formatter for values of kind.
func (f *TypeFormatters) WithKind(kind reflect.Kind, formatter Formatter) *TypeFormatters {
	c := f.clone()
	c.Kinds[kind] = formatter
	return c
}

func (f *TypeFormatters) clone() *TypeFormatters {
	c := &TypeFormatters{
		Types: make(map[reflect.Type]Formatter),
		Kinds: make(map[reflect.Kind]Formatter),
	}
	if f == nil {
		return c
	}
	for typ, tf := range f.Types {
		c.Types[typ] = tf
	}
	for kind, kf := range f.Kinds {
		c.Kinds[kind] = kf
	}
	c.Other = f.Other
	return c
}

// FormatValue formats v with formatter, falling back to fmt.Sprint
// if formatter is nil or doesn't support v. Invalid values
// and nil pointers format as empty string.
func FormatValue(formatter Formatter, v reflect.Value) string {
	if ValueIsNil(v) {
		return ""
	}
	if formatter != nil {
		str, err := formatter.Format(v)
		if err == nil {
			return str
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			Logger.Debug("formatter failed, using fmt.Sprint")
		}
	}
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface())
}

// ValueIsNil returns true if v is not valid,
// nil (of a type that can be nil), or of type struct{}
func ValueIsNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	case reflect.Struct:
		if t := v.Type(); t.NumField() == 0 && t.NumMethod() == 0 {
			return true
		}
	}
	return false
}
