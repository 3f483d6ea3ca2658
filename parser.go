package regrid

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Parser converts edited cell text back to primitive Go types.
type Parser interface {
	ParseInt(string) (int64, error)
	ParseUint(string) (uint64, error)
	ParseFloat(string) (float64, error)
	ParseBool(string) (bool, error)
	ParseTime(string) (time.Time, error)
	ParseDuration(string) (time.Duration, error)
}

var _ Parser = new(StringParser)

// StringParser is a configurable Parser.
//
// Boolean strings are matched exactly, time values are parsed
// by trying TimeFormats in order, and floats accept
// a single comma as decimal separator.
type StringParser struct {
	TrueStrings  []string `toml:"true_strings"`
	FalseStrings []string `toml:"false_strings"`
	NilStrings   []string `toml:"nil_strings"`
	TimeFormats  []string `toml:"time_formats"`
}

// NewStringParser returns a StringParser with default configuration.
func NewStringParser() *StringParser {
	return &StringParser{
		TrueStrings:  []string{"true", "True", "TRUE", "yes", "Yes", "YES", "1"},
		FalseStrings: []string{"false", "False", "FALSE", "no", "No", "NO", "0"},
		NilStrings:   []string{"", "nil", "<nil>", "null", "NULL"},
		TimeFormats: []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04",
			time.DateTime,
			"2006-01-02 15:04",
			time.DateOnly,
			"02.01.2006 15:04:05",
			"02.01.2006",
		},
	}
}

func (p *StringParser) ParseInt(str string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(str), 10, 64)
}

func (p *StringParser) ParseUint(str string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(str), 10, 64)
}

func (p *StringParser) ParseFloat(str string) (float64, error) {
	str = strings.TrimSpace(str)
	f, err := strconv.ParseFloat(str, 64)
	if err == nil {
		return f, nil
	}
	if strings.Count(str, ",") == 1 && !strings.Contains(str, ".") {
		if f, e := strconv.ParseFloat(strings.Replace(str, ",", ".", 1), 64); e == nil {
			return f, nil
		}
	}
	return 0, err
}

func (p *StringParser) ParseBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	if slices.Contains(p.TrueStrings, str) {
		return true, nil
	}
	if slices.Contains(p.FalseStrings, str) {
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", str)
}

func (p *StringParser) ParseTime(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, format := range p.TimeFormats {
		if t, err := time.Parse(format, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", str)
}

func (p *StringParser) ParseDuration(str string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(str))
}

// IsNil returns true if str is one of the NilStrings.
func (p *StringParser) IsNil(str string) bool {
	return slices.Contains(p.NilStrings, strings.TrimSpace(str))
}

var (
	typeOfTime            = reflect.TypeFor[time.Time]()
	typeOfDuration        = reflect.TypeFor[time.Duration]()
	typeOfTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// ParseInto parses str with parser and assigns the result to dst,
// which must be settable.
// Pointers are allocated as needed and set to nil
// if parser is a *StringParser and str is one of its NilStrings.
func ParseInto(dst reflect.Value, str string, parser Parser) error {
	if !dst.CanSet() {
		return fmt.Errorf("cannot set value of type %s", dst.Type())
	}
	if dst.Kind() == reflect.Pointer {
		if sp, ok := parser.(*StringParser); ok && sp.IsNil(str) {
			dst.SetZero()
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := ParseInto(elem.Elem(), str, parser); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}
	switch dst.Type() {
	case typeOfTime:
		t, err := parser.ParseTime(str)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	case typeOfDuration:
		d, err := parser.ParseDuration(str)
		if err != nil {
			return err
		}
		dst.SetInt(int64(d))
		return nil
	}
	if reflect.PointerTo(dst.Type()).Implements(typeOfTextUnmarshaler) {
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(str))
	}
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(str)
	case reflect.Bool:
		b, err := parser.ParseBool(str)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := parser.ParseInt(str)
		if err != nil {
			return err
		}
		if dst.OverflowInt(i) {
			return fmt.Errorf("%d overflows %s", i, dst.Type())
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := parser.ParseUint(str)
		if err != nil {
			return err
		}
		if dst.OverflowUint(u) {
			return fmt.Errorf("%d overflows %s", u, dst.Type())
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := parser.ParseFloat(str)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("parsing %s is not supported", dst.Type())
	}
	return nil
}

// ParseValue parses str as a value of type V.
func ParseValue[V any](str string, parser Parser) (V, error) {
	var v V
	err := ParseInto(reflect.ValueOf(&v).Elem(), str, parser)
	return v, err
}
