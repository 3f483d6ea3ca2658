package regrid

import (
	"cmp"
	"fmt"
	"go/token"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StructFieldNaming defines how struct fields
// are mapped to column headers.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name as column header.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as column header.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string `toml:"tag"`
	// Ignore is the header of fields that get no column.
	Ignore string `toml:"ignore"`
	// Untagged will be called with the struct field name to
	// return a header in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (header string) `toml:"-"`
}

func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldColumn returns the column header for a struct field.
func (n *StructFieldNaming) StructFieldColumn(field reflect.StructField) string {
	if n == nil {
		return field.Name
	}
	if n.Tag != "" {
		if tag, ok := field.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return field.Name
	}
	return n.Untagged(field.Name)
}

// IsIgnored returns true if header marks a field without column.
func (n *StructFieldNaming) IsIgnored(header string) bool {
	return n != nil && n.Ignore != "" && header == n.Ignore
}

// Columns returns the column headers of a struct or struct pointer
// in the order StructColumns creates columns for it.
func (n *StructFieldNaming) Columns(strct any) []string {
	columns := []string{}
	for _, field := range StructFields(reflect.TypeOf(strct)) {
		if header := n.StructFieldColumn(field); !n.IsIgnored(header) {
			columns = append(columns, header)
		}
	}
	return columns
}

// StructFields returns the exported fields of a struct type
// including the inlined fields of anonymously embedded structs.
// The Index of the returned fields is the full index path
// usable with reflect.Value.FieldByIndex.
func StructFields(structType reflect.Type) []reflect.StructField {
	return appendStructFields(nil, structType, nil)
}

func appendStructFields(fields []reflect.StructField, structType reflect.Type, parent []int) []reflect.StructField {
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	for i := range structType.NumField() {
		field := structType.Field(i)
		field.Index = append(slices.Clone(parent), i)
		switch {
		case field.Anonymous && (field.Type.Kind() == reflect.Struct ||
			field.Type.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct):
			fields = appendStructFields(fields, field.Type, field.Index)
		case token.IsExported(field.Name):
			fields = append(fields, field)
		}
	}
	return fields
}

// SpacePascalCase inserts spaces before upper case
// characters within PascalCase like names.
// It also replaces underscore '_' characters with spaces.
func SpacePascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastWasUpper := true
	lastWasSpace := true
	for _, r := range name {
		if r == '_' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasUpper = false
			lastWasSpace = true
			continue
		}
		isUpper := unicode.IsUpper(r)
		if isUpper && !lastWasUpper && !lastWasSpace {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		lastWasUpper = isUpper
		lastWasSpace = unicode.IsSpace(r)
	}
	return strings.TrimSpace(b.String())
}

// StructColumns returns a column for every exported field of the struct type T
// named by naming. Fields are rendered with formatter,
// compared by their kind and edited as text parsed with DefaultParser.
// It panics if T is not a struct type.
func StructColumns[T any](naming *StructFieldNaming, formatter Formatter) []TableColumn[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected struct type, got %s", structType))
	}
	var cols []TableColumn[T]
	for _, field := range StructFields(structType) {
		header := naming.StructFieldColumn(field)
		if naming.IsIgnored(header) {
			continue
		}
		cell := &fieldCell[T]{
			index:     field.Index,
			text:      NewTextCell(),
			formatter: formatter,
			parser:    DefaultParser,
		}
		if isNumberKind(field.Type.Kind()) {
			cell.text.Align(lipgloss.Right)
		}
		col := NewColumn[T](header, cell)
		width := DefaultColumnWidth
		width.Initial = max(width.Initial, runewidth.StringWidth(header)+2)
		cols = append(cols, col.WithWidth(width))
	}
	return cols
}

func isNumberKind(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Float64
}

// fieldCell is the CellDelegate of a struct field
// at a reflection index path.
type fieldCell[T any] struct {
	index     []int
	text      *TextCell
	formatter Formatter
	parser    Parser
}

func (c *fieldCell[T]) field(data T) reflect.Value {
	v, err := reflect.ValueOf(data).FieldByIndexErr(c.index)
	if err != nil {
		// nil embedded struct pointer
		return reflect.Value{}
	}
	return v
}

func (c *fieldCell[T]) Init(ctx PaintCtx, env *Env) {
	c.text.Init(ctx, env)
}

func (c *fieldCell[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	c.text.Paint(ctx, cell, c.CellText(data), env)
}

func (c *fieldCell[T]) CellText(data T) string {
	return FormatValue(c.formatter, c.field(data))
}

func (c *fieldCell[T]) Compare(a, b T) int {
	return compareValues(c.field(a), c.field(b))
}

func (c *fieldCell[T]) MakeEditor(CellCtx) (Editor[T], bool) {
	return &fieldEditor[T]{
		TextEditor: NewTextEditor(identity[string], parseString),
		cell:       c,
	}, true
}

type fieldEditor[T any] struct {
	*TextEditor[string]
	cell *fieldCell[T]
}

func (e *fieldEditor[T]) Load(data T) {
	e.SetText(e.cell.CellText(data))
}

func (e *fieldEditor[T]) Store(data *T) error {
	dst, err := reflect.ValueOf(data).Elem().FieldByIndexErr(e.cell.index)
	if err != nil {
		return err
	}
	if err = ParseInto(dst, e.Text(), e.cell.parser); err != nil {
		return fmt.Errorf("can't store %q: %w", e.Text(), err)
	}
	return nil
}

// compareValues orders values of the same type by their kind.
// Invalid and nil values sort first.
func compareValues(a, b reflect.Value) int {
	aNil, bNil := ValueIsNil(a), ValueIsNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}
	if a.Kind() == reflect.Pointer {
		return compareValues(a.Elem(), b.Elem())
	}
	if a.Type() == typeOfTime {
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case b.Bool():
			return -1
		}
		return 1
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}
