package regrid

import (
	"fmt"
	"go/token"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
)

// Field projects a value of type U out of a T and writes it back.
type Field[T, U any] struct {
	Get func(T) U
	Set func(*T, U)
}

// StructField returns a Field for the exported struct field name of T.
// Fields of anonymously embedded structs are found as well.
// It panics if T is not a struct, the field does not exist,
// is not exported or its type is not U.
func StructField[T, U any](name string) Field[T, U] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected struct type, got %s", structType))
	}
	field, ok := structType.FieldByName(name)
	if !ok {
		panic(fmt.Errorf("struct field %q not found in %s", name, structType))
	}
	if !token.IsExported(field.Name) {
		panic(fmt.Errorf("struct field %q of %s is not exported", name, structType))
	}
	if fieldType := reflect.TypeFor[U](); field.Type != fieldType {
		panic(fmt.Errorf("struct field %q of %s has type %s, expected %s", name, structType, field.Type, fieldType))
	}
	index := field.Index
	return Field[T, U]{
		Get: func(strct T) U {
			return reflect.ValueOf(strct).FieldByIndex(index).Interface().(U)
		},
		Set: func(strct *T, value U) {
			reflect.ValueOf(strct).Elem().FieldByIndex(index).Set(reflect.ValueOf(&value).Elem())
		},
	}
}

// LensWrapped lifts a CellDelegate of a field type U
// to the containing type T through a Field.
// Editors of the inner delegate read and write through the Field.
type LensWrapped[T, U any] struct {
	inner CellDelegate[U]
	field Field[T, U]
}

var _ CellDelegate[struct{}] = new(LensWrapped[struct{}, string])

// Lens wraps inner to operate on T through field.
func Lens[T, U any](inner CellDelegate[U], field Field[T, U]) *LensWrapped[T, U] {
	return &LensWrapped[T, U]{inner: inner, field: field}
}

func (w *LensWrapped[T, U]) Init(ctx PaintCtx, env *Env) {
	w.inner.Init(ctx, env)
}

func (w *LensWrapped[T, U]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	w.inner.Paint(ctx, cell, w.field.Get(data), env)
}

func (w *LensWrapped[T, U]) Compare(a, b T) int {
	return w.inner.Compare(w.field.Get(a), w.field.Get(b))
}

func (w *LensWrapped[T, U]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	editor, ok := w.inner.MakeEditor(ctx)
	if !ok {
		return nil, false
	}
	return &lensEditor[T, U]{inner: editor, field: w.field}, true
}

func (w *LensWrapped[T, U]) CellText(data T) string {
	return cellText(w.inner, w.field.Get(data))
}

// FuncWrapped lifts a CellDelegate of a derived type U
// to T through a pure function.
// It is read-only and never makes an editor.
type FuncWrapped[T, U any] struct {
	inner CellDelegate[U]
	fn    func(T) U
}

var _ CellDelegate[struct{}] = new(FuncWrapped[struct{}, string])

// OnResultOf wraps inner to operate on the result of fn.
func OnResultOf[T, U any](inner CellDelegate[U], fn func(T) U) *FuncWrapped[T, U] {
	return &FuncWrapped[T, U]{inner: inner, fn: fn}
}

func (w *FuncWrapped[T, U]) Init(ctx PaintCtx, env *Env) {
	w.inner.Init(ctx, env)
}

func (w *FuncWrapped[T, U]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	w.inner.Paint(ctx, cell, w.fn(data), env)
}

func (w *FuncWrapped[T, U]) Compare(a, b T) int {
	return w.inner.Compare(w.fn(a), w.fn(b))
}

func (w *FuncWrapped[T, U]) MakeEditor(CellCtx) (Editor[T], bool) {
	return nil, false
}

func (w *FuncWrapped[T, U]) CellText(data T) string {
	return cellText(w.inner, w.fn(data))
}

func cellText[T any](delegate CellDelegate[T], data T) string {
	if texter, ok := delegate.(CellTexter[T]); ok {
		return texter.CellText(data)
	}
	return ""
}

type lensEditor[T, U any] struct {
	inner Editor[U]
	field Field[T, U]
}

func (e *lensEditor[T, U]) Init() tea.Cmd              { return e.inner.Init() }
func (e *lensEditor[T, U]) Update(msg tea.Msg) tea.Cmd { return e.inner.Update(msg) }
func (e *lensEditor[T, U]) View() string               { return e.inner.View() }
func (e *lensEditor[T, U]) Focus() tea.Cmd             { return e.inner.Focus() }
func (e *lensEditor[T, U]) Blur()                      { e.inner.Blur() }
func (e *lensEditor[T, U]) Load(data T)                { e.inner.Load(e.field.Get(data)) }

func (e *lensEditor[T, U]) Store(data *T) error {
	value := e.field.Get(*data)
	if err := e.inner.Store(&value); err != nil {
		return err
	}
	e.field.Set(data, value)
	return nil
}
