package regrid

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CellRender paints cells of data type T.
type CellRender[T any] interface {
	// Init is called once per frame before painting
	// and can be used to cache derived resources like resolved styles.
	Init(ctx PaintCtx, env *Env)
	Paint(ctx PaintCtx, cell CellCtx, data T, env *Env)
}

// DataCompare compares two items for sorting.
// Compare returns a negative number if a < b,
// a positive number if a > b and zero if they are equal.
type DataCompare[T any] interface {
	Compare(a, b T) int
}

// EditorFactory produces editors for cells.
type EditorFactory[T any] interface {
	// MakeEditor returns false if the cell is not editable in ctx.
	MakeEditor(ctx CellCtx) (Editor[T], bool)
}

// CellDelegate combines everything a column does with its cells.
type CellDelegate[T any] interface {
	CellRender[T]
	DataCompare[T]
	EditorFactory[T]
}

// CellTexter is implemented by delegates
// that can return the plain text of a cell,
// used for exporting and copying.
type CellTexter[T any] interface {
	CellText(data T) string
}

// Editor edits a value of type T.
// The Init, Update and View methods follow the bubbletea model.
type Editor[T any] interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	Blur()
	// Load sets the editor content from data.
	Load(data T)
	// Store writes the edited value into data.
	Store(data *T) error
}

// CompareFunc implements DataCompare with a function.
type CompareFunc[T any] func(a, b T) int

func (f CompareFunc[T]) Compare(a, b T) int { return f(a, b) }

// PaintFunc implements CellRender with a function, Init does nothing.
type PaintFunc[T any] func(ctx PaintCtx, cell CellCtx, data T, env *Env)

func (f PaintFunc[T]) Init(PaintCtx, *Env) {}

func (f PaintFunc[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	f(ctx, cell, data, env)
}

// EditorFactoryFunc implements EditorFactory with a function.
type EditorFactoryFunc[T any] func(ctx CellCtx) (Editor[T], bool)

func (f EditorFactoryFunc[T]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	return f(ctx)
}

// Delegate composes a CellDelegate from optional parts.
// A nil Renderer paints nothing, a nil Comparer treats all items as equal
// and a nil Editors factory makes no editors.
type Delegate[T any] struct {
	Renderer CellRender[T]
	Comparer DataCompare[T]
	Editors  EditorFactory[T]
}

var _ CellDelegate[string] = Delegate[string]{}

func NewDelegate[T any](renderer CellRender[T], comparer DataCompare[T], editors EditorFactory[T]) Delegate[T] {
	return Delegate[T]{Renderer: renderer, Comparer: comparer, Editors: editors}
}

func (d Delegate[T]) Init(ctx PaintCtx, env *Env) {
	if d.Renderer != nil {
		d.Renderer.Init(ctx, env)
	}
}

func (d Delegate[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	if d.Renderer != nil {
		d.Renderer.Paint(ctx, cell, data, env)
	}
}

func (d Delegate[T]) Compare(a, b T) int {
	if d.Comparer == nil {
		return 0
	}
	return d.Comparer.Compare(a, b)
}

func (d Delegate[T]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	if d.Editors == nil {
		return nil, false
	}
	return d.Editors.MakeEditor(ctx)
}

func (d Delegate[T]) CellText(data T) string {
	if texter, ok := d.Renderer.(CellTexter[T]); ok {
		return texter.CellText(data)
	}
	return ""
}

// Renderers dispatches painting to the renderer
// at the logical column of a CtxCell context.
// Other contexts, out of range columns and nil renderers paint nothing.
type Renderers[T any] []CellRender[T]

func (rs Renderers[T]) Init(ctx PaintCtx, env *Env) {
	for _, r := range rs {
		if r != nil {
			r.Init(ctx, env)
		}
	}
}

func (rs Renderers[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	if i, ok := columnIndex(cell, len(rs)); ok && rs[i] != nil {
		rs[i].Paint(ctx, cell, data, env)
	}
}

// EditorFactories dispatches to the factory
// at the logical column of a CtxCell context.
// Other contexts and out of range columns make no editor.
type EditorFactories[T any] []EditorFactory[T]

func (fs EditorFactories[T]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	if i, ok := columnIndex(ctx, len(fs)); ok && fs[i] != nil {
		return fs[i].MakeEditor(ctx)
	}
	return nil, false
}

// columnIndex returns the logical column of cell
// if it addresses one of numCols columns.
func columnIndex(cell CellCtx, numCols int) (int, bool) {
	col, ok := cell.LogCol()
	if !ok || col < 0 || int(col) >= numCols {
		return 0, false
	}
	return int(col), true
}
