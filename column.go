package regrid

import "fmt"

// ColumnWidth constrains the width of a column in terminal cells.
// A Max of zero means unbounded.
type ColumnWidth struct {
	Initial int
	Min     int
	Max     int
}

// Clamp returns width limited to Min and Max.
func (w ColumnWidth) Clamp(width int) int {
	width = max(width, w.Min)
	if w.Max > 0 {
		width = min(width, w.Max)
	}
	return width
}

// TableColumn is a header with the CellDelegate for its cells
// and the column's sort participation.
// Builder methods return modified copies.
type TableColumn[T any] struct {
	header   string
	delegate CellDelegate[T]
	width    ColumnWidth

	sortOrder    int
	hasSortOrder bool
	sortFixed    bool
	sortDir      *SortDirection
}

var _ CellDelegate[string] = TableColumn[string]{}

// NewColumn returns a TableColumn with DefaultColumnWidth.
// It panics if delegate is nil.
func NewColumn[T any](header string, delegate CellDelegate[T]) TableColumn[T] {
	if delegate == nil {
		panic(fmt.Errorf("nil CellDelegate for column %q", header))
	}
	return TableColumn[T]{
		header:   header,
		delegate: delegate,
		width:    DefaultColumnWidth,
	}
}

func (c TableColumn[T]) Header() string            { return c.header }
func (c TableColumn[T]) Width() ColumnWidth        { return c.width }
func (c TableColumn[T]) IsSortFixed() bool         { return c.sortFixed }
func (c TableColumn[T]) Delegate() CellDelegate[T] { return c.delegate }

// SortDirection returns the direction the column is initially sorted by.
func (c TableColumn[T]) SortDirection() (SortDirection, bool) {
	if c.sortDir == nil {
		return Ascending, false
	}
	return *c.sortDir, true
}

// SortOrderValue returns the position of the column among the initial sort keys.
func (c TableColumn[T]) SortOrderValue() (int, bool) {
	return c.sortOrder, c.hasSortOrder
}

func (c TableColumn[T]) WithWidth(width ColumnWidth) TableColumn[T] {
	c.width = width
	return c
}

// Sort makes the column an initial sort key with dir.
func (c TableColumn[T]) Sort(dir SortDirection) TableColumn[T] {
	c.sortDir = &dir
	return c
}

// SortOrder sets the position of the column among the initial sort keys.
// Columns without a sort order come after those with one.
func (c TableColumn[T]) SortOrder(order int) TableColumn[T] {
	c.sortOrder = order
	c.hasSortOrder = true
	return c
}

// FixSort marks the sort of the column as not changeable by the user.
func (c TableColumn[T]) FixSort() TableColumn[T] {
	c.sortFixed = true
	return c
}

func (c TableColumn[T]) Init(ctx PaintCtx, env *Env) {
	c.delegate.Init(ctx, env)
}

func (c TableColumn[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	c.delegate.Paint(ctx, cell, data, env)
}

func (c TableColumn[T]) Compare(a, b T) int {
	return c.delegate.Compare(a, b)
}

func (c TableColumn[T]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	return c.delegate.MakeEditor(ctx)
}

// CellText returns the plain text of data
// or false if the delegate can't provide one.
func (c TableColumn[T]) CellText(data T) (string, bool) {
	texter, ok := c.delegate.(CellTexter[T])
	if !ok {
		return "", false
	}
	return texter.CellText(data), true
}

func (c TableColumn[T]) String() string {
	return fmt.Sprintf("TableColumn{%q}", c.header)
}
