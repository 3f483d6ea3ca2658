package regrid

// View is a read-only text grid of what a table displays,
// rows and columns in visual order.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the text at row and col
	// or an empty string if they are out of bounds.
	Cell(row, col int) string
}

// TableView is the View of items displayed with columns
// in the order of Remaps.
type TableView[T any] struct {
	Tit     string
	Data    IndexedItems[T]
	Cols    *ProvidedColumns[T]
	RowsMap Remap
	ColsMap Remap
}

var _ View = new(TableView[string])

// Demap returns the CellDemap of the view.
func (v *TableView[T]) Demap() RemapDemap {
	return RemapDemap{
		Remaps:  NewAxisPair(v.RowsMap, v.ColsMap),
		LogLens: NewAxisPair(v.Data.IdxLen(), v.Cols.NumColumns()),
	}
}

func (v *TableView[T]) Title() string { return v.Tit }

func (v *TableView[T]) NumRows() int {
	return v.RowsMap.Len(v.Data.IdxLen())
}

func (v *TableView[T]) NumCols() int {
	return v.ColsMap.Len(v.Cols.NumColumns())
}

func (v *TableView[T]) Columns() []string {
	demap := v.Demap()
	cols := make([]string, v.NumCols())
	for i := range cols {
		if log, ok := demap.LogIdx(Columns, VisIdx(i)); ok {
			cols[i] = v.Cols.Header(int(log))
		}
	}
	return cols
}

func (v *TableView[T]) Cell(row, col int) string {
	log, ok := LogCell(v.Demap(), NewAxisPair(VisIdx(row), VisIdx(col)))
	if !ok {
		return ""
	}
	item, ok := v.Data.Item(log.Row)
	if !ok {
		return ""
	}
	text, _ := v.Cols.CellText(log.Col, item)
	return text
}

// RectView is the part of Source inside Rect.
// Rect is clipped to the bounds of Source.
type RectView struct {
	Source View
	Rect   CellRect
}

var _ View = RectView{}

func (v RectView) clipped() (CellRect, bool) {
	bounds := NewCellRect(0, VisIdx(v.Source.NumRows()-1), 0, VisIdx(len(v.Source.Columns())-1))
	return v.Rect.Intersect(bounds)
}

func (v RectView) Title() string { return v.Source.Title() }

func (v RectView) Columns() []string {
	rect, ok := v.clipped()
	if !ok {
		return nil
	}
	return v.Source.Columns()[rect.StartCol : rect.EndCol+1]
}

func (v RectView) NumRows() int {
	rect, ok := v.clipped()
	if !ok {
		return 0
	}
	return int(rect.EndRow-rect.StartRow) + 1
}

func (v RectView) Cell(row, col int) string {
	rect, ok := v.clipped()
	if !ok || row < 0 || col < 0 {
		return ""
	}
	r, c := rect.StartRow+VisIdx(row), rect.StartCol+VisIdx(col)
	if !rect.ContainsCell(NewAxisPair(r, c)) {
		return ""
	}
	return v.Source.Cell(int(r), int(c))
}
