package regrid

import (
	"cmp"
	"slices"

	"go.uber.org/zap"
)

// ProvidedColumns is a fixed set of columns over items of type T.
// It renders and edits cells by dispatching to the column
// at the logical column index, and remaps items
// by the Compare methods of the columns.
type ProvidedColumns[T any] struct {
	cols []TableColumn[T]
}

var (
	_ Remapper[string]      = new(ProvidedColumns[string])
	_ CellRender[string]    = new(ProvidedColumns[string])
	_ EditorFactory[string] = new(ProvidedColumns[string])
)

func NewProvidedColumns[T any](cols ...TableColumn[T]) *ProvidedColumns[T] {
	return &ProvidedColumns[T]{cols: cols}
}

func (p *ProvidedColumns[T]) NumColumns() int { return len(p.cols) }

// Column returns the column at idx.
func (p *ProvidedColumns[T]) Column(idx int) (TableColumn[T], bool) {
	if idx < 0 || idx >= len(p.cols) {
		return TableColumn[T]{}, false
	}
	return p.cols[idx], true
}

// Header returns the header of column idx
// or an empty string if idx is out of range.
func (p *ProvidedColumns[T]) Header(idx int) string {
	col, _ := p.Column(idx)
	return col.header
}

// Headers returns the headers of all columns.
func (p *ProvidedColumns[T]) Headers() []string {
	headers := make([]string, len(p.cols))
	for i, col := range p.cols {
		headers[i] = col.header
	}
	return headers
}

func (p *ProvidedColumns[T]) SortFixed(idx int) bool {
	col, ok := p.Column(idx)
	return ok && col.sortFixed
}

// InitialSpec returns the sort keys of all columns with a sort direction,
// ordered by their sort order. Columns without a sort order
// come after those with one, in column order.
func (p *ProvidedColumns[T]) InitialSpec() RemapSpec {
	inOrder := make([]int, len(p.cols))
	for i := range inOrder {
		inOrder[i] = i
	}
	slices.SortStableFunc(inOrder, func(a, b int) int {
		ca, cb := p.cols[a], p.cols[b]
		switch {
		case ca.hasSortOrder && cb.hasSortOrder:
			return cmp.Compare(ca.sortOrder, cb.sortOrder)
		case ca.hasSortOrder:
			return -1
		case cb.hasSortOrder:
			return 1
		}
		return 0
	})

	var spec RemapSpec
	for _, idx := range inOrder {
		if dir, ok := p.cols[idx].SortDirection(); ok {
			spec.AddSort(NewSortSpec(idx, dir))
		}
	}
	return spec
}

// RemapItems sorts all logical indices of data stably by the sort keys of spec.
// An empty spec results in the identity Remap.
// Sort keys referencing a non existing column are ignored.
//
// Sorting takes O(n log n) comparisons and every comparison
// may consult all sort keys. There is no upper limit for n.
func (p *ProvidedColumns[T]) RemapItems(data IndexedItems[T], spec RemapSpec) Remap {
	if spec.IsEmpty() {
		return IdentityRemap()
	}
	n := data.IdxLen()
	items := make([]T, n)
	idxs := make([]LogIdx, n)
	for i := range n {
		idxs[i] = LogIdx(i)
		items[i], _ = data.Item(LogIdx(i))
	}
	for _, s := range spec.SortBy {
		if _, ok := p.Column(s.Idx); !ok {
			Logger.Debug("ignoring sort key for unknown column", zap.Int("column", s.Idx))
		}
	}
	slices.SortStableFunc(idxs, func(a, b LogIdx) int {
		for _, s := range spec.SortBy {
			col, ok := p.Column(s.Idx)
			if !ok {
				continue
			}
			if ord := col.Compare(items[a], items[b]); ord != 0 {
				return s.Direction.Apply(ord)
			}
		}
		return 0
	})
	return FullRemap(idxs)
}

func (p *ProvidedColumns[T]) Init(ctx PaintCtx, env *Env) {
	for _, col := range p.cols {
		col.Init(ctx, env)
	}
}

// Paint paints a CtxCell context with the column at its logical column.
// Out of range columns and other contexts paint nothing.
func (p *ProvidedColumns[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	if i, ok := columnIndex(cell, len(p.cols)); ok {
		p.cols[i].Paint(ctx, cell, data, env)
	}
}

// MakeEditor returns the editor of the column at the logical column of ctx.
// Out of range columns and other contexts make no editor.
func (p *ProvidedColumns[T]) MakeEditor(ctx CellCtx) (Editor[T], bool) {
	if i, ok := columnIndex(ctx, len(p.cols)); ok {
		return p.cols[i].MakeEditor(ctx)
	}
	return nil, false
}

// CellText returns the plain text of column col for data.
func (p *ProvidedColumns[T]) CellText(col LogIdx, data T) (string, bool) {
	c, ok := p.Column(int(col))
	if !ok {
		return "", false
	}
	return c.CellText(data)
}
