package regrid

import "github.com/charmbracelet/lipgloss"

const (
	sortAscendingIndicator  = "▲"
	sortDescendingIndicator = "▼"
)

// HeaderCell decorates a header renderer with a sort direction indicator
// at the right edge of headers that carry a SortSpec.
type HeaderCell[T any] struct {
	inner CellRender[T]
}

var _ CellRender[string] = new(HeaderCell[string])

func NewHeaderCell[T any](inner CellRender[T]) *HeaderCell[T] {
	return &HeaderCell[T]{inner: inner}
}

func (h *HeaderCell[T]) Init(ctx PaintCtx, env *Env) {
	h.inner.Init(ctx, env)
}

func (h *HeaderCell[T]) Paint(ctx PaintCtx, cell CellCtx, data T, env *Env) {
	if cell.Kind != CtxHeader || cell.Sort == nil {
		h.inner.Paint(ctx, cell, data, env)
		return
	}
	width, height := ctx.Size()
	indicator := sortAscendingIndicator
	if cell.Sort.Direction == Descending {
		indicator = sortDescendingIndicator
	}
	ctx.SetString(width-1, 0, indicator, env.StyleOr(StyleHeader, lipgloss.NewStyle()))
	h.inner.Paint(ctx.Region(0, 0, width-2, height), cell, data, env)
}
