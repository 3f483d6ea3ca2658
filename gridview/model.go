// Package gridview implements an interactive terminal table
// over regrid columns as a bubbletea model.
package gridview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/csv"
)

const (
	headerHeight = 1
	statusHeight = 1
	columnGap    = 1
)

// Model is a bubbletea model displaying items of type T
// with the columns of a regrid.ProvidedColumns.
// It owns the sort state, the remap of rows and the selection,
// columns are always displayed in logical order.
type Model[T any] struct {
	title  string
	data   regrid.IndexedData[T]
	cols   *regrid.ProvidedColumns[T]
	header regrid.CellRender[string]
	env    *regrid.Env
	keys   KeyMap
	csv    *csv.Writer

	spec regrid.RemapSpec
	rows regrid.Remap
	sel  regrid.Selection

	width     int
	height    int
	rowOffset regrid.VisIdx
	colOffset regrid.VisIdx

	editor  regrid.Editor[T]
	editing regrid.SingleCell

	status string
	copied string
}

var _ tea.Model = new(Model[string])

// New returns a Model sorted by the initial RemapSpec of cols
// using regrid.DefaultEnv, DefaultKeyMap and a csv.Writer
// with OptionAddHeaderRow for copying.
func New[T any](title string, data regrid.IndexedData[T], cols *regrid.ProvidedColumns[T]) *Model[T] {
	m := &Model[T]{
		title:  title,
		data:   data,
		cols:   cols,
		header: regrid.NewHeaderCell[string](regrid.NewTextCell().Style(regrid.StyleFromKey(regrid.StyleHeader))),
		keys:   DefaultKeyMap(),
		csv:    csv.NewWriter(),
		spec:   cols.InitialSpec(),
	}
	m.SetEnv(regrid.DefaultEnv())
	m.Refresh()
	return m
}

// SetEnv sets the style environment and initializes all renderers with it.
func (m *Model[T]) SetEnv(env *regrid.Env) {
	m.env = env
	ctx := NewCanvas(0, 0)
	m.header.Init(ctx, env)
	m.cols.Init(ctx, env)
}

func (m *Model[T]) SetKeyMap(keys KeyMap)            { m.keys = keys }
func (m *Model[T]) SetCSVWriter(w *csv.Writer)       { m.csv = w }
func (m *Model[T]) SetSize(width, height int)        { m.width, m.height = width, height }
func (m *Model[T]) Selection() regrid.TableSelection { return m.sel.Get() }

// SetSelection replaces the selection and scrolls its focus into view.
func (m *Model[T]) SetSelection(sel regrid.TableSelection) {
	m.sel.Set(sel)
	m.scrollToFocus()
}

// Spec returns a copy of the current sort intent.
func (m *Model[T]) Spec() regrid.RemapSpec { return m.spec.Clone() }

// SetSpec replaces the sort intent and refreshes the remap.
func (m *Model[T]) SetSpec(spec regrid.RemapSpec) {
	m.spec = spec.Clone()
	m.Refresh()
}

// Remap returns the current visual order of the rows.
func (m *Model[T]) Remap() regrid.Remap { return m.rows }

// Copied returns the CSV text of the last copy.
func (m *Model[T]) Copied() string { return m.copied }

// Status returns the last status message.
func (m *Model[T]) Status() string { return m.status }

// Editing returns the cell being edited.
func (m *Model[T]) Editing() (regrid.SingleCell, bool) {
	return m.editing, m.editor != nil
}

// TableView returns the current content as regrid.View.
func (m *Model[T]) TableView() *regrid.TableView[T] {
	return &regrid.TableView[T]{
		Tit:     m.title,
		Data:    m.data,
		Cols:    m.cols,
		RowsMap: m.rows,
		ColsMap: regrid.IdentityRemap(),
	}
}

// Demap returns the CellDemap consistent with the current remap.
func (m *Model[T]) Demap() regrid.CellDemap {
	return m.TableView().Demap()
}

// Refresh recomputes the remap of the rows from the sort intent
// and then revalidates the selection against it.
// It must be called after the data changed.
func (m *Model[T]) Refresh() {
	m.rows = m.cols.RemapItems(m.data, m.spec)
	m.sel.Revalidate(m.Demap())
	m.scrollToFocus()
}

func (m *Model[T]) numRows() int { return m.rows.Len(m.data.IdxLen()) }

func (m *Model[T]) numCols() int { return m.cols.NumColumns() }

func (m *Model[T]) Init() tea.Cmd { return nil }

func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.scrollToFocus()
		return m, nil

	case tea.KeyMsg:
		if m.editor != nil {
			return m, m.updateEditor(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.editor == nil {
			m.handleMouse(msg)
		}
		return m, nil
	}

	if m.editor != nil {
		return m, m.editor.Update(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	demap := m.Demap()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.sel.MoveFocus(regrid.Rows, -1, demap)
	case key.Matches(msg, m.keys.Down):
		m.sel.MoveFocus(regrid.Rows, 1, demap)
	case key.Matches(msg, m.keys.Left):
		m.sel.MoveFocus(regrid.Columns, -1, demap)
	case key.Matches(msg, m.keys.Right):
		m.sel.MoveFocus(regrid.Columns, 1, demap)
	case key.Matches(msg, m.keys.ExtendUp):
		m.extendBy(regrid.Rows, -1)
	case key.Matches(msg, m.keys.ExtendDown):
		m.extendBy(regrid.Rows, 1)
	case key.Matches(msg, m.keys.ExtendLeft):
		m.extendBy(regrid.Columns, -1)
	case key.Matches(msg, m.keys.ExtendRight):
		m.extendBy(regrid.Columns, 1)
	case key.Matches(msg, m.keys.SelectRow):
		m.selectFocusSlice(regrid.Rows)
	case key.Matches(msg, m.keys.SelectCol):
		m.selectFocusSlice(regrid.Columns)
	case key.Matches(msg, m.keys.Sort):
		m.toggleSortAtFocus()
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Copy):
		m.CopySelection()
	case key.Matches(msg, m.keys.Cancel):
		m.sel.Clear()
	}
	m.scrollToFocus()
	return m, nil
}

// extendBy moves the extent of a cell or range selection,
// a single cell becomes a CellRange.
func (m *Model[T]) extendBy(axis regrid.TableAxis, amount regrid.VisOffset) {
	var from regrid.SingleCell
	switch sel := m.sel.Get().(type) {
	case regrid.SingleCell:
		from = sel
	case regrid.CellRange:
		from = sel.Extent
	default:
		return
	}
	vis, ok := regrid.MoveBy(from.Vis, axis, amount)
	if !ok {
		return
	}
	log, ok := regrid.LogCell(m.Demap(), vis)
	if !ok {
		return
	}
	m.sel.MoveExtent(regrid.NewSingleCell(vis, log))
}

func (m *Model[T]) selectFocusSlice(axis regrid.TableAxis) {
	m.sel.Apply(regrid.ExtendFromFocusInAxis(m.sel.Get(), axis, m.Demap()))
}

func (m *Model[T]) toggleSortAtFocus() {
	focus, ok := m.sel.Focus()
	if !ok {
		return
	}
	col := int(focus.Log.Col)
	if !m.spec.ToggleSort(col, m.cols.SortFixed(col)) {
		m.status = fmt.Sprintf("sort of %q is fixed", m.cols.Header(col))
		return
	}
	m.Refresh()
	sort, _ := m.spec.SortFor(col)
	m.status = fmt.Sprintf("sorted by %q %s", m.cols.Header(col), sort.Direction)
}

func (m *Model[T]) startEdit() tea.Cmd {
	focus, ok := m.sel.Focus()
	if !ok {
		return nil
	}
	item, ok := m.data.Item(focus.Log.Row)
	if !ok {
		return nil
	}
	editor, ok := m.cols.MakeEditor(regrid.CellAt(&focus))
	if !ok {
		m.status = fmt.Sprintf("%q is read-only", m.cols.Header(int(focus.Log.Col)))
		return nil
	}
	editor.Load(item)
	m.editor = editor
	m.editing = focus
	m.status = ""
	return tea.Batch(editor.Init(), editor.Focus())
}

func (m *Model[T]) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Commit):
		m.CommitEdit()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.CancelEdit()
		return nil
	}
	return m.editor.Update(msg)
}

// CommitEdit stores the value of the active editor into the edited item.
// On error the editor stays open and the error is shown as status.
func (m *Model[T]) CommitEdit() {
	if m.editor == nil {
		return
	}
	var storeErr error
	updated := m.data.Update(m.editing.Log.Row, func(item *T) {
		storeErr = m.editor.Store(item)
	})
	switch {
	case storeErr != nil:
		m.status = storeErr.Error()
		return
	case !updated:
		regrid.Logger.Warn("edited row no longer exists", zap.Int("row", int(m.editing.Log.Row)))
	}
	m.closeEditor()
	m.Refresh()
}

// CancelEdit discards the active editor.
func (m *Model[T]) CancelEdit() {
	if m.editor != nil {
		m.closeEditor()
	}
}

func (m *Model[T]) closeEditor() {
	m.editor.Blur()
	m.editor = nil
	m.status = ""
}

// ExportView returns the view to export with options.
// With regrid.OptionSelectionOnly it is restricted to the selected cells
// and false is returned if nothing is selected.
func (m *Model[T]) ExportView(options ...regrid.Option) (regrid.View, bool) {
	if !regrid.HasOption(options, regrid.OptionSelectionOnly) {
		return m.TableView(), true
	}
	rect, ok := m.selectionRect()
	if !ok {
		return nil, false
	}
	return regrid.RectView{Source: m.TableView(), Rect: rect}, true
}

// CopySelection writes the selected cells as CSV into Copied.
func (m *Model[T]) CopySelection() {
	options := []regrid.Option{regrid.OptionSelectionOnly, regrid.OptionAddHeaderRow}
	view, ok := m.ExportView(options...)
	if !ok {
		m.status = "nothing selected"
		return
	}
	text, err := m.csv.WriteString(context.Background(), view, options...)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.copied = text
	m.status = fmt.Sprintf("copied %d rows", view.NumRows())
}

// selectionRect returns the visual cells of the selection
// within the table bounds.
func (m *Model[T]) selectionRect() (regrid.CellRect, bool) {
	if m.numRows() == 0 || m.numCols() == 0 {
		return regrid.CellRect{}, false
	}
	bounds := regrid.NewCellRect(0, regrid.VisIdx(m.numRows()-1), 0, regrid.VisIdx(m.numCols()-1))
	var rect regrid.CellRect
	switch sel := m.sel.Get().(type) {
	case regrid.NoSelection:
		return regrid.CellRect{}, false
	case regrid.SingleCell:
		rect = regrid.NewCellRect(sel.Vis.Row, sel.Vis.Row, sel.Vis.Col, sel.Vis.Col)
	case regrid.SingleSlice:
		start, end := bounds.Range(sel.Axis.CrossAxis())
		rect = sel.CellRect(start, end)
	case regrid.CellRange:
		rect = sel.CellRect()
	case regrid.SliceRange:
		start, end := bounds.Range(sel.Axis.CrossAxis())
		rect = sel.CellRect(start, end)
	default:
		return regrid.CellRect{}, false
	}
	return rect.Intersect(bounds)
}

func (m *Model[T]) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	col, ok := m.colAt(msg.X)
	if !ok {
		return
	}
	demap := m.Demap()
	if msg.Y < headerHeight {
		if msg.Shift {
			m.sel.ExtendInAxis(regrid.Columns, col, demap)
		} else {
			m.sel.SelectInAxis(regrid.Columns, col, demap)
		}
		return
	}
	row := m.rowOffset + regrid.VisIdx(msg.Y-headerHeight)
	if int(row) >= m.numRows() || msg.Y >= headerHeight+m.dataHeight() {
		return
	}
	vis := regrid.NewAxisPair(row, col)
	log, ok := regrid.LogCell(demap, vis)
	if !ok {
		return
	}
	cell := regrid.NewSingleCell(vis, log)
	if msg.Shift && m.sel.MoveExtent(cell) {
		return
	}
	m.sel.Set(cell)
}

func (m *Model[T]) dataHeight() int {
	return max(m.height-headerHeight-statusHeight, 0)
}

func (m *Model[T]) colWidth(vis regrid.VisIdx) int {
	col, ok := m.cols.Column(int(vis))
	if !ok {
		return 0
	}
	return col.Width().Clamp(col.Width().Initial)
}

// visibleCols returns the visual columns fitting into the width
// starting at colOffset with their x positions.
func (m *Model[T]) visibleCols() (cols []regrid.VisIdx, xs []int) {
	x := 0
	for c := m.colOffset; int(c) < m.numCols() && x < m.width; c++ {
		cols = append(cols, c)
		xs = append(xs, x)
		x += m.colWidth(c) + columnGap
	}
	return cols, xs
}

func (m *Model[T]) colAt(x int) (regrid.VisIdx, bool) {
	cols, xs := m.visibleCols()
	for i, c := range cols {
		if x >= xs[i] && x < xs[i]+m.colWidth(c) {
			return c, true
		}
	}
	return 0, false
}

func (m *Model[T]) scrollToFocus() {
	vis, ok := regrid.VisFocus(m.sel.Get())
	if !ok || m.width <= 0 {
		return
	}
	if vis.Row < m.rowOffset {
		m.rowOffset = vis.Row
	} else if h := regrid.VisIdx(m.dataHeight()); h > 0 && vis.Row >= m.rowOffset+h {
		m.rowOffset = vis.Row - h + 1
	}
	if vis.Col < m.colOffset {
		m.colOffset = vis.Col
		return
	}
	for m.colOffset < vis.Col {
		cols, xs := m.visibleCols()
		last := len(cols) - 1
		if last >= 0 && cols[last] >= vis.Col && xs[last]+m.colWidth(cols[last]) <= m.width {
			break
		}
		m.colOffset++
	}
}

// Paint paints header, cells and selection onto a canvas
// of the model's size without the status line.
func (m *Model[T]) Paint() *Canvas {
	canvas := NewCanvas(m.width, headerHeight+m.dataHeight())
	cols, xs := m.visibleCols()
	if len(cols) == 0 {
		return canvas
	}
	for i, c := range cols {
		sort, _ := m.spec.SortFor(int(c))
		header := regrid.HeaderAt(regrid.Columns, regrid.LogIdx(c), sort)
		m.header.Paint(canvas.Region(xs[i], 0, m.colWidth(c), headerHeight), header, m.cols.Header(int(c)), m.env)
	}

	demap := m.Demap()
	lastRow := m.rowOffset - 1
	for y := range m.dataHeight() {
		row := m.rowOffset + regrid.VisIdx(y)
		logRow, ok := demap.LogIdx(regrid.Rows, row)
		if !ok {
			break
		}
		item, ok := m.data.Item(logRow)
		if !ok {
			break
		}
		lastRow = row
		for i, c := range cols {
			cell := regrid.NewSingleCell(regrid.NewAxisPair(row, c), regrid.NewAxisPair(logRow, regrid.LogIdx(c)))
			region := canvas.Region(xs[i], headerHeight+y, m.colWidth(c), 1)
			m.cols.Paint(region, regrid.CellAt(&cell), item, m.env)
		}
	}
	if lastRow < m.rowOffset {
		return canvas
	}

	bounding := regrid.NewCellRect(m.rowOffset, lastRow, cols[0], cols[len(cols)-1])
	drawable := m.sel.DrawableSelections(bounding)
	selStyle := m.env.StyleOr(regrid.StyleSelection, lipgloss.NewStyle().Reverse(true))
	for _, rect := range drawable.Ranges {
		m.highlight(canvas, rect, bounding, cols, xs, selStyle)
	}
	if drawable.Focus != nil {
		f := *drawable.Focus
		focusStyle := m.env.StyleOr(regrid.StyleFocus, lipgloss.NewStyle().Reverse(true))
		m.highlight(canvas, regrid.NewCellRect(f.Row, f.Row, f.Col, f.Col), bounding, cols, xs, focusStyle)
	}
	return canvas
}

func (m *Model[T]) highlight(canvas *Canvas, rect, bounding regrid.CellRect, cols []regrid.VisIdx, xs []int, style lipgloss.Style) {
	rect, ok := rect.Intersect(bounding)
	if !ok {
		return
	}
	first, last := int(rect.StartCol-cols[0]), int(rect.EndCol-cols[0])
	x := xs[first]
	width := xs[last] + m.colWidth(cols[last]) - x
	y := headerHeight + int(rect.StartRow-m.rowOffset)
	canvas.Highlight(x, y, width, int(rect.EndRow-rect.StartRow)+1, style)
}

func (m *Model[T]) statusLine() string {
	style := m.env.StyleOr(regrid.StyleStatus, lipgloss.NewStyle())
	if m.editor != nil {
		return style.Render(m.cols.Header(int(m.editing.Log.Col))+": ") + m.editor.View()
	}
	parts := []string{m.title}
	if focus, ok := m.sel.Focus(); ok {
		parts = append(parts, fmt.Sprintf("row %d/%d", focus.Vis.Row+1, m.numRows()))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return style.Render(strings.Join(parts, " | "))
}

func (m *Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return m.Paint().Render() + "\n" + m.statusLine()
}
