package regrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gridDemap is a CellDemap of a rows x cols table
// where rows are displayed in reverse logical order.
func gridDemap(rows, cols int) CellDemap {
	return CellDemapFunc(func(axis TableAxis, vis VisIdx) (LogIdx, bool) {
		switch {
		case vis < 0:
			return 0, false
		case axis == Rows && int(vis) < rows:
			return LogIdx(rows - 1 - int(vis)), true
		case axis == Columns && int(vis) < cols:
			return LogIdx(vis), true
		}
		return 0, false
	})
}

func cellAt(demap CellDemap, row, col VisIdx) SingleCell {
	vis := NewAxisPair(row, col)
	log, ok := LogCell(demap, vis)
	if !ok {
		panic("cell out of bounds")
	}
	return NewSingleCell(vis, log)
}

func TestMoveFocus_NoSelectionSnapsToOrigin(t *testing.T) {
	demap := CellDemapFunc(func(axis TableAxis, vis VisIdx) (LogIdx, bool) {
		if vis == 0 {
			return 0, true
		}
		return 0, false
	})
	got, ok := MoveFocus(NoSelection{}, Rows, 1, demap)
	require.True(t, ok)
	require.Equal(t, NewSingleCell(NewAxisPair[VisIdx](0, 0), NewAxisPair[LogIdx](0, 0)), got)

	_, ok = MoveFocus(nil, Columns, 3, demap)
	require.True(t, ok, "nil is NoSelection")
}

func TestMoveFocus(t *testing.T) {
	demap := gridDemap(5, 4)
	tests := []struct {
		name   string
		sel    TableSelection
		axis   TableAxis
		amount VisOffset
		want   TableSelection
		wantOK bool
	}{
		{
			name:   "single cell down",
			sel:    cellAt(demap, 1, 1),
			axis:   Rows,
			amount: 1,
			want:   cellAt(demap, 2, 1),
			wantOK: true,
		},
		{
			name:   "single cell before first row",
			sel:    cellAt(demap, 0, 1),
			axis:   Rows,
			amount: -1,
			wantOK: false,
		},
		{
			name:   "single cell after last column",
			sel:    cellAt(demap, 0, 3),
			axis:   Columns,
			amount: 1,
			wantOK: false,
		},
		{
			name:   "cell range collapses and drops extent",
			sel:    NewCellRange(cellAt(demap, 0, 0), cellAt(demap, 2, 2)),
			axis:   Columns,
			amount: 1,
			want:   cellAt(demap, 0, 1),
			wantOK: true,
		},
		{
			name:   "single slice moves along",
			sel:    NewSingleSlice(Rows, cellAt(demap, 1, 0)),
			axis:   Rows,
			amount: 2,
			want:   NewSingleSlice(Rows, cellAt(demap, 3, 0)),
			wantOK: true,
		},
		{
			name:   "slice range collapses to single slice",
			sel:    NewSliceRange(Columns, NewCellRange(cellAt(demap, 0, 1), cellAt(demap, 0, 3))),
			axis:   Columns,
			amount: -1,
			want:   NewSingleSlice(Columns, cellAt(demap, 0, 0)),
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MoveFocus(tt.sel, tt.axis, tt.amount, demap)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMoveFocus_CellRangeLogicalMapping(t *testing.T) {
	demap := gridDemap(3, 3)
	rng := NewCellRange(cellAt(demap, 0, 0), cellAt(demap, 2, 2))
	got, ok := MoveFocus(rng, Columns, 1, demap)
	require.True(t, ok)
	cell, isCell := got.(SingleCell)
	require.True(t, isCell)
	require.Equal(t, NewAxisPair[VisIdx](0, 1), cell.Vis)
	require.Equal(t, NewAxisPair[LogIdx](2, 1), cell.Log, "rows are reversed")
}

func TestMoveExtent(t *testing.T) {
	demap := gridDemap(5, 5)
	a, b, c := cellAt(demap, 1, 1), cellAt(demap, 3, 2), cellAt(demap, 4, 0)
	tests := []struct {
		name   string
		sel    TableSelection
		extent TableSelection
		want   TableSelection
		wantOK bool
	}{
		{name: "cell with cell", sel: a, extent: b, want: NewCellRange(a, b), wantOK: true},
		{name: "range keeps focus", sel: NewCellRange(a, b), extent: c, want: NewCellRange(a, c), wantOK: true},
		{name: "no selection", sel: NoSelection{}, extent: b, wantOK: false},
		{name: "slice", sel: NewSingleSlice(Rows, a), extent: b, wantOK: false},
		{name: "slice range", sel: NewSliceRange(Rows, NewCellRange(a, b)), extent: c, wantOK: false},
		{name: "range extent", sel: a, extent: NewCellRange(b, c), wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MoveExtent(tt.sel, tt.extent)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtendFromFocusInAxis(t *testing.T) {
	demap := gridDemap(4, 4)
	focus := cellAt(demap, 2, 3)

	got, ok := ExtendFromFocusInAxis(NewCellRange(focus, cellAt(demap, 0, 0)), Columns, demap)
	require.True(t, ok)
	require.Equal(t, NewSingleSlice(Columns, focus), got)

	_, ok = ExtendFromFocusInAxis(NoSelection{}, Rows, demap)
	require.False(t, ok)
}

func TestToAxisSelection(t *testing.T) {
	demap := gridDemap(6, 6)
	a, b := cellAt(demap, 1, 4), cellAt(demap, 3, 2)
	tests := []struct {
		name string
		sel  TableSelection
		axis TableAxis
		want IndicesSelection
	}{
		{name: "none", sel: NoSelection{}, axis: Rows, want: IndicesSelection{}},
		{name: "cell rows", sel: a, axis: Rows, want: SingleIndex(1)},
		{name: "cell columns", sel: a, axis: Columns, want: SingleIndex(4)},
		{name: "slice main axis", sel: NewSingleSlice(Rows, a), axis: Rows, want: SingleIndex(1)},
		{name: "slice cross axis", sel: NewSingleSlice(Rows, a), axis: Columns, want: IndicesSelection{}},
		{name: "range", sel: NewCellRange(a, b), axis: Columns, want: IndexRange(4, 2)},
		{name: "slice range main axis", sel: NewSliceRange(Columns, NewCellRange(a, b)), axis: Columns, want: IndexRange(4, 2)},
		{name: "slice range cross axis", sel: NewSliceRange(Columns, NewCellRange(a, b)), axis: Rows, want: IndicesSelection{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToAxisSelection(tt.sel, tt.axis, demap))
		})
	}

	rng := IndexRange(4, 2)
	require.True(t, rng.VisIndexSelected(3))
	require.True(t, rng.VisIndexSelected(2))
	require.False(t, rng.VisIndexSelected(5))
	require.False(t, IndicesSelection{}.VisIndexSelected(0))
}

func TestSelection(t *testing.T) {
	demap := gridDemap(5, 3)
	var sel Selection
	require.Equal(t, NoSelection{}, sel.Get())
	require.False(t, HasFocus(sel.Get()))

	require.True(t, sel.MoveFocus(Rows, 1, demap))
	require.Equal(t, cellAt(demap, 0, 0), sel.Get())

	require.True(t, sel.MoveFocus(Rows, 2, demap))
	require.False(t, sel.MoveFocus(Rows, 5, demap), "out of bounds")
	require.Equal(t, cellAt(demap, 2, 0), sel.Get(), "unchanged after failed move")

	require.True(t, sel.MoveExtent(cellAt(demap, 4, 2)))
	require.Equal(t, NewCellRange(cellAt(demap, 2, 0), cellAt(demap, 4, 2)), sel.Get())

	sel.SelectInAxis(Rows, 1, demap)
	require.Equal(t, NewSingleSlice(Rows, cellAt(demap, 1, 0)), sel.Get())

	sel.ExtendInAxis(Rows, 3, demap)
	require.Equal(t, NewSliceRange(Rows, NewCellRange(cellAt(demap, 1, 0), cellAt(demap, 3, 0))), sel.Get())

	sel.SelectInAxis(Rows, 9, demap)
	require.IsType(t, SliceRange{}, sel.Get(), "unmapped index keeps selection")

	sel.Clear()
	require.Equal(t, NoSelection{}, sel.Get())

	sel.ExtendInAxis(Columns, 2, demap)
	require.Equal(t, NewSingleSlice(Columns, cellAt(demap, 0, 2)), sel.Get(), "extend without focus selects")
}

func TestSelection_Revalidate(t *testing.T) {
	before := gridDemap(5, 3)
	var sel Selection
	sel.Set(NewCellRange(cellAt(before, 0, 0), cellAt(before, 2, 1)))

	identity := CellDemapFunc(func(axis TableAxis, vis VisIdx) (LogIdx, bool) {
		return LogIdx(vis), vis >= 0 && vis < 5
	})
	sel.Revalidate(identity)
	require.Equal(t,
		NewCellRange(
			NewSingleCell(NewAxisPair[VisIdx](0, 0), NewAxisPair[LogIdx](0, 0)),
			NewSingleCell(NewAxisPair[VisIdx](2, 1), NewAxisPair[LogIdx](2, 1)),
		),
		sel.Get(),
		"visual addresses kept, logical addresses re-resolved",
	)

	sel.Revalidate(gridDemap(2, 3))
	require.Equal(t, NoSelection{}, sel.Get(), "extent no longer maps")
}
