package regrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func visCell(row, col VisIdx) SingleCell {
	return NewSingleCell(NewAxisPair(row, col), NewAxisPair(LogIdx(row), LogIdx(col)))
}

func visPtr(row, col VisIdx) *AxisPair[VisIdx] {
	p := NewAxisPair(row, col)
	return &p
}

func TestDrawable(t *testing.T) {
	bounding := NewCellRect(0, 10, 2, 8)
	tests := []struct {
		name string
		sel  TableSelection
		want DrawableSelections
	}{
		{
			name: "no selection",
			sel:  NoSelection{},
			want: DrawableSelections{},
		},
		{
			name: "visible cell",
			sel:  visCell(3, 4),
			want: DrawableSelections{Focus: visPtr(3, 4)},
		},
		{
			name: "cell left of bounding",
			sel:  visCell(3, 1),
			want: DrawableSelections{},
		},
		{
			name: "row slice with cross margin",
			sel:  NewSingleSlice(Rows, visCell(5, 4)),
			want: DrawableSelections{
				Focus:  visPtr(5, 4),
				Ranges: []CellRect{NewCellRect(5, 5, 1, 9)},
			},
		},
		{
			name: "row slice with focus scrolled out",
			sel:  NewSingleSlice(Rows, visCell(5, 0)),
			want: DrawableSelections{
				Ranges: []CellRect{NewCellRect(5, 5, 1, 9)},
			},
		},
		{
			name: "row slice outside bounding",
			sel:  NewSingleSlice(Rows, visCell(12, 4)),
			want: DrawableSelections{},
		},
		{
			name: "column slice",
			sel:  NewSingleSlice(Columns, visCell(0, 6)),
			want: DrawableSelections{
				Focus:  visPtr(0, 6),
				Ranges: []CellRect{NewCellRect(0, 11, 6, 6)},
			},
		},
		{
			name: "cell range clipped",
			sel:  NewCellRange(visCell(9, 7), visCell(12, 12)),
			want: DrawableSelections{
				Focus:  visPtr(9, 7),
				Ranges: []CellRect{NewCellRect(9, 10, 7, 8)},
			},
		},
		{
			name: "cell range outside",
			sel:  NewCellRange(visCell(11, 0), visCell(12, 1)),
			want: DrawableSelections{},
		},
		{
			name: "row range spanning bounding",
			sel:  NewSliceRange(Rows, NewCellRange(visCell(12, 3), visCell(4, 3))),
			want: DrawableSelections{
				Ranges: []CellRect{NewCellRect(4, 10, 1, 9)},
			},
		},
		{
			name: "column range overlapping bounding start",
			sel:  NewSliceRange(Columns, NewCellRange(visCell(2, 0), visCell(2, 3))),
			want: DrawableSelections{
				Ranges: []CellRect{NewCellRect(0, 11, 2, 3)},
			},
		},
		{
			name: "column range spanning past both ends",
			sel:  NewSliceRange(Columns, NewCellRange(visCell(2, 0), visCell(2, 12))),
			want: DrawableSelections{
				Ranges: []CellRect{NewCellRect(0, 11, 2, 8)},
			},
		},
		{
			name: "column range outside",
			sel:  NewSliceRange(Columns, NewCellRange(visCell(2, 9), visCell(2, 12))),
			want: DrawableSelections{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Drawable(tt.sel, bounding)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, Drawable(tt.sel, bounding), "pure function")
		})
	}
}

func TestDrawable_SingleSliceProperty(t *testing.T) {
	slice := NewSingleSlice(Rows, visCell(5, 3))

	got := Drawable(slice, NewCellRect(0, 10, 2, 8))
	require.Equal(t, []CellRect{{StartRow: 5, EndRow: 5, StartCol: 1, EndCol: 9}}, got.Ranges)

	got = Drawable(slice, NewCellRect(6, 10, 2, 8))
	require.Empty(t, got.Ranges)
	require.True(t, got.IsEmpty())
}

func TestSelection_DrawableSelectionsAtOrigin(t *testing.T) {
	var sel Selection
	sel.Set(NewSingleSlice(Columns, visCell(0, 0)))
	got := sel.DrawableSelections(NewCellRect(0, 3, 0, 3))
	require.Equal(t, []CellRect{NewCellRect(0, 4, 0, 0)}, got.Ranges, "margin saturates at zero")
}
