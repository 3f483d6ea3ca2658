package regrid

import (
	"fmt"
	"iter"
)

// CellRect is an inclusive rectangle of visual indices.
// A rectangle only makes sense in VisIdx space,
// in LogIdx space any set of points is possible due to remapping.
type CellRect struct {
	StartRow VisIdx
	EndRow   VisIdx
	StartCol VisIdx
	EndCol   VisIdx
}

// NewCellRect creates a CellRect from row and column ranges.
func NewCellRect(startRow, endRow, startCol, endCol VisIdx) CellRect {
	return CellRect{
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// newCellRectForAxis places the main range at axis
// and the cross range at the cross axis.
func newCellRectForAxis(axis TableAxis, mainStart, mainEnd, crossStart, crossEnd VisIdx) CellRect {
	if axis == Rows {
		return NewCellRect(mainStart, mainEnd, crossStart, crossEnd)
	}
	return NewCellRect(crossStart, crossEnd, mainStart, mainEnd)
}

func (r CellRect) Rows() iter.Seq[VisIdx] { return VisRange(r.StartRow, r.EndRow) }
func (r CellRect) Cols() iter.Seq[VisIdx] { return VisRange(r.StartCol, r.EndCol) }

// Range returns the inclusive start and end of the rectangle on axis.
func (r CellRect) Range(axis TableAxis) (start, end VisIdx) {
	if axis == Rows {
		return r.StartRow, r.EndRow
	}
	return r.StartCol, r.EndCol
}

func (r CellRect) ContainsIdx(axis TableAxis, idx VisIdx) bool {
	start, end := r.Range(axis)
	return start <= idx && end >= idx
}

func (r CellRect) ContainsCell(cell AxisPair[VisIdx]) bool {
	return r.ContainsIdx(Columns, cell.Col) && r.ContainsIdx(Rows, cell.Row)
}

// Intersect returns the overlapping part of r and other,
// or false if they don't overlap.
func (r CellRect) Intersect(other CellRect) (CellRect, bool) {
	i := CellRect{
		StartRow: max(r.StartRow, other.StartRow),
		EndRow:   min(r.EndRow, other.EndRow),
		StartCol: max(r.StartCol, other.StartCol),
		EndCol:   min(r.EndCol, other.EndCol),
	}
	if i.StartRow > i.EndRow || i.StartCol > i.EndCol {
		return CellRect{}, false
	}
	return i, true
}

func (r CellRect) String() string {
	return fmt.Sprintf("rows[%d..%d] cols[%d..%d]", r.StartRow, r.EndRow, r.StartCol, r.EndCol)
}
