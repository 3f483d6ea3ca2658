package regrid

import "fmt"

// SingleCell addresses one cell in both coordinate systems.
// Vis and Log refer to the same cell at the time of construction.
type SingleCell struct {
	Vis AxisPair[VisIdx]
	Log AxisPair[LogIdx]
}

func NewSingleCell(vis AxisPair[VisIdx], log AxisPair[LogIdx]) SingleCell {
	return SingleCell{Vis: vis, Log: log}
}

func (c SingleCell) String() string {
	return fmt.Sprintf("vis%s log%s", c.Vis, c.Log)
}

// SingleSlice is an entire row or column,
// determined by the axis and the focused cell.
type SingleSlice struct {
	Axis  TableAxis
	Focus SingleCell
}

func NewSingleSlice(axis TableAxis, focus SingleCell) SingleSlice {
	return SingleSlice{Axis: axis, Focus: focus}
}

// CellRect returns the rectangle covering the slice
// within the cross axis range crossStart..crossEnd
// plus one cell of overdraw on both sides for border drawing.
func (s SingleSlice) CellRect(crossStart, crossEnd VisIdx) CellRect {
	main := s.Focus.Vis.Get(s.Axis)
	return newCellRectForAxis(s.Axis, main, main, crossStart.SaturatingAdd(-1), crossEnd.SaturatingAdd(1))
}

// CellRange is a rectangle defined by two corner cells.
// Focus is the anchor of the last explicit interaction,
// Extent the opposite corner.
type CellRange struct {
	Focus  SingleCell
	Extent SingleCell
}

func NewCellRange(focus, extent SingleCell) CellRange {
	return CellRange{Focus: focus, Extent: extent}
}

// CellRect returns the visual rectangle spanned by the range.
func (r CellRange) CellRect() CellRect {
	startRow, endRow := VisAscending(r.Focus.Vis.Row, r.Extent.Vis.Row)
	startCol, endCol := VisAscending(r.Focus.Vis.Col, r.Extent.Vis.Col)
	return NewCellRect(startRow, endRow, startCol, endCol)
}

// SliceRange is a contiguous run of rows or columns.
type SliceRange struct {
	Axis  TableAxis
	Range CellRange
}

func NewSliceRange(axis TableAxis, rng CellRange) SliceRange {
	return SliceRange{Axis: axis, Range: rng}
}

// CellRect returns the rectangle covering all slices of the range
// within the cross axis range crossStart..crossEnd
// plus one cell of overdraw on both sides.
func (s SliceRange) CellRect(crossStart, crossEnd VisIdx) CellRect {
	mainStart, mainEnd := VisAscending(s.Range.Focus.Vis.Get(s.Axis), s.Range.Extent.Vis.Get(s.Axis))
	return newCellRectForAxis(s.Axis, mainStart, mainEnd, crossStart.SaturatingAdd(-1), crossEnd.SaturatingAdd(1))
}
