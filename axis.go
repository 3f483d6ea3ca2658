package regrid

import (
	"fmt"
	"iter"
)

// TableAxis is either the row or the column axis of a table.
type TableAxis uint8

const (
	Rows TableAxis = iota
	Columns
)

// CrossAxis returns the other axis.
// CrossAxis is an involution: axis.CrossAxis().CrossAxis() == axis.
func (axis TableAxis) CrossAxis() TableAxis {
	if axis == Rows {
		return Columns
	}
	return Rows
}

// String implements the fmt.Stringer interface.
func (axis TableAxis) String() string {
	switch axis {
	case Rows:
		return "Rows"
	case Columns:
		return "Columns"
	}
	return fmt.Sprintf("TableAxis(%d)", uint8(axis))
}

// LogIdx is an index into the unpermuted backing collection.
// It is never interchangeable with a VisIdx,
// conversion always goes through a remap lookup.
type LogIdx int

// VisIdx is an index into the currently displayed order
// after sorting and reordering.
type VisIdx int

// VisOffset is a signed delta applied to a VisIdx.
type VisOffset int

// Offset returns idx moved by offset.
// The result is false if it would become negative.
// An upper bound is not checked, that is up to the CellDemap.
func (idx VisIdx) Offset(offset VisOffset) (VisIdx, bool) {
	moved := int(idx) + int(offset)
	if moved < 0 {
		return 0, false
	}
	return VisIdx(moved), true
}

// SaturatingAdd returns idx moved by offset clamped at zero.
func (idx VisIdx) SaturatingAdd(offset VisOffset) VisIdx {
	return VisIdx(max(int(idx)+int(offset), 0))
}

// VisAscending returns a and b ordered so that first <= second.
func VisAscending(a, b VisIdx) (first, second VisIdx) {
	if a <= b {
		return a, b
	}
	return b, a
}

// VisRange iterates the inclusive range from..to.
// Nothing is yielded if to < from.
func VisRange(from, to VisIdx) iter.Seq[VisIdx] {
	return func(yield func(VisIdx) bool) {
		for idx := from; idx <= to; idx++ {
			if !yield(idx) {
				return
			}
		}
	}
}

// AxisPair holds exactly one value per TableAxis.
// It addresses screen cells as AxisPair[VisIdx]
// and data cells as AxisPair[LogIdx].
type AxisPair[T any] struct {
	Row T
	Col T
}

func NewAxisPair[T any](row, col T) AxisPair[T] {
	return AxisPair[T]{Row: row, Col: col}
}

// NewAxisPairForAxis places main at axis and cross at the cross axis.
func NewAxisPairForAxis[T any](axis TableAxis, main, cross T) AxisPair[T] {
	var p AxisPair[T]
	p.Set(axis, main)
	p.Set(axis.CrossAxis(), cross)
	return p
}

// Get returns the value for axis.
func (p AxisPair[T]) Get(axis TableAxis) T {
	if axis == Rows {
		return p.Row
	}
	return p.Col
}

// Set sets the value for axis.
func (p *AxisPair[T]) Set(axis TableAxis, value T) {
	if axis == Rows {
		p.Row = value
	} else {
		p.Col = value
	}
}

func (p AxisPair[T]) String() string {
	return fmt.Sprintf("(%v,%v)", p.Row, p.Col)
}

// MoveBy returns p moved by offset on axis.
// The result is false if the moved index would be negative.
func MoveBy(p AxisPair[VisIdx], axis TableAxis, offset VisOffset) (AxisPair[VisIdx], bool) {
	moved, ok := p.Get(axis).Offset(offset)
	if !ok {
		return p, false
	}
	p.Set(axis, moved)
	return p, true
}
