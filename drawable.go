package regrid

import "fmt"

// DrawableSelections is what a renderer has to draw
// for a selection within a visible rectangle.
type DrawableSelections struct {
	// Focus is the visual address of the focus cell
	// or nil if there is none or it is not visible.
	Focus  *AxisPair[VisIdx]
	Ranges []CellRect
}

func (d *DrawableSelections) setFocus(vis AxisPair[VisIdx]) {
	d.Focus = &vis
}

func (d *DrawableSelections) setFocusWithin(vis AxisPair[VisIdx], bounding CellRect) {
	if bounding.ContainsCell(vis) {
		d.setFocus(vis)
	}
}

// IsEmpty returns true if nothing has to be drawn.
func (d DrawableSelections) IsEmpty() bool {
	return d.Focus == nil && len(d.Ranges) == 0
}

// IndicesKind is the variant of an IndicesSelection.
type IndicesKind uint8

const (
	NoIndices IndicesKind = iota
	SingleIndexKind
	IndexRangeKind
)

// IndicesSelection is the projection of a TableSelection onto one axis.
// The zero value selects no indices.
type IndicesSelection struct {
	Kind   IndicesKind
	Focus  VisIdx
	Extent VisIdx // only used for IndexRangeKind
}

func SingleIndex(idx VisIdx) IndicesSelection {
	return IndicesSelection{Kind: SingleIndexKind, Focus: idx}
}

func IndexRange(focus, extent VisIdx) IndicesSelection {
	return IndicesSelection{Kind: IndexRangeKind, Focus: focus, Extent: extent}
}

// VisIndexSelected returns true if idx is selected.
func (s IndicesSelection) VisIndexSelected(idx VisIdx) bool {
	switch s.Kind {
	case SingleIndexKind:
		return s.Focus == idx
	case IndexRangeKind:
		first, last := VisAscending(s.Focus, s.Extent)
		return idx >= first && idx <= last
	}
	return false
}

func (s IndicesSelection) String() string {
	switch s.Kind {
	case SingleIndexKind:
		return fmt.Sprintf("Single(%d)", s.Focus)
	case IndexRangeKind:
		return fmt.Sprintf("Range(%d..%d)", s.Focus, s.Extent)
	}
	return "NoIndices"
}
