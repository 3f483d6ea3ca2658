package regrid

import "fmt"

// TableSelection is the selection state of a table.
// It is one of NoSelection, SingleCell, SingleSlice, CellRange or SliceRange.
// A nil TableSelection is treated like NoSelection.
//
// Every variant except NoSelection has a focus cell, see Focus.
type TableSelection interface {
	fmt.Stringer
	isTableSelection()
}

// NoSelection is the initial selection of a table.
type NoSelection struct{}

func (NoSelection) String() string { return "NoSelection" }

func (NoSelection) isTableSelection() {}
func (SingleCell) isTableSelection()  {}
func (SingleSlice) isTableSelection() {}
func (CellRange) isTableSelection()   {}
func (SliceRange) isTableSelection()  {}

func (s SingleSlice) String() string {
	return fmt.Sprintf("SingleSlice{%s %s}", s.Axis, s.Focus)
}

func (r CellRange) String() string {
	return fmt.Sprintf("CellRange{focus %s, extent %s}", r.Focus, r.Extent)
}

func (s SliceRange) String() string {
	return fmt.Sprintf("SliceRange{%s %s}", s.Axis, s.Range)
}

// SelectionMod derives a new selection from the current one.
// It returns false if the modification does not apply.
type SelectionMod func(sel TableSelection) (TableSelection, bool)

func normalize(sel TableSelection) TableSelection {
	if sel == nil {
		return NoSelection{}
	}
	return sel
}

func unknownSelection(sel TableSelection) string {
	return fmt.Sprintf("unknown TableSelection type %T", sel)
}

// Focus returns the anchor cell of sel.
// It is false only for NoSelection.
func Focus(sel TableSelection) (SingleCell, bool) {
	switch s := normalize(sel).(type) {
	case NoSelection:
		return SingleCell{}, false
	case SingleCell:
		return s, true
	case SingleSlice:
		return s.Focus, true
	case CellRange:
		return s.Focus, true
	case SliceRange:
		return s.Range.Focus, true
	default:
		panic(unknownSelection(sel))
	}
}

// VisFocus returns the visual address of the focus of sel.
func VisFocus(sel TableSelection) (AxisPair[VisIdx], bool) {
	focus, ok := Focus(sel)
	return focus.Vis, ok
}

func HasFocus(sel TableSelection) bool {
	_, ok := Focus(sel)
	return ok
}

// MoveFocus moves the focus of sel by amount on axis.
//
// NoSelection ignores the amount and snaps to the visual origin.
// Ranges collapse to a single cell or single slice at the moved focus.
// The result is false if the moved focus has no logical mapping.
// Upper bounds are not checked beyond what demap reports.
func MoveFocus(sel TableSelection, axis TableAxis, amount VisOffset, demap CellDemap) (TableSelection, bool) {
	switch s := normalize(sel).(type) {
	case NoSelection:
		origin := NewAxisPair[VisIdx](0, 0)
		log, ok := LogCell(demap, origin)
		if !ok {
			return nil, false
		}
		return NewSingleCell(origin, log), true

	case SingleCell:
		cell, ok := movedCell(s.Vis, axis, amount, demap)
		if !ok {
			return nil, false
		}
		return cell, true

	case SingleSlice:
		cell, ok := movedCell(s.Focus.Vis, axis, amount, demap)
		if !ok {
			return nil, false
		}
		return NewSingleSlice(s.Axis, cell), true

	case CellRange:
		cell, ok := movedCell(s.Focus.Vis, axis, amount, demap)
		if !ok {
			return nil, false
		}
		return cell, true

	case SliceRange:
		cell, ok := movedCell(s.Range.Focus.Vis, axis, amount, demap)
		if !ok {
			return nil, false
		}
		return NewSingleSlice(s.Axis, cell), true

	default:
		panic(unknownSelection(sel))
	}
}

func movedCell(vis AxisPair[VisIdx], axis TableAxis, amount VisOffset, demap CellDemap) (SingleCell, bool) {
	moved, ok := MoveBy(vis, axis, amount)
	if !ok {
		return SingleCell{}, false
	}
	log, ok := LogCell(demap, moved)
	if !ok {
		return SingleCell{}, false
	}
	return NewSingleCell(moved, log), true
}

// MoveExtent combines the focus of sel with extent to a CellRange.
// Only a SingleCell or CellRange sel combined with a SingleCell extent
// is a valid extension, all other combinations return false.
func MoveExtent(sel, extent TableSelection) (TableSelection, bool) {
	ext, ok := extent.(SingleCell)
	if !ok {
		return nil, false
	}
	switch s := normalize(sel).(type) {
	case SingleCell:
		return NewCellRange(s, ext), true
	case CellRange:
		return NewCellRange(s.Focus, ext), true
	case NoSelection, SingleSlice, SliceRange:
		return nil, false
	default:
		panic(unknownSelection(sel))
	}
}

// ExtendFromFocusInAxis returns a SingleSlice on axis through the focus of sel
// without modifying anything.
func ExtendFromFocusInAxis(sel TableSelection, axis TableAxis, demap CellDemap) (TableSelection, bool) {
	visFocus, ok := VisFocus(sel)
	if !ok {
		return nil, false
	}
	logFocus, ok := LogCell(demap, visFocus)
	if !ok {
		return nil, false
	}
	return NewSingleSlice(axis, NewSingleCell(visFocus, logFocus)), true
}

// ToAxisSelection projects sel onto a single axis.
// A slice selection has no component on its cross axis
// and projects to NoIndices there.
func ToAxisSelection(sel TableSelection, forAxis TableAxis, _ CellDemap) IndicesSelection {
	switch s := normalize(sel).(type) {
	case NoSelection:
		return IndicesSelection{}
	case SingleCell:
		return SingleIndex(s.Vis.Get(forAxis))
	case SingleSlice:
		if forAxis != s.Axis {
			return IndicesSelection{}
		}
		return SingleIndex(s.Focus.Vis.Get(forAxis))
	case CellRange:
		return IndexRange(s.Focus.Vis.Get(forAxis), s.Extent.Vis.Get(forAxis))
	case SliceRange:
		if forAxis != s.Axis {
			return IndicesSelection{}
		}
		return IndexRange(s.Range.Focus.Vis.Get(forAxis), s.Range.Extent.Vis.Get(forAxis))
	default:
		panic(unknownSelection(sel))
	}
}

// Drawable computes what has to be drawn for sel
// within the visible rectangle bounding.
// It is a pure function of its arguments.
func Drawable(sel TableSelection, bounding CellRect) DrawableSelections {
	var d DrawableSelections
	switch s := normalize(sel).(type) {
	case NoSelection:

	case SingleCell:
		if bounding.ContainsCell(s.Vis) {
			d.setFocus(s.Vis)
		}

	case SingleSlice:
		if bounding.ContainsIdx(s.Axis, s.Focus.Vis.Get(s.Axis)) {
			d.setFocusWithin(s.Focus.Vis, bounding)
			d.Ranges = append(d.Ranges, s.CellRect(bounding.Range(s.Axis.CrossAxis())))
		}

	case CellRange:
		if rect, ok := s.CellRect().Intersect(bounding); ok {
			d.setFocusWithin(s.Focus.Vis, bounding)
			d.Ranges = append(d.Ranges, rect)
		}

	case SliceRange:
		rect := s.CellRect(bounding.Range(s.Axis.CrossAxis()))
		mainStart, mainEnd := rect.Range(s.Axis)
		boundStart, boundEnd := bounding.Range(s.Axis)
		if mainStart <= boundEnd && mainEnd >= boundStart {
			crossStart, crossEnd := rect.Range(s.Axis.CrossAxis())
			rect = newCellRectForAxis(s.Axis, max(mainStart, boundStart), min(mainEnd, boundEnd), crossStart, crossEnd)
			d.setFocusWithin(s.Range.Focus.Vis, bounding)
			d.Ranges = append(d.Ranges, rect)
		}

	default:
		panic(unknownSelection(sel))
	}
	return d
}

// Selection holds the TableSelection of a table widget.
// The zero value holds NoSelection.
// It never caches visual to logical mappings,
// every operation consults the passed CellDemap.
type Selection struct {
	current TableSelection
}

// Get returns the current selection.
func (s *Selection) Get() TableSelection {
	return normalize(s.current)
}

// Set replaces the current selection.
func (s *Selection) Set(sel TableSelection) {
	s.current = normalize(sel)
}

// Apply sets sel if ok is true and returns ok.
// It takes the results of the pure transition functions directly:
//
//	s.Apply(MoveFocus(s.Get(), Rows, 1, demap))
func (s *Selection) Apply(sel TableSelection, ok bool) bool {
	if ok {
		s.Set(sel)
	}
	return ok
}

// Clear resets to NoSelection.
func (s *Selection) Clear() {
	s.current = NoSelection{}
}

// SelectInAxis replaces the selection with a SingleSlice
// at vis on axis. The selection is unchanged if vis has no logical mapping.
func (s *Selection) SelectInAxis(axis TableAxis, vis VisIdx, demap CellDemap) {
	visAddr := NewAxisPairForAxis[VisIdx](axis, vis, 0)
	if logAddr, ok := LogCell(demap, visAddr); ok {
		s.current = NewSingleSlice(axis, NewSingleCell(visAddr, logAddr))
	}
}

// ExtendInAxis extends the selection to a SliceRange from the current focus
// to vis on axis. Without a focus it behaves like SelectInAxis.
func (s *Selection) ExtendInAxis(axis TableAxis, vis VisIdx, demap CellDemap) {
	focus, ok := Focus(s.current)
	if !ok {
		s.SelectInAxis(axis, vis, demap)
		return
	}
	visAddr := NewAxisPairForAxis[VisIdx](axis, vis, 0)
	if logAddr, ok := LogCell(demap, visAddr); ok {
		s.current = NewSliceRange(axis, NewCellRange(focus, NewSingleCell(visAddr, logAddr)))
	}
}

func (s *Selection) MoveFocus(axis TableAxis, amount VisOffset, demap CellDemap) bool {
	return s.Apply(MoveFocus(s.current, axis, amount, demap))
}

func (s *Selection) MoveExtent(extent TableSelection) bool {
	return s.Apply(MoveExtent(s.current, extent))
}

func (s *Selection) Focus() (SingleCell, bool) {
	return Focus(s.current)
}

func (s *Selection) ToAxisSelection(axis TableAxis, demap CellDemap) IndicesSelection {
	return ToAxisSelection(s.current, axis, demap)
}

func (s *Selection) DrawableSelections(bounding CellRect) DrawableSelections {
	return Drawable(s.current, bounding)
}

// Revalidate re-resolves the logical addresses of the selection
// against demap after the remap changed.
// Cells whose visual address no longer maps
// collapse the selection to NoSelection.
func (s *Selection) Revalidate(demap CellDemap) {
	resolve := func(c SingleCell) (SingleCell, bool) {
		log, ok := LogCell(demap, c.Vis)
		return NewSingleCell(c.Vis, log), ok
	}
	var (
		next TableSelection = NoSelection{}
		ok   bool
	)
	switch sel := normalize(s.current).(type) {
	case NoSelection:
		return
	case SingleCell:
		next, ok = resolve(sel)
	case SingleSlice:
		var focus SingleCell
		if focus, ok = resolve(sel.Focus); ok {
			next = NewSingleSlice(sel.Axis, focus)
		}
	case CellRange:
		var rng CellRange
		if rng, ok = resolveRange(sel, resolve); ok {
			next = rng
		}
	case SliceRange:
		var rng CellRange
		if rng, ok = resolveRange(sel.Range, resolve); ok {
			next = NewSliceRange(sel.Axis, rng)
		}
	default:
		panic(unknownSelection(sel))
	}
	if !ok {
		Logger.Debug("selection dropped after remap")
		next = NoSelection{}
	}
	s.current = next
}

func resolveRange(r CellRange, resolve func(SingleCell) (SingleCell, bool)) (CellRange, bool) {
	focus, ok := resolve(r.Focus)
	if !ok {
		return CellRange{}, false
	}
	extent, ok := resolve(r.Extent)
	if !ok {
		return CellRange{}, false
	}
	return NewCellRange(focus, extent), true
}
