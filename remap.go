package regrid

import (
	"fmt"
	"slices"
)

// SortDirection of a sort key.
type SortDirection uint8

const (
	Ascending SortDirection = iota
	Descending
)

// Apply returns the three-way comparison result ord for the direction,
// Descending reverses it.
func (dir SortDirection) Apply(ord int) int {
	if dir == Descending {
		return -ord
	}
	return ord
}

// Toggled returns the opposite direction.
func (dir SortDirection) Toggled() SortDirection {
	if dir == Descending {
		return Ascending
	}
	return Descending
}

func (dir SortDirection) String() string {
	if dir == Descending {
		return "Descending"
	}
	return "Ascending"
}

// SortSpec is one sort key: a column index and a direction.
type SortSpec struct {
	Idx       int
	Direction SortDirection
}

func NewSortSpec(idx int, direction SortDirection) SortSpec {
	return SortSpec{Idx: idx, Direction: direction}
}

// RemapSpec is the declarative sort intent of a table.
// Sort keys are applied in order, the first non equal comparison wins.
type RemapSpec struct {
	SortBy []SortSpec
}

// IsEmpty returns true if the spec does not change the logical order.
func (spec *RemapSpec) IsEmpty() bool {
	return spec == nil || len(spec.SortBy) == 0
}

// AddSort appends a sort key.
func (spec *RemapSpec) AddSort(s SortSpec) {
	spec.SortBy = append(spec.SortBy, s)
}

// SortFor returns the sort key of column idx.
func (spec *RemapSpec) SortFor(idx int) (*SortSpec, bool) {
	if spec == nil {
		return nil, false
	}
	for i := range spec.SortBy {
		if spec.SortBy[i].Idx == idx {
			return &spec.SortBy[i], true
		}
	}
	return nil, false
}

// ToggleSort makes column idx the primary sort key.
// A column that already is the primary key flips its direction,
// any other column is moved to the front as Ascending.
// Fixed columns are not changed and false is returned.
func (spec *RemapSpec) ToggleSort(idx int, fixed bool) bool {
	if fixed {
		return false
	}
	dir := Ascending
	if len(spec.SortBy) > 0 && spec.SortBy[0].Idx == idx {
		dir = spec.SortBy[0].Direction.Toggled()
	}
	spec.SortBy = slices.DeleteFunc(spec.SortBy, func(s SortSpec) bool { return s.Idx == idx })
	spec.SortBy = slices.Insert(spec.SortBy, 0, NewSortSpec(idx, dir))
	return true
}

// Clone returns a deep copy.
func (spec *RemapSpec) Clone() RemapSpec {
	if spec == nil {
		return RemapSpec{}
	}
	return RemapSpec{SortBy: slices.Clone(spec.SortBy)}
}

// Remap is the computed visual order of logical items.
// The zero value is the identity where visual and logical indices are equal.
type Remap struct {
	// full holds for every visual index the displayed logical index.
	// nil means identity.
	full []LogIdx
}

// IdentityRemap returns the Remap where visual equals logical order.
func IdentityRemap() Remap { return Remap{} }

// FullRemap returns a Remap displaying order[vis] at vis.
// order must be a permutation of [0, len(order)).
func FullRemap(order []LogIdx) Remap {
	if order == nil {
		order = []LogIdx{}
	}
	return Remap{full: order}
}

func (r Remap) IsIdentity() bool { return r.full == nil }

// Len returns the number of visual indices for dataLen logical items.
func (r Remap) Len(dataLen int) int {
	if r.full == nil {
		return dataLen
	}
	return len(r.full)
}

// LogIdx returns the logical index displayed at vis
// or false if vis is out of bounds.
func (r Remap) LogIdx(vis VisIdx, dataLen int) (LogIdx, bool) {
	if vis < 0 || int(vis) >= r.Len(dataLen) {
		return 0, false
	}
	if r.full == nil {
		return LogIdx(vis), true
	}
	return r.full[vis], true
}

// VisIdx returns the visual index of log
// or false if log is not displayed.
func (r Remap) VisIdx(log LogIdx, dataLen int) (VisIdx, bool) {
	if r.full == nil {
		if log < 0 || int(log) >= dataLen {
			return 0, false
		}
		return VisIdx(log), true
	}
	i := slices.Index(r.full, log)
	if i < 0 {
		return 0, false
	}
	return VisIdx(i), true
}

// Order returns a copy of the visual order
// or nil for the identity.
func (r Remap) Order() []LogIdx {
	return slices.Clone(r.full)
}

func (r Remap) String() string {
	if r.full == nil {
		return "Remap(identity)"
	}
	return fmt.Sprintf("Remap%v", r.full)
}

// Remapper computes Remaps for items of type T.
type Remapper[T any] interface {
	// SortFixed reports whether user interaction
	// must not change the sort of column idx.
	SortFixed(idx int) bool
	// InitialSpec returns the RemapSpec a table starts with.
	InitialSpec() RemapSpec
	// RemapItems computes the visual order of data for spec.
	RemapItems(data IndexedItems[T], spec RemapSpec) Remap
}
