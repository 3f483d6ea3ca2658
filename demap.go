package regrid

// CellDemap translates visual indices to logical indices.
// It is the only bridge from visual to logical coordinates
// and must be kept consistent with the current Remap by its owner.
type CellDemap interface {
	// LogIdx returns the logical index displayed at vis on axis
	// or false if vis is out of bounds.
	LogIdx(axis TableAxis, vis VisIdx) (LogIdx, bool)
}

// CellDemapFunc implements CellDemap with a function.
type CellDemapFunc func(axis TableAxis, vis VisIdx) (LogIdx, bool)

func (f CellDemapFunc) LogIdx(axis TableAxis, vis VisIdx) (LogIdx, bool) {
	return f(axis, vis)
}

// LogCell looks up both axes of vis,
// the result is false if either lookup fails.
func LogCell(demap CellDemap, vis AxisPair[VisIdx]) (AxisPair[LogIdx], bool) {
	row, ok := demap.LogIdx(Rows, vis.Row)
	if !ok {
		return AxisPair[LogIdx]{}, false
	}
	col, ok := demap.LogIdx(Columns, vis.Col)
	if !ok {
		return AxisPair[LogIdx]{}, false
	}
	return NewAxisPair(row, col), true
}

// RemapDemap is a CellDemap over a Remap per axis
// and the number of logical items per axis.
type RemapDemap struct {
	Remaps  AxisPair[Remap]
	LogLens AxisPair[int]
}

var _ CellDemap = RemapDemap{}

func (d RemapDemap) LogIdx(axis TableAxis, vis VisIdx) (LogIdx, bool) {
	remap := d.Remaps.Get(axis)
	return remap.LogIdx(vis, d.LogLens.Get(axis))
}
