package regrid

import "fmt"

// CellCtxKind is the variant of a CellCtx.
type CellCtxKind uint8

const (
	// CtxAbsent is used when no specific cell is painted, like a background.
	CtxAbsent CellCtxKind = iota
	// CtxCell is a data cell.
	CtxCell
	// CtxHeader is a header of a row or column.
	CtxHeader
)

// CellCtx tells a renderer or editor factory what it works on.
type CellCtx struct {
	Kind CellCtxKind

	// Cell is set for CtxCell.
	Cell *SingleCell

	// Axis, Log and Sort are set for CtxHeader.
	// Sort is nil if the header's column is not sorted.
	Axis TableAxis
	Log  LogIdx
	Sort *SortSpec
}

func AbsentCtx() CellCtx {
	return CellCtx{Kind: CtxAbsent}
}

func CellAt(cell *SingleCell) CellCtx {
	return CellCtx{Kind: CtxCell, Cell: cell}
}

func HeaderAt(axis TableAxis, log LogIdx, sort *SortSpec) CellCtx {
	return CellCtx{Kind: CtxHeader, Axis: axis, Log: log, Sort: sort}
}

// LogCol returns the logical column of a CtxCell context.
func (c CellCtx) LogCol() (LogIdx, bool) {
	if c.Kind != CtxCell || c.Cell == nil {
		return 0, false
	}
	return c.Cell.Log.Col, true
}

func (c CellCtx) String() string {
	switch c.Kind {
	case CtxCell:
		if c.Cell == nil {
			return "Cell(<nil>)"
		}
		return fmt.Sprintf("Cell(%s)", c.Cell)
	case CtxHeader:
		if c.Sort == nil {
			return fmt.Sprintf("Header(%s %d)", c.Axis, c.Log)
		}
		return fmt.Sprintf("Header(%s %d %s)", c.Axis, c.Log, c.Sort.Direction)
	}
	return "Absent"
}
