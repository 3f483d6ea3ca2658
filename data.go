package regrid

// IndexedItems gives read access to items by logical index.
type IndexedItems[T any] interface {
	// IdxLen returns the number of items.
	IdxLen() int
	// Item returns the item at idx or false if idx is out of bounds.
	Item(idx LogIdx) (T, bool)
}

// IndexedData is IndexedItems that can be modified in place.
type IndexedData[T any] interface {
	IndexedItems[T]
	// Update calls fn with a pointer to the item at idx
	// and returns false without calling fn if idx is out of bounds.
	Update(idx LogIdx, fn func(item *T)) bool
}

// With calls fn with the item at idx and returns its result,
// or false if idx is out of bounds.
func With[T, R any](items IndexedItems[T], idx LogIdx, fn func(item T) R) (R, bool) {
	item, ok := items.Item(idx)
	if !ok {
		var zero R
		return zero, false
	}
	return fn(item), true
}

// Items implements IndexedData for a slice.
type Items[T any] []T

var _ IndexedData[int] = Items[int](nil)

func (items Items[T]) IdxLen() int { return len(items) }

func (items Items[T]) Item(idx LogIdx) (T, bool) {
	if idx < 0 || int(idx) >= len(items) {
		var zero T
		return zero, false
	}
	return items[idx], true
}

func (items Items[T]) Update(idx LogIdx, fn func(item *T)) bool {
	if idx < 0 || int(idx) >= len(items) {
		return false
	}
	fn(&items[idx])
	return true
}

// StringRows is IndexedData for rows of strings.
//
// A row can have fewer elements than there are columns,
// missing cells read as empty strings, see StringRow.Cell.
type StringRows [][]string

var _ IndexedData[StringRow] = StringRows(nil)

// StringRow is a row of StringRows.
type StringRow []string

// Cell returns the string at col or an empty string
// if the row has no element at col.
func (row StringRow) Cell(col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func (rows StringRows) IdxLen() int { return len(rows) }

func (rows StringRows) Item(idx LogIdx) (StringRow, bool) {
	if idx < 0 || int(idx) >= len(rows) {
		return nil, false
	}
	return rows[idx], true
}

// Update passes a copy of the row padded to the written column,
// so sparse rows grow as cells are written.
func (rows StringRows) Update(idx LogIdx, fn func(row *StringRow)) bool {
	if idx < 0 || int(idx) >= len(rows) {
		return false
	}
	row := StringRow(rows[idx])
	fn(&row)
	rows[idx] = row
	return true
}

// SetCell sets the string at col, growing the row if necessary.
func (row *StringRow) SetCell(col int, value string) {
	if col < 0 {
		return
	}
	for len(*row) <= col {
		*row = append(*row, "")
	}
	(*row)[col] = value
}

// StringRowField returns the Field of the cell at col of a StringRow.
func StringRowField(col int) Field[StringRow, string] {
	return Field[StringRow, string]{
		Get: func(row StringRow) string { return row.Cell(col) },
		Set: func(row *StringRow, value string) { row.SetCell(col, value) },
	}
}

// StringRowColumns returns an editable text column
// for every header of StringRows.
func StringRowColumns(headers []string) []TableColumn[StringRow] {
	cols := make([]TableColumn[StringRow], len(headers))
	for i, header := range headers {
		cols[i] = NewColumn[StringRow](header, Lens(NewTextCell(), StringRowField(i)))
	}
	return cols
}

// RemappedItems presents Source in visual order according to Remap.
// Its indices are visual indices reinterpreted as LogIdx,
// which makes it usable wherever IndexedItems are expected,
// for example to export what is displayed.
type RemappedItems[T any] struct {
	Source IndexedItems[T]
	Remap  Remap
}

var _ IndexedItems[int] = RemappedItems[int]{}

func (r RemappedItems[T]) IdxLen() int {
	return r.Remap.Len(r.Source.IdxLen())
}

func (r RemappedItems[T]) Item(idx LogIdx) (T, bool) {
	log, ok := r.Remap.LogIdx(VisIdx(idx), r.Source.IdxLen())
	if !ok {
		var zero T
		return zero, false
	}
	return r.Source.Item(log)
}
