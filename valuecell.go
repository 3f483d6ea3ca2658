package regrid

import (
	"cmp"
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

// ValueCell renders, compares and edits ordered values
// like numbers using a TextCell for painting.
type ValueCell[V cmp.Ordered] struct {
	text      *TextCell
	formatter Formatter
	parser    Parser
}

var _ CellDelegate[int] = new(ValueCell[int])

// NewValueCell returns a right aligned ValueCell
// using DefaultParser for editing.
func NewValueCell[V cmp.Ordered]() *ValueCell[V] {
	return &ValueCell[V]{
		text:   NewTextCell().Align(lipgloss.Right),
		parser: DefaultParser,
	}
}

// Formatter sets the formatter for displayed values.
func (c *ValueCell[V]) Formatter(formatter Formatter) *ValueCell[V] {
	c.formatter = formatter
	return c
}

// Parser sets the parser for edited values.
func (c *ValueCell[V]) Parser(parser Parser) *ValueCell[V] {
	c.parser = parser
	return c
}

// Text returns the TextCell used for painting.
func (c *ValueCell[V]) Text() *TextCell { return c.text }

func (c *ValueCell[V]) Init(ctx PaintCtx, env *Env) {
	c.text.Init(ctx, env)
}

func (c *ValueCell[V]) Paint(ctx PaintCtx, cell CellCtx, data V, env *Env) {
	c.text.Paint(ctx, cell, c.CellText(data), env)
}

func (c *ValueCell[V]) Compare(a, b V) int {
	return cmp.Compare(a, b)
}

func (c *ValueCell[V]) MakeEditor(CellCtx) (Editor[V], bool) {
	parse := func(str string) (V, error) { return ParseValue[V](str, c.parser) }
	return NewTextEditor(c.CellText, parse), true
}

func (c *ValueCell[V]) CellText(data V) string {
	return FormatValue(c.formatter, reflect.ValueOf(data))
}
