package regrid

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// warningMarker is drawn in front of cells rendered
// without a resolved style.
const warningMarker = "!"

// TextCell renders, compares and edits strings.
type TextCell struct {
	style      KeyOrStyle
	foreground lipgloss.TerminalColor
	align      lipgloss.Position

	cached *lipgloss.Style
}

var (
	_ CellDelegate[string] = new(TextCell)
	_ CellTexter[string]   = new(TextCell)
)

// NewTextCell returns a left aligned TextCell using the StyleText style of the Env.
func NewTextCell() *TextCell {
	return &TextCell{
		style: StyleFromKey(StyleText),
		align: lipgloss.Left,
	}
}

// Style sets the style or style key to resolve.
func (c *TextCell) Style(style KeyOrStyle) *TextCell {
	c.style = style
	c.cached = nil
	return c
}

// TextColor overrides the foreground color of the resolved style.
func (c *TextCell) TextColor(color lipgloss.TerminalColor) *TextCell {
	c.foreground = color
	c.cached = nil
	return c
}

// Align sets the horizontal alignment within the cell.
func (c *TextCell) Align(align lipgloss.Position) *TextCell {
	c.align = align
	return c
}

func (c *TextCell) resolveStyle(env *Env) (lipgloss.Style, bool) {
	style, ok := c.style.Resolve(env)
	if !ok {
		return lipgloss.NewStyle(), false
	}
	if c.foreground != nil {
		style = style.Foreground(c.foreground)
	}
	return style, true
}

// Init resolves the style from env and caches it for Paint.
// Every call resolves again, so a changed Env takes effect.
// If the style can't be resolved the cache is cleared.
func (c *TextCell) Init(ctx PaintCtx, env *Env) {
	style, ok := c.resolveStyle(env)
	if !ok {
		Logger.Warn("cannot resolve text cell style", zap.Stringer("style", c.style))
		c.cached = nil
		return
	}
	c.cached = &style
}

// Paint draws data in the first line of the cell.
// Without a cached style the text is drawn behind a warning marker.
func (c *TextCell) Paint(ctx PaintCtx, cell CellCtx, data string, env *Env) {
	if c.cached != nil {
		c.paintText(ctx, data, *c.cached)
		return
	}
	Logger.Warn("text cell style not cached, missing call to Init?", zap.Stringer("cell", cell))
	style, _ := c.resolveStyle(env)
	ctx.SetString(0, 0, warningMarker, env.StyleOr(StyleWarning, defaultWarningStyle))
	width, height := ctx.Size()
	c.paintText(ctx.Region(1, 0, width-1, height), data, style)
}

func (c *TextCell) paintText(ctx PaintCtx, data string, style lipgloss.Style) {
	width, height := ctx.Size()
	if width <= 0 || height <= 0 {
		return
	}
	text, _, _ := strings.Cut(data, "\n")
	text = runewidth.Truncate(text, width, "…")
	x := int(float64(width-runewidth.StringWidth(text)) * float64(c.align))
	ctx.SetString(x, 0, text, style)
}

func (c *TextCell) Compare(a, b string) int {
	return cmp.Compare(a, b)
}

func (c *TextCell) MakeEditor(CellCtx) (Editor[string], bool) {
	return NewTextEditor(identity[string], parseString), true
}

func (c *TextCell) CellText(data string) string {
	return data
}

func identity[T any](v T) T { return v }

func parseString(s string) (string, error) { return s, nil }
