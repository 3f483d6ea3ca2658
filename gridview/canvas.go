package gridview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/domonda/go-regrid"
)

// canvasCell is one terminal cell.
// A zero rune marks the continuation of a wide rune to its left.
type canvasCell struct {
	r         rune
	style     int // index into Canvas.styles
	highlight int // index into Canvas.styles, -1 for none
}

// Canvas is a grid of styled terminal cells implementing regrid.PaintCtx.
type Canvas struct {
	width  int
	height int
	cells  []canvasCell
	styles []lipgloss.Style
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]canvasCell, width*height),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.cells {
		c.cells[i] = canvasCell{r: ' ', highlight: -1}
	}
	return c
}

func (c *Canvas) addStyle(style lipgloss.Style) int {
	c.styles = append(c.styles, style)
	return len(c.styles) - 1
}

func (c *Canvas) cell(x, y int) *canvasCell {
	return &c.cells[y*c.width+x]
}

func (c *Canvas) Size() (width, height int) { return c.width, c.height }

func (c *Canvas) SetString(x, y int, s string, style lipgloss.Style) {
	c.setString(x, y, s, style, 0, 0, c.width, c.height)
}

func (c *Canvas) Region(x, y, width, height int) regrid.PaintCtx {
	return newRegion(c, 0, 0, c.width, c.height).Region(x, y, width, height)
}

// setString draws s at x, y clipped to the rectangle clipX, clipY, clipW, clipH.
func (c *Canvas) setString(x, y int, s string, style lipgloss.Style, clipX, clipY, clipW, clipH int) {
	if y < clipY || y >= clipY+clipH || y < 0 || y >= c.height {
		return
	}
	styleIdx := c.addStyle(style)
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= clipX && x+w <= clipX+clipW && x >= 0 && x+w <= c.width {
			cell := c.cell(x, y)
			cell.r = r
			cell.style = styleIdx
			for i := 1; i < w; i++ {
				cont := c.cell(x+i, y)
				cont.r = 0
				cont.style = styleIdx
			}
		}
		x += w
	}
}

// Highlight sets the background of the rectangle to the background of style.
func (c *Canvas) Highlight(x, y, width, height int, style lipgloss.Style) {
	idx := c.addStyle(style)
	for cy := max(y, 0); cy < min(y+height, c.height); cy++ {
		for cx := max(x, 0); cx < min(x+width, c.width); cx++ {
			c.cell(cx, cy).highlight = idx
		}
	}
}

// Text returns the canvas content without styles, lines separated by '\n'.
func (c *Canvas) Text() string {
	var b strings.Builder
	for y := range c.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range c.width {
			if r := c.cell(x, y).r; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// HighlightAt returns the highlight style at x, y.
func (c *Canvas) HighlightAt(x, y int) (lipgloss.Style, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return lipgloss.Style{}, false
	}
	idx := c.cell(x, y).highlight
	if idx < 0 {
		return lipgloss.Style{}, false
	}
	return c.styles[idx], true
}

// StyleAt returns the text style at x, y.
func (c *Canvas) StyleAt(x, y int) (lipgloss.Style, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return lipgloss.Style{}, false
	}
	return c.styles[c.cell(x, y).style], true
}

// Render returns the canvas as styled terminal output.
func (c *Canvas) Render() string {
	var (
		b   strings.Builder
		run strings.Builder
	)
	for y := range c.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		runStyle, runHighlight := -1, -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := c.styles[runStyle]
			if runHighlight >= 0 {
				style = style.Background(c.styles[runHighlight].GetBackground())
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := range c.width {
			cell := c.cell(x, y)
			if cell.r == 0 {
				continue
			}
			if cell.style != runStyle || cell.highlight != runHighlight {
				flush()
				runStyle, runHighlight = cell.style, cell.highlight
			}
			run.WriteRune(cell.r)
		}
		flush()
	}
	return b.String()
}

// region is a clipped sub area of a Canvas.
type region struct {
	canvas *Canvas
	x, y   int
	width  int
	height int
}

func newRegion(canvas *Canvas, x, y, width, height int) *region {
	return &region{canvas: canvas, x: x, y: y, width: max(width, 0), height: max(height, 0)}
}

func (r *region) Size() (width, height int) { return r.width, r.height }

func (r *region) SetString(x, y int, s string, style lipgloss.Style) {
	r.canvas.setString(r.x+x, r.y+y, s, style, r.x, r.y, r.width, r.height)
}

func (r *region) Region(x, y, width, height int) regrid.PaintCtx {
	// clip to this region
	left, top := max(x, 0), max(y, 0)
	right, bottom := min(x+width, r.width), min(y+height, r.height)
	return newRegion(r.canvas, r.x+left, r.y+top, right-left, bottom-top)
}
