package regrid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// paintCall is one SetString call recorded by recordingCtx.
type paintCall struct {
	X, Y  int
	Text  string
	Style lipgloss.Style
}

// recordingCtx is a PaintCtx recording all drawing
// in the coordinates of the root context.
type recordingCtx struct {
	offsetX, offsetY int
	width, height    int
	calls            *[]paintCall
}

func newRecordingCtx(width, height int) *recordingCtx {
	return &recordingCtx{width: width, height: height, calls: new([]paintCall)}
}

func (c *recordingCtx) Size() (width, height int) { return c.width, c.height }

func (c *recordingCtx) SetString(x, y int, s string, style lipgloss.Style) {
	*c.calls = append(*c.calls, paintCall{X: c.offsetX + x, Y: c.offsetY + y, Text: s, Style: style})
}

func (c *recordingCtx) Region(x, y, width, height int) PaintCtx {
	return &recordingCtx{
		offsetX: c.offsetX + x,
		offsetY: c.offsetY + y,
		width:   max(min(width, c.width-x), 0),
		height:  max(min(height, c.height-y), 0),
		calls:   c.calls,
	}
}

func (c *recordingCtx) Calls() []paintCall { return *c.calls }

// Text returns the concatenated text of all calls.
func (c *recordingCtx) Text() string {
	var b strings.Builder
	for _, call := range *c.calls {
		b.WriteString(call.Text)
	}
	return b.String()
}
