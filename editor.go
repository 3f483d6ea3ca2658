package regrid

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextEditor edits a value of type V as a single line of text.
type TextEditor[V any] struct {
	input  textinput.Model
	format func(V) string
	parse  func(string) (V, error)
}

var _ Editor[int] = new(TextEditor[int])

// NewTextEditor returns a TextEditor using format to show the value
// and parse to convert the edited text back.
func NewTextEditor[V any](format func(V) string, parse func(string) (V, error)) *TextEditor[V] {
	input := textinput.New()
	input.Prompt = ""
	return &TextEditor[V]{
		input:  input,
		format: format,
		parse:  parse,
	}
}

func (e *TextEditor[V]) Init() tea.Cmd {
	return textinput.Blink
}

func (e *TextEditor[V]) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *TextEditor[V]) View() string   { return e.input.View() }
func (e *TextEditor[V]) Focus() tea.Cmd { return e.input.Focus() }
func (e *TextEditor[V]) Blur()          { e.input.Blur() }

// Text returns the current text of the editor.
func (e *TextEditor[V]) Text() string { return e.input.Value() }

// SetText replaces the current text of the editor.
func (e *TextEditor[V]) SetText(text string) {
	e.input.SetValue(text)
	e.input.CursorEnd()
}

func (e *TextEditor[V]) Load(data V) {
	e.SetText(e.format(data))
}

func (e *TextEditor[V]) Store(data *V) error {
	value, err := e.parse(e.input.Value())
	if err != nil {
		return fmt.Errorf("can't store %q: %w", e.input.Value(), err)
	}
	*data = value
	return nil
}
