package htmltable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// CellFormatter formats the text of a cell as HTML.
type CellFormatter interface {
	FormatCell(text string) (template.HTML, error)
}

// CellFormatterFunc implements CellFormatter with a function.
type CellFormatterFunc func(text string) (template.HTML, error)

func (f CellFormatterFunc) FormatCell(text string) (template.HTML, error) {
	return f(text)
}

var (
	_ CellFormatter = CellFormatterFunc(nil)
	_ CellFormatter = JSONCellFormatter("")
	_ CellFormatter = SpanClassCellFormatter("")
	_ CellFormatter = Raw{}

	PreCellFormatter CellFormatterFunc = func(text string) (template.HTML, error) {
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>"), nil //#nosec G203
	}

	CodeCellFormatter CellFormatterFunc = func(text string) (template.HTML, error) {
		return template.HTML("<code>" + template.HTMLEscapeString(text) + "</code>"), nil //#nosec G203
	}

	// AnchorCellFormatter returns an anchor element
	// with the text as id and inner text.
	AnchorCellFormatter CellFormatterFunc = func(text string) (template.HTML, error) {
		text = template.HTMLEscapeString(text)
		return template.HTML(fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", text)), nil //#nosec G203
	}
)

// Raw uses the cell text as HTML without escaping.
// Only use it for trusted content.
type Raw struct{}

func (Raw) FormatCell(text string) (template.HTML, error) {
	return template.HTML(text), nil //#nosec G203
}

// JSONCellFormatter indents JSON cell text within a pre element
// using the string value as indent.
// An empty indent compacts the JSON.
// Empty text is formatted as empty HTML.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(text string) (template.HTML, error) {
	if text == "" {
		return "", nil
	}
	buf := bytes.NewBufferString("<pre>")
	var err error
	if indent == "" {
		err = json.Compact(buf, []byte(text))
	} else {
		err = json.Indent(buf, []byte(text), "", string(indent))
	}
	if err != nil {
		return "", err
	}
	buf.WriteString("</pre>")
	return template.HTML(buf.String()), nil //#nosec G203
}

// SpanClassCellFormatter formats the cell text within a span element
// with the class of the underlying string value.
type SpanClassCellFormatter string

func (class SpanClassCellFormatter) FormatCell(text string) (template.HTML, error) {
	return template.HTML(fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), template.HTMLEscapeString(text))), nil //#nosec G203
}
