// Package htmltable writes regrid Views as HTML tables.
//
// Cell texts are HTML escaped unless a CellFormatter
// registered for their column returns raw HTML.
//
//	err := htmltable.NewWriter().
//	    WithTableClass("grid").
//	    WithColumnFormatter(2, htmltable.CodeCellFormatter).
//	    WriteView(ctx, os.Stdout, view, regrid.OptionAddHeaderRow)
package htmltable

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"maps"
	"strings"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
)

// Writer writes regrid Views as HTML table elements.
//
// Writer is immutable, all With methods return a modified copy.
type Writer struct {
	tableClass       string
	rowClass         func(row int) string
	columnFormatters map[int]CellFormatter
	emptyValue       template.HTML
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter returns a Writer using the default templates
// without table class and column formatters.
func NewWriter() *Writer {
	return &Writer{
		columnFormatters: make(map[int]CellFormatter),
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	c.columnFormatters = maps.Clone(w.columnFormatters)
	return c
}

// WithTableClass returns a writer rendering <table class='tableClass'>.
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithRowClass returns a writer setting the class of every data row
// to the result of rowClass. Empty classes are omitted.
func (w *Writer) WithRowClass(rowClass func(row int) string) *Writer {
	mod := w.clone()
	mod.rowClass = rowClass
	return mod
}

// WithColumnFormatter returns a writer formatting the cells of column
// with formatter. A nil formatter removes the formatter of column.
func (w *Writer) WithColumnFormatter(column int, formatter CellFormatter) *Writer {
	mod := w.clone()
	if formatter != nil {
		mod.columnFormatters[column] = formatter
	} else {
		delete(mod.columnFormatters, column)
	}
	return mod
}

// WithRawColumn returns a writer that uses the texts of column as HTML.
func (w *Writer) WithRawColumn(column int) *Writer {
	return w.WithColumnFormatter(column, Raw{})
}

// WithEmptyValue returns a writer writing emptyValue for empty cells.
func (w *Writer) WithEmptyValue(emptyValue template.HTML) *Writer {
	mod := w.clone()
	mod.emptyValue = emptyValue
	return mod
}

// WithTemplate returns a writer using the passed templates,
// nil templates keep the current ones.
// The header and footer templates are executed with a TemplateContext,
// the row template with a RowTemplateContext.
func (w *Writer) WithTemplate(headerTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	if headerTemplate != nil {
		mod.headerTemplate = headerTemplate
	}
	if rowTemplate != nil {
		mod.rowTemplate = rowTemplate
	}
	if footerTemplate != nil {
		mod.footerTemplate = footerTemplate
	}
	return mod
}

func (w *Writer) TableClass() string        { return w.tableClass }
func (w *Writer) EmptyValue() template.HTML { return w.emptyValue }

// WriteView writes view as HTML table to dest using its title as caption.
// The column headers are written as <th> row
// if options contain regrid.OptionAddHeaderRow.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view regrid.View, options ...regrid.Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    view.Title(),
			},
			RawCells: make([]template.HTML, len(columns)),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if regrid.HasOption(options, regrid.OptionAddHeaderRow) {
		templData.IsHeaderRow = true
		for i, column := range columns {
			templData.RawCells[i] = template.HTML(template.HTMLEscapeString(column)) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
	}

	for row := range view.NumRows() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := range columns {
			templData.RawCells[col], err = w.formatCell(view.Cell(row, col), col)
			if err != nil {
				return fmt.Errorf("can't format cell at row %d column %q: %w", row, columns[col], err)
			}
		}
		templData.RowIndex = row
		templData.RowClass = ""
		if w.rowClass != nil {
			templData.RowClass = w.rowClass(row)
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) formatCell(text string, col int) (template.HTML, error) {
	if formatter, ok := w.columnFormatters[col]; ok {
		return formatter.FormatCell(text)
	}
	if text == "" {
		return w.emptyValue, nil
	}
	return template.HTML(template.HTMLEscapeString(text)), nil //#nosec G203
}

// WriteString returns view as HTML string.
func (w *Writer) WriteString(ctx context.Context, view regrid.View, options ...regrid.Option) (string, error) {
	var buf strings.Builder
	err := w.WriteView(ctx, &buf, view, options...)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes view as HTML table to file.
func (w *Writer) WriteFile(ctx context.Context, file fs.File, view regrid.View, options ...regrid.Option) error {
	var buf bytes.Buffer
	err := w.WriteView(ctx, &buf, view, options...)
	if err != nil {
		return err
	}
	if err = file.WriteAll(buf.Bytes()); err != nil {
		return fmt.Errorf("can't write HTML to %s: %w", file, err)
	}
	return nil
}
