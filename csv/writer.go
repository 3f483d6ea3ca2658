package csv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
)

// Writer writes regrid Views as CSV.
type Writer struct {
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	delimiter        rune
	newLine          string
	encoder          TextTransformer
}

// NewWriter returns a Writer using ';' as delimiter
// and "\r\n" as line ending.
func NewWriter() *Writer {
	return &Writer{
		delimiter:    ';',
		escapeQuotes: `""`,
		newLine:      "\r\n",
	}
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	w.quoteAllFields = quoteAllFields
	return w
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	w.quoteEmptyFields = quoteEmptyFields
	return w
}

func (w *Writer) WithEscapeQuotes(escapeQuotes string) *Writer {
	w.escapeQuotes = escapeQuotes
	return w
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	w.delimiter = delimiter
	return w
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	w.newLine = newLine
	return w
}

func (w *Writer) WithEncoder(encoder TextTransformer) *Writer {
	w.encoder = encoder
	return w
}

// WithCharset encodes the output with the named charset.
// An empty name or "UTF-8" writes UTF-8 unchanged.
func (w *Writer) WithCharset(name string) (*Writer, error) {
	if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		w.encoder = nil
		return w, nil
	}
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("csv charset %q: %w", name, err)
	}
	w.encoder = CharsetEncoder{Encoding: enc}
	return w, nil
}

func (w *Writer) Delimiter() rune          { return w.delimiter }
func (w *Writer) NewLine() string          { return w.newLine }
func (w *Writer) Encoder() TextTransformer { return w.encoder }

// WriteView writes all cells of view to dest.
// The column headers are written as first row
// if options contain regrid.OptionAddHeaderRow.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view regrid.View, options ...regrid.Option) error {
	var (
		buf       = bytes.NewBuffer(make([]byte, 0, 1024))
		mustQuote = "\n\"" + string(w.delimiter)
		cols      = view.Columns()
	)
	if regrid.HasOption(options, regrid.OptionAddHeaderRow) {
		err := w.writeRow(ctx, dest, buf, cols, mustQuote)
		if err != nil {
			return err
		}
	}
	row := make([]string, len(cols))
	for r := range view.NumRows() {
		for c := range row {
			row[c] = view.Cell(r, c)
		}
		err := w.writeRow(ctx, dest, buf, row, mustQuote)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteString returns view as CSV string.
func (w *Writer) WriteString(ctx context.Context, view regrid.View, options ...regrid.Option) (string, error) {
	var buf strings.Builder
	err := w.WriteView(ctx, &buf, view, options...)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes view as CSV to file.
func (w *Writer) WriteFile(ctx context.Context, file fs.File, view regrid.View, options ...regrid.Option) error {
	var buf bytes.Buffer
	err := w.WriteView(ctx, &buf, view, options...)
	if err != nil {
		return err
	}
	if err = file.WriteAll(buf.Bytes()); err != nil {
		return fmt.Errorf("can't write CSV to %s: %w", file, err)
	}
	return nil
}

// appendField appends str to buf, quoted if it contains
// one of mustQuote or the writer is configured to quote it.
// Carriage returns are dropped, a single \n is valid within quotes.
func (w *Writer) appendField(buf *bytes.Buffer, str, mustQuote string) {
	str = strings.ReplaceAll(str, "\r", "")
	if w.quoteAllFields || strings.ContainsAny(str, mustQuote) {
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(str, `"`, w.escapeQuotes))
		buf.WriteByte('"')
		return
	}
	if str == "" && w.quoteEmptyFields {
		str = `""`
	}
	buf.WriteString(str)
}

func (w *Writer) writeRow(ctx context.Context, dest io.Writer, buf *bytes.Buffer, row []string, mustQuote string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer buf.Reset()
	for i, str := range row {
		if i > 0 {
			buf.WriteRune(w.delimiter)
		}
		w.appendField(buf, str, mustQuote)
	}
	buf.WriteString(w.newLine)
	line := buf.Bytes()
	if w.encoder != nil {
		encoded, err := w.encoder.Bytes(line)
		if err != nil {
			return fmt.Errorf("can't encode CSV row: %w", err)
		}
		line = encoded
	}
	_, err := dest.Write(line)
	return err
}
