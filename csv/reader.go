package csv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
)

// Format describes the encoding and structure of CSV data.
type Format struct {
	// Encoding is a charset name known to
	// github.com/domonda/go-types/charset like "UTF-8" or "ISO 8859-1".
	Encoding string `json:"encoding" toml:"encoding"`
	// Separator is the single character field delimiter.
	Separator string `json:"separator" toml:"separator"`
	// Newline is one of "\n", "\r\n" or "\n\r".
	Newline string `json:"newline" toml:"newline"`
}

// NewFormat returns a UTF-8 Format with "\r\n" line endings.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate can be called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csv.Format")
	case f.Encoding == "":
		return errors.New("missing csv.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csv.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csv.Format.Separator: %q", f.Separator)
	case f.Newline != "\n" && f.Newline != "\r\n" && f.Newline != "\n\r":
		return fmt.Errorf("invalid csv.Format.Newline: %q", f.Newline)
	}
	return nil
}

// Detection configures how ParseDetect guesses a Format.
type Detection struct {
	// Encodings are tried in order,
	// the first one decoding any of EncodingTests wins.
	Encodings []string `json:"encodings" toml:"encodings"`
	// EncodingTests are strings with characters
	// that are encoded differently by Encodings.
	EncodingTests []string `json:"encodingTests" toml:"encoding_tests"`
}

// NewDetection returns a Detection for
// western european and cyrillic files.
func NewDetection() *Detection {
	return &Detection{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252",
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}

// ParseDetect detects the Format of data and parses it into rows.
// A nil detection uses NewDetection().
//
// The separator is taken from an Excel style "sep=X" first line
// or else is the most frequent of ',' ';' and '\t'
// with ',' winning ties.
// Lines end with "\r\n" if data contains any, else with "\n".
func ParseDetect(data []byte, detection *Detection) (regrid.StringRows, *Format, error) {
	if detection == nil {
		detection = NewDetection()
	}
	encodings := make([]charset.Encoding, 0, len(detection.Encodings))
	for _, name := range detection.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	data, encoding, err := charset.AutoDecode(data, encodings, detection.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	format := &Format{Encoding: encoding}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(data)

	format.Newline = "\n"
	if bytes.Contains(data, []byte("\r\n")) {
		format.Newline = "\r\n"
	}

	first, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := sepHeaderLine(first); sep != "" {
		format.Separator = sep
		data = rest
	} else {
		format.Separator = detectSeparator(data)
	}

	rows, err := parseRows(data, format.Separator[0], format.Newline)
	return rows, format, err
}

// Parse parses data encoded as described by format.
// An optional "sep=X" first line must declare format.Separator.
func Parse(data []byte, format *Format) (regrid.StringRows, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if strings.EqualFold(format.Encoding, "UTF-8") {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		if data, err = enc.Decode(data); err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	first, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if sep := sepHeaderLine(first); sep != "" {
		if sep != format.Separator {
			return nil, fmt.Errorf("separator %q in header line is different from format separator %q", sep, format.Separator)
		}
		data = rest
	}
	return parseRows(data, format.Separator[0], format.Newline)
}

// ReadFile reads and parses a CSV file.
// A nil format is detected with NewDetection().
func ReadFile(ctx context.Context, file fs.File, format *Format) (regrid.StringRows, *Format, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	if format == nil {
		return ParseDetect(data, nil)
	}
	rows, err := Parse(data, format)
	return rows, format, err
}

// RemoveEmptyRows returns rows without
// the rows where every cell is empty.
func RemoveEmptyRows(rows regrid.StringRows) regrid.StringRows {
	filtered := rows[:0]
	for _, row := range rows {
		if !isEmptyRow(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func sepHeaderLine(line []byte) string {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) == 7 && line[0] == '"' && line[6] == '"' {
		line = line[1:6]
	}
	if len(line) != 5 || !(bytes.HasPrefix(line, []byte("sep=")) || bytes.HasPrefix(line, []byte("SEP="))) {
		return ""
	}
	return string(line[4:])
}

func detectSeparator(data []byte) string {
	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	}
	return ","
}

// parseRows splits data into rows of fields.
// Quoted fields can contain the separator, newlines
// and doubled quotes. A quote within an unquoted field
// is taken literally. Newlines within quoted fields
// are normalized to "\n".
// Every line of data results in a row,
// empty lines in nil rows.
func parseRows(data []byte, sep byte, newline string) (regrid.StringRows, error) {
	var (
		rows   regrid.StringRows
		row    []string
		field  []byte
		quoted bool
		line   = 1
	)
	endField := func() {
		row = append(row, string(field))
		field = field[:0]
	}
	endRow := func() {
		if len(row) == 1 && row[0] == "" {
			row = nil
		}
		rows = append(rows, row)
		row = nil
	}
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case quoted:
			switch {
			case c == '"' && i+1 < len(data) && data[i+1] == '"':
				field = append(field, '"')
				i++
			case c == '"':
				quoted = false
			case bytes.HasPrefix(data[i:], []byte(newline)):
				field = append(field, '\n')
				i += len(newline) - 1
				line++
			default:
				field = append(field, c)
			}

		case c == '"' && len(field) == 0:
			quoted = true

		case c == sep:
			endField()

		case bytes.HasPrefix(data[i:], []byte(newline)):
			endField()
			endRow()
			i += len(newline) - 1
			line++

		default:
			field = append(field, c)
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quoted CSV field in line %d", line)
	}
	if len(field) > 0 || len(row) > 0 {
		endField()
		endRow()
	}
	return rows, nil
}

func sanitizeUTF8(data []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// U+FFFD replacement character and no-break space
			case '\uFFFD', '\u00a0':
				return ' '
			}
			return r
		},
		data,
	)
}
