package csv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
)

func TestParseDetect(t *testing.T) {
	tests := []struct {
		name       string
		csv        string
		wantRows   regrid.StringRows
		wantFormat Format
	}{
		{
			name:       "semicolon CRLF",
			csv:        "Name;Age\r\nJohn;30\r\nJane;25",
			wantRows:   regrid.StringRows{{"Name", "Age"}, {"John", "30"}, {"Jane", "25"}},
			wantFormat: Format{Encoding: "UTF-8", Separator: ";", Newline: "\r\n"},
		},
		{
			name:       "tabs",
			csv:        "a\tb\n1\t2\n",
			wantRows:   regrid.StringRows{{"a", "b"}, {"1", "2"}},
			wantFormat: Format{Encoding: "UTF-8", Separator: "\t", Newline: "\n"},
		},
		{
			name:       "sep header line",
			csv:        "\"sep=;\"\na,b;c\n",
			wantRows:   regrid.StringRows{{"a,b", "c"}},
			wantFormat: Format{Encoding: "UTF-8", Separator: ";", Newline: "\n"},
		},
		{
			name: "quoted fields",
			csv:  "Name,Quote\n\"Doe, John\",\"He said \"\"Hi\"\"\"\n\"multi\nline\",x\n\n",
			wantRows: regrid.StringRows{
				{"Name", "Quote"},
				{"Doe, John", `He said "Hi"`},
				{"multi\nline", "x"},
				nil,
			},
			wantFormat: Format{Encoding: "UTF-8", Separator: ",", Newline: "\n"},
		},
		{
			name:       "inner quote of unquoted field",
			csv:        `5" disk,1`,
			wantRows:   regrid.StringRows{{`5" disk`, "1"}},
			wantFormat: Format{Encoding: "UTF-8", Separator: ",", Newline: "\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, format, err := ParseDetect([]byte(tt.csv), nil)
			require.NoError(t, err)
			require.Equal(t, tt.wantRows, rows)
			require.Equal(t, tt.wantFormat.Separator, format.Separator)
			require.Equal(t, tt.wantFormat.Newline, format.Newline)
			require.NoError(t, format.Validate())
		})
	}
}

func TestParse(t *testing.T) {
	rows, err := Parse([]byte("\xef\xbb\xbfa;b\r\n1;2\r\n"), NewFormat(";"))
	require.NoError(t, err)
	require.Equal(t, regrid.StringRows{{"a", "b"}, {"1", "2"}}, rows)

	rows, err = Parse([]byte("Stra\xdfe;M\xfcller\n"), &Format{Encoding: "ISO 8859-1", Separator: ";", Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, regrid.StringRows{{"Straße", "Müller"}}, rows)

	_, err = Parse([]byte("sep=,\r\na;b"), NewFormat(";"))
	require.Error(t, err, "separator header mismatch")

	_, err = Parse([]byte("\"open;b"), NewFormat(";"))
	require.Error(t, err, "unterminated quote")

	_, err = Parse(nil, &Format{Encoding: "UTF-8", Separator: ";;", Newline: "\n"})
	require.Error(t, err)
}

func TestFormat_Validate(t *testing.T) {
	var nilFormat *Format
	require.Error(t, nilFormat.Validate())
	require.NoError(t, NewFormat(",").Validate())
	require.Error(t, (&Format{Encoding: "UTF-8", Separator: ",", Newline: "\r"}).Validate())
	require.Error(t, (&Format{Separator: ",", Newline: "\n"}).Validate())
}

func TestRemoveEmptyRows(t *testing.T) {
	rows := regrid.StringRows{{"a"}, nil, {"", ""}, {"", "b"}}
	require.Equal(t, regrid.StringRows{{"a"}, {"", "b"}}, RemoveEmptyRows(rows))
}

func TestReadFile_RoundTrip(t *testing.T) {
	file := fs.File(filepath.Join(t.TempDir(), "records.csv"))
	view := recordView(record{Name: "a;b", Notes: "two\nlines", Count: 1})
	err := NewWriter().WriteFile(context.Background(), file, view, regrid.OptionAddHeaderRow)
	require.NoError(t, err)

	rows, format, err := ReadFile(context.Background(), file, nil)
	require.NoError(t, err)
	require.Equal(t, ";", format.Separator)
	require.Equal(t, "\r\n", format.Newline)
	require.Equal(t, regrid.StringRows{{"Name", "Notes", "Count"}, {"a;b", "two\nlines", "1"}}, rows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ReadFile(ctx, file, NewFormat(";"))
	require.ErrorIs(t, err, context.Canceled)
}
