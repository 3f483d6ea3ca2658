package htmltable

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-regrid"
)

type company struct {
	Status    string `col:"Status"`
	Name      string `col:"Company"`
	CompanyID uint64 `col:"Company ID"`
}

func companyView() *regrid.TableView[company] {
	return &regrid.TableView[company]{
		Tit: "Table Title",
		Data: regrid.Items[company]{
			{Name: "Company <1>", CompanyID: 1},
			{Status: `{"ok": true}`, Name: "Company 2", CompanyID: 2},
		},
		Cols: regrid.NewProvidedColumns(regrid.StructColumns[company](&regrid.DefaultStructFieldNaming, nil)...),
	}
}

func ExampleWriter() {
	_ = NewWriter().
		WithColumnFormatter(0, JSONCellFormatter("")).
		WriteView(context.Background(), os.Stdout, companyView(), regrid.OptionAddHeaderRow)

	// Output:
	// <table>
	//   <caption>Table Title</caption>
	//   <tr><th>Status</th><th>Company</th><th>Company ID</th></tr>
	//   <tr><td></td><td>Company &lt;1&gt;</td><td>1</td></tr>
	//   <tr><td><pre>{"ok":true}</pre></td><td>Company 2</td><td>2</td></tr>
	// </table>
}

func TestWriter_WriteString(t *testing.T) {
	tests := []struct {
		name    string
		writer  *Writer
		view    regrid.View
		options []regrid.Option
		want    string
	}{
		{
			name:   "classes and empty value",
			writer: NewWriter().WithTableClass("grid").WithEmptyValue("-").WithRowClass(func(row int) string { return []string{"odd", ""}[row%2] }),
			view:   companyView(),
			want: "<table class='grid'>\n" +
				"  <caption>Table Title</caption>\n" +
				"  <tr class='odd'><td>-</td><td>Company &lt;1&gt;</td><td>1</td></tr>\n" +
				"  <tr><td>{&#34;ok&#34;: true}</td><td>Company 2</td><td>2</td></tr>\n" +
				"</table>\n",
		},
		{
			name:   "raw and code columns",
			writer: NewWriter().WithRawColumn(1).WithColumnFormatter(2, CodeCellFormatter),
			view:   regrid.RectView{Source: companyView(), Rect: regrid.NewCellRect(0, 0, 1, 2)},
			want: "<table>\n" +
				"  <caption>Table Title</caption>\n" +
				"  <tr><td>Company <1></td><td><code>1</code></td></tr>\n" +
				"</table>\n",
		},
		{
			name:    "removed formatter",
			writer:  NewWriter().WithRawColumn(1).WithColumnFormatter(1, nil),
			view:    regrid.RectView{Source: companyView(), Rect: regrid.NewCellRect(0, 0, 1, 1)},
			options: []regrid.Option{regrid.OptionAddHeaderRow},
			want: "<table>\n" +
				"  <caption>Table Title</caption>\n" +
				"  <tr><th>Company</th></tr>\n" +
				"  <tr><td>Company &lt;1&gt;</td></tr>\n" +
				"</table>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.writer.WriteString(context.Background(), tt.view, tt.options...)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_FormatterError(t *testing.T) {
	_, err := NewWriter().
		WithColumnFormatter(1, JSONCellFormatter("")).
		WriteString(context.Background(), companyView())
	require.ErrorContains(t, err, `column "Company"`)
}

func TestWriter_Immutable(t *testing.T) {
	base := NewWriter()
	mod := base.WithTableClass("grid").WithRawColumn(0)
	require.Empty(t, base.TableClass())
	require.Empty(t, base.columnFormatters)
	require.Equal(t, "grid", mod.TableClass())
	require.Len(t, mod.columnFormatters, 1)
}

func TestWriter_WriteFile(t *testing.T) {
	file := fs.File(filepath.Join(t.TempDir(), "companies.html"))
	err := NewWriter().WriteFile(context.Background(), file, companyView())
	require.NoError(t, err)
	data, err := file.ReadAll()
	require.NoError(t, err)
	require.Contains(t, string(data), "<td>Company 2</td>")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewWriter().WriteFile(ctx, file, companyView()), context.Canceled)
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name      string
		formatter CellFormatter
		text      string
		want      string
	}{
		{name: "pre", formatter: PreCellFormatter, text: "a<b", want: "<pre>a&lt;b</pre>"},
		{name: "anchor", formatter: AnchorCellFormatter, text: "x", want: "<a id='x'>x</a>"},
		{name: "span", formatter: SpanClassCellFormatter("warn"), text: "&", want: "<span class='warn'>&amp;</span>"},
		{name: "json empty", formatter: JSONCellFormatter("  "), text: "", want: ""},
		{name: "json indent", formatter: JSONCellFormatter(" "), text: `{"a":1}`, want: "<pre>{\n \"a\": 1\n}</pre>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.formatter.FormatCell(tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}
