package main

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/csv"
	"github.com/domonda/go-regrid/gridview"
	"github.com/domonda/go-regrid/htmltable"
	"github.com/domonda/go-regrid/sqltable"
)

type Employee struct {
	Name    string    `col:"Name"`
	Team    string    `col:"Team"`
	Salary  float64   `col:"Salary"`
	Started time.Time `col:"Started"`
	Remote  bool      `col:"Remote"`
}

var employees = regrid.Items[Employee]{
	{Name: "Ada", Team: "Platform", Salary: 98000, Started: date(2019, 3, 1), Remote: true},
	{Name: "Grace", Team: "Compiler", Salary: 105000, Started: date(2016, 7, 15)},
	{Name: "Linus", Team: "Platform", Salary: 91000, Started: date(2021, 1, 4), Remote: true},
	{Name: "Barbara", Team: "Research", Salary: 112000, Started: date(2014, 9, 22)},
	{Name: "Ken", Team: "Compiler", Salary: 99500, Started: date(2018, 11, 5)},
	{Name: "Margaret", Team: "Research", Salary: 118000, Started: date(2012, 5, 30), Remote: true},
	{Name: "Dennis", Team: "Platform", Salary: 87000, Started: date(2022, 2, 14)},
	{Name: "Frances", Team: "Compiler", Salary: 101000, Started: date(2017, 6, 8)},
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var (
	themeFile  string
	exportFile string
	charset    string
	logFile    string
	reflected  bool
	selection  string
	sqliteFile string
	query      string
)

var rootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]) + " [CSV_FILE]",
	Short: "Interactive table demo",
	Long: "Browse, sort, select, edit and export a table in the terminal.\n" +
		"Shows a table of employees, the rows of CSV_FILE\n" +
		"with its first row used as column headers\n" +
		"or the result of --query on a --sqlite database.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logFile != "" {
			config := zap.NewDevelopmentConfig()
			config.OutputPaths = []string{logFile}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("can't create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck
			regrid.Logger = logger
		}

		switch {
		case sqliteFile != "":
			return runQuery(cmd)
		case len(args) == 0:
			return run(cmd, gridview.New("Employees", employees, columns()))
		}

		file := fs.File(args[0])
		rows, format, err := csv.ReadFile(cmd.Context(), file, nil)
		if err != nil {
			return fmt.Errorf("can't read %s: %w", file.Name(), err)
		}
		rows = csv.RemoveEmptyRows(rows)
		if len(rows) == 0 {
			return fmt.Errorf("%s has no rows", file.Name())
		}
		regrid.Logger.Info("read CSV",
			zap.String("file", file.Name()),
			zap.String("encoding", format.Encoding),
			zap.String("separator", format.Separator),
			zap.Int("rows", len(rows)),
		)
		cols := regrid.NewProvidedColumns(regrid.StringRowColumns(rows[0])...)
		return run(cmd, gridview.New(file.Name(), rows[1:], cols))
	},
}

func init() {
	flags := rootCommand.Flags()
	flags.StringVar(&themeFile, "theme", "", "TOML file with styles")
	flags.StringVar(&exportFile, "export", "", "write the table to this CSV or .html file instead of showing it")
	flags.StringVar(&selection, "select", "", "export only this cell range given as ROW:COL-ROW:COL")
	flags.StringVar(&charset, "charset", "UTF-8", "character set of exported and copied CSV")
	flags.StringVar(&logFile, "log", "", "write debug log to this file")
	flags.BoolVar(&reflected, "reflect", false, "derive the employee columns from the struct fields")
	flags.StringVar(&sqliteFile, "sqlite", "", "SQLite database file to query")
	flags.StringVar(&query, "query", "", "SQL query for --sqlite")
	rootCommand.MarkFlagsRequiredTogether("sqlite", "query")
}

func runQuery(cmd *cobra.Command) error {
	db, err := sql.Open("sqlite", sqliteFile)
	if err != nil {
		return err
	}
	defer db.Close()

	formatter := new(regrid.TypeFormatters).
		WithType(reflect.TypeFor[time.Time](), regrid.LayoutFormatter(time.DateTime))
	columns, rows, err := sqltable.Query(cmd.Context(), db, formatter, query)
	if err != nil {
		return err
	}
	cols := regrid.NewProvidedColumns(regrid.StringRowColumns(columns)...)
	return run(cmd, gridview.New(path.Base(sqliteFile), rows, cols))
}

func run[T any](cmd *cobra.Command, model *gridview.Model[T]) error {
	if themeFile != "" {
		theme, err := gridview.LoadTheme(themeFile)
		if err != nil {
			return err
		}
		model.SetEnv(theme.Env(regrid.DefaultEnv()))
	}

	writer, err := csv.NewWriter().WithCharset(charset)
	if err != nil {
		return err
	}
	model.SetCSVWriter(writer)

	if exportFile != "" {
		options := []regrid.Option{regrid.OptionAddHeaderRow}
		if selection != "" {
			sel, err := parseCellRange(selection, model.Demap())
			if err != nil {
				return err
			}
			model.SetSelection(sel)
			options = append(options, regrid.OptionSelectionOnly)
		}
		view, ok := model.ExportView(options...)
		if !ok {
			return fmt.Errorf("selection %q is outside of the table", selection)
		}
		file := fs.File(exportFile)
		if strings.EqualFold(path.Ext(exportFile), ".html") {
			return htmltable.NewWriter().WriteFile(cmd.Context(), file, view, options...)
		}
		return writer.WriteFile(cmd.Context(), file, view, options...)
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	if copied := model.Copied(); copied != "" {
		fmt.Print(copied)
	}
	return nil
}

// parseCellRange parses visual cell coordinates like "0:1-3:2"
// into a selection from the first to the second cell.
func parseCellRange(str string, demap regrid.CellDemap) (regrid.TableSelection, error) {
	var focusRow, focusCol, extentRow, extentCol regrid.VisIdx
	_, err := fmt.Sscanf(str, "%d:%d-%d:%d", &focusRow, &focusCol, &extentRow, &extentCol)
	if err != nil {
		return nil, fmt.Errorf("invalid cell range %q: %w", str, err)
	}
	cell := func(row, col regrid.VisIdx) (regrid.SingleCell, error) {
		vis := regrid.NewAxisPair(row, col)
		log, ok := regrid.LogCell(demap, vis)
		if !ok {
			return regrid.SingleCell{}, fmt.Errorf("cell %s is outside of the table", vis)
		}
		return regrid.NewSingleCell(vis, log), nil
	}
	focus, err := cell(focusRow, focusCol)
	if err != nil {
		return nil, err
	}
	extent, err := cell(extentRow, extentCol)
	if err != nil {
		return nil, err
	}
	return regrid.NewCellRange(focus, extent), nil
}

func columns() *regrid.ProvidedColumns[Employee] {
	if reflected {
		return regrid.NewProvidedColumns(regrid.StructColumns[Employee](&regrid.DefaultStructFieldNaming, regrid.SprintFormatter{})...)
	}
	salary := regrid.NewValueCell[float64]().Formatter(regrid.FormatterFunc(func(v reflect.Value) (string, error) {
		return fmt.Sprintf("%.2f", v.Float()), nil
	}))
	return regrid.NewProvidedColumns(
		regrid.NewColumn[Employee]("Name", regrid.Lens(regrid.NewTextCell(), regrid.StructField[Employee, string]("Name"))).
			FixSort(),
		regrid.NewColumn[Employee]("Team", regrid.Lens(regrid.NewTextCell(), regrid.StructField[Employee, string]("Team"))).
			Sort(regrid.Ascending).
			SortOrder(0),
		regrid.NewColumn[Employee]("Salary", regrid.Lens[Employee, float64](salary, regrid.StructField[Employee, float64]("Salary"))).
			Sort(regrid.Descending).
			SortOrder(1),
		regrid.NewColumn[Employee]("Years", regrid.OnResultOf(regrid.NewValueCell[int](), yearsEmployed)).
			WithWidth(regrid.ColumnWidth{Initial: 6, Min: 3}),
	)
}

func yearsEmployed(e Employee) int {
	return int(time.Since(e.Started).Hours() / 24 / 365)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
