package regrid

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	// Logger is used for warnings about degraded rendering
	// and debug output about ignored input.
	// It discards everything by default.
	Logger = zap.NewNop()

	// DefaultColumnWidth is used by NewColumn.
	DefaultColumnWidth = ColumnWidth{Initial: 14, Min: 3}

	// DefaultParser is used by editors of ValueCell and StructColumns.
	DefaultParser Parser = NewStringParser()

	// DefaultStructFieldNaming uses "col" as title tag,
	// ignores "-" titled fields,
	// and uses SpacePascalCase for untagged fields.
	DefaultStructFieldNaming = StructFieldNaming{
		Tag:      "col",
		Ignore:   "-",
		Untagged: SpacePascalCase,
	}

	defaultWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// DefaultEnv returns an Env with styles for all predefined StyleKeys.
func DefaultEnv() *Env {
	return NewEnv(map[StyleKey]lipgloss.Style{
		StyleText:      lipgloss.NewStyle(),
		StyleHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		StyleSelection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		StyleFocus:     lipgloss.NewStyle().Background(lipgloss.Color("24")),
		StyleWarning:   defaultWarningStyle,
		StyleStatus:    lipgloss.NewStyle().Faint(true),
	})
}
