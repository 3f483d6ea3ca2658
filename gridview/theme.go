package gridview

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"github.com/domonda/go-regrid"
)

// Theme configures the styles of a Model.
// Styles are keyed by regrid.StyleKey names like "text" or "selection".
//
//	[styles.header]
//	foreground = "12"
//	bold = true
type Theme struct {
	Styles map[string]StyleConfig `toml:"styles"`
}

// StyleConfig is the configuration of one style.
// Colors are lipgloss colors like "12" or "#ff8800".
type StyleConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Bold       bool   `toml:"bold"`
	Italic     bool   `toml:"italic"`
	Underline  bool   `toml:"underline"`
	Faint      bool   `toml:"faint"`
}

func (c StyleConfig) Style() lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(c.Bold).
		Italic(c.Italic).
		Underline(c.Underline).
		Faint(c.Faint)
	if c.Foreground != "" {
		style = style.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		style = style.Background(lipgloss.Color(c.Background))
	}
	return style
}

// ParseTheme parses a theme from TOML.
func ParseTheme(data string) (*Theme, error) {
	var theme Theme
	meta, err := toml.Decode(data, &theme)
	if err != nil {
		return nil, fmt.Errorf("can't parse theme: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown theme keys: %v", undecoded)
	}
	return &theme, nil
}

// LoadTheme reads a theme from a TOML file.
func LoadTheme(path string) (*Theme, error) {
	var theme Theme
	meta, err := toml.DecodeFile(path, &theme)
	if err != nil {
		return nil, fmt.Errorf("can't load theme from %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in theme %s: %v", path, undecoded)
	}
	return &theme, nil
}

// Env returns base with the styles of the theme.
// A nil theme returns base unchanged.
func (t *Theme) Env(base *regrid.Env) *regrid.Env {
	if t == nil {
		return base
	}
	env := base
	for key, cfg := range t.Styles {
		env = env.With(regrid.StyleKey(key), cfg.Style())
	}
	return env
}
