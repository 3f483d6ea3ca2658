package regrid

import (
	"maps"

	"github.com/charmbracelet/lipgloss"
)

// PaintCtx is the drawing surface of one cell or region.
// Coordinates are terminal cells relative to the region.
type PaintCtx interface {
	// Size returns the size of the region in terminal cells.
	Size() (width, height int)
	// SetString draws s starting at x, y clipped to the region.
	SetString(x, y int, s string, style lipgloss.Style)
	// Region returns a sub region clipped to this region.
	Region(x, y, width, height int) PaintCtx
}

// StyleKey names a style in an Env.
type StyleKey string

const (
	StyleText      StyleKey = "text"
	StyleHeader    StyleKey = "header"
	StyleSelection StyleKey = "selection"
	StyleFocus     StyleKey = "focus"
	StyleWarning   StyleKey = "warning"
	StyleStatus    StyleKey = "status"
)

// Env is the resolved style environment passed to renderers.
// A nil *Env is valid and resolves no styles.
type Env struct {
	styles map[StyleKey]lipgloss.Style
}

func NewEnv(styles map[StyleKey]lipgloss.Style) *Env {
	return &Env{styles: maps.Clone(styles)}
}

// Style returns the style for key.
func (env *Env) Style(key StyleKey) (lipgloss.Style, bool) {
	if env == nil {
		return lipgloss.Style{}, false
	}
	style, ok := env.styles[key]
	return style, ok
}

// StyleOr returns the style for key or fallback.
func (env *Env) StyleOr(key StyleKey, fallback lipgloss.Style) lipgloss.Style {
	if style, ok := env.Style(key); ok {
		return style
	}
	return fallback
}

// With returns a copy of env with style set for key.
func (env *Env) With(key StyleKey, style lipgloss.Style) *Env {
	clone := &Env{styles: make(map[StyleKey]lipgloss.Style)}
	if env != nil {
		maps.Copy(clone.styles, env.styles)
	}
	clone.styles[key] = style
	return clone
}

// Keys returns the defined style keys in unspecified order.
func (env *Env) Keys() []StyleKey {
	if env == nil {
		return nil
	}
	keys := make([]StyleKey, 0, len(env.styles))
	for key := range env.styles {
		keys = append(keys, key)
	}
	return keys
}

// KeyOrStyle is either a literal style or a key resolved from an Env.
type KeyOrStyle struct {
	key   StyleKey
	style *lipgloss.Style
}

func StyleFromKey(key StyleKey) KeyOrStyle {
	return KeyOrStyle{key: key}
}

func StyleValue(style lipgloss.Style) KeyOrStyle {
	return KeyOrStyle{style: &style}
}

// Resolve returns the literal style or looks up the key in env.
func (k KeyOrStyle) Resolve(env *Env) (lipgloss.Style, bool) {
	if k.style != nil {
		return *k.style, true
	}
	return env.Style(k.key)
}

func (k KeyOrStyle) String() string {
	if k.style != nil {
		return "<style>"
	}
	return string(k.key)
}
