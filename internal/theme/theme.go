// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. A dotted name such as "action.pick" falls back
// to its base ("action"), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Clone returns a copy whose style map can be modified independently.
func (t *Theme) Clone() *Theme {
	styles := make(map[string]tcell.Style, len(t.Styles))
	for name, style := range t.Styles {
		styles[name] = style
	}
	return &Theme{Name: t.Name, IsDark: t.IsDark, Styles: styles}
}

// palette holds the handful of colors a built-in theme is derived from.
type palette struct {
	background tcell.Color
	foreground tcell.Color
	muted      tcell.Color
	red        tcell.Color
	orange     tcell.Color
	yellow     tcell.Color
	green      tcell.Color
	cyan       tcell.Color
	blue       tcell.Color
	magenta    tcell.Color
}

func newBuiltin(name string, isDark bool, p palette) Theme {
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.foreground)
	bar := tcell.StyleDefault.Background(p.background).Foreground(p.foreground)

	return Theme{
		Name:   name,
		IsDark: isDark,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			"Default":          baseStyle,
			"Selected":         baseStyle.Reverse(true),
			"Cursor":           baseStyle.Bold(true).Underline(true),
			"Title":            bar.Bold(true),
			"StatusBar":        bar,
			"StatusBarMessage": bar.Bold(true),
			"Hint":             baseStyle.Foreground(p.muted),
			"Error":            baseStyle.Foreground(p.red).Bold(true),
			"Key":              baseStyle.Foreground(p.blue).Bold(true),
			"Comment":          baseStyle.Foreground(p.muted).Italic(true),

			// --- Instruction kinds ---
			"action":        baseStyle,
			"action.pick":   baseStyle.Foreground(p.green),
			"action.reword": baseStyle.Foreground(p.yellow),
			"action.edit":   baseStyle.Foreground(p.blue),
			"action.squash": baseStyle.Foreground(p.magenta),
			"action.fixup":  baseStyle.Foreground(p.magenta),
			"action.drop":   baseStyle.Foreground(p.red),
			"action.exec":   baseStyle.Foreground(p.foreground),
			"action.break":  baseStyle.Foreground(p.foreground).Bold(true),
			"action.label":  baseStyle.Foreground(p.cyan),
			"action.reset":  baseStyle.Foreground(p.cyan),
			"action.merge":  baseStyle.Foreground(p.cyan),
			"action.noop":   baseStyle.Foreground(p.muted),
			"reference":     baseStyle.Foreground(p.orange),

			// --- Commit details ---
			"commit.field": baseStyle.Foreground(p.blue),
			"diff.header":  baseStyle.Bold(true),
			"diff.hunk":    baseStyle.Foreground(p.cyan),
			"diff.add":     baseStyle.Foreground(p.green),
			"diff.remove":  baseStyle.Foreground(p.red),
		},
	}
}

// Dark is the built-in theme for dark terminals.
var Dark = newBuiltin("dark", true, palette{
	background: tcell.NewHexColor(0x2a2f38),
	foreground: tcell.NewHexColor(0xc5cdd9),
	muted:      tcell.NewHexColor(0x5c6370),
	red:        tcell.NewHexColor(0xe06c75),
	orange:     tcell.NewHexColor(0xd19a66),
	yellow:     tcell.NewHexColor(0xe5c07b),
	green:      tcell.NewHexColor(0x98c379),
	cyan:       tcell.NewHexColor(0x56b6c2),
	blue:       tcell.NewHexColor(0x61afef),
	magenta:    tcell.NewHexColor(0xc678dd),
})

// Light is the built-in theme for light terminals.
var Light = newBuiltin("light", false, palette{
	background: tcell.NewHexColor(0xe5e5e6),
	foreground: tcell.NewHexColor(0x383a42),
	muted:      tcell.NewHexColor(0xa0a1a7),
	red:        tcell.NewHexColor(0xe45649),
	orange:     tcell.NewHexColor(0x986801),
	yellow:     tcell.NewHexColor(0xc18401),
	green:      tcell.NewHexColor(0x50a14f),
	cyan:       tcell.NewHexColor(0x0184bc),
	blue:       tcell.NewHexColor(0x4078f2),
	magenta:    tcell.NewHexColor(0xa626a4),
})
