// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation

	"github.com/bethropolis/tide-rebase/internal/theme"
)

// Config defines the appearance of the status bar.
type Config struct {
	StyleDefault  tcell.Style // Hint text and background
	StylePosition tcell.Style // Right-aligned "line/total" indicator
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	return Config{
		StyleDefault:  th.GetStyle("StatusBar"),
		StylePosition: th.GetStyle("StatusBarMessage"),
	}
}

// StatusBar is the last screen row: the active module's hint on the left and the
// cursor position on the right.
type StatusBar struct {
	config   Config
	text     string
	position string
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetText replaces the hint.
func (sb *StatusBar) SetText(text string) {
	sb.text = text
}

// SetPosition shows "current/total" with current counted from zero. A negative current
// clears the indicator.
func (sb *StatusBar) SetPosition(current, total int) {
	if current < 0 || total <= 0 {
		sb.position = ""
		return
	}
	sb.position = fmt.Sprintf(" %d/%d ", current+1, total)
}

// Draw renders the status bar onto the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, sb.config.StyleDefault)
	}

	textWidth := width
	if sb.position != "" {
		posWidth := uniseg.StringWidth(sb.position)
		// The hint wins when both do not fit.
		if posWidth+uniseg.StringWidth(sb.text)+1 <= width {
			drawClusters(screen, width-posWidth, y, width, sb.position, sb.config.StylePosition)
			textWidth = width - posWidth
		}
	}
	drawClusters(screen, 0, y, textWidth, sb.text, sb.config.StyleDefault)
}

// drawClusters draws text from column x, stopping before limit.
func drawClusters(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > limit {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
