// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tide-rebase/internal/view"
)

const tabWidth = 4

// Render draws data: title on the first row, pinned leading lines, the scrolled body,
// and the status bar on the last row.
func (t *TUI) Render(data *view.Data) {
	width, height := t.screen.Size()
	defaultStyle := t.theme.GetStyle("Default")
	t.screen.Fill(' ', defaultStyle)
	if width <= 0 || height <= 0 {
		t.screen.Show()
		return
	}

	titleStyle := t.theme.GetStyle("Title")
	fillRow(t.screen, 0, width, titleStyle)
	t.drawSegments(0, 0, width, []view.Segment{{Text: " " + data.Title}}, func(tcell.Style) tcell.Style { return titleStyle })

	row := 1
	for _, line := range data.Leading {
		if row >= height-1 {
			break
		}
		t.drawLine(row, width, 0, line)
		row++
	}

	rows := data.BodyRows(view.Context{Width: width, Height: height})
	top := t.bodyTop(data, rows)
	for i := 0; i < rows && top+i < len(data.Body); i++ {
		t.drawLine(row+i, width, data.Left, data.Body[top+i])
	}

	t.statusBar.SetText(data.Hint)
	t.statusBar.SetPosition(data.Focus, len(data.Body))
	t.statusBar.Draw(t.screen, width, height)

	t.drawCursor(data, row, top, rows, width)
	t.screen.Show()
}

// bodyTop returns the first body line to draw.
func (t *TUI) bodyTop(data *view.Data, rows int) int {
	if data.Focus >= 0 {
		return t.focus.Follow(data.Focus, rows, len(data.Body))
	}
	top := data.Top
	if maxTop := len(data.Body) - rows; top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// drawCursor shows the terminal cursor at data.TextCursor, or hides it when that is
// unset or scrolled out of view.
func (t *TUI) drawCursor(data *view.Data, bodyRow, top, rows, width int) {
	if data.TextCursor == nil {
		t.screen.HideCursor()
		return
	}
	x := data.TextCursor.Col - data.Left
	y := data.TextCursor.Row - top
	if x < 0 || x >= width || y < 0 || y >= rows {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, bodyRow+y)
}

// drawLine draws one view line, highlighting the whole row when it is selected or
// under the cursor.
func (t *TUI) drawLine(y, width, left int, line view.Line) {
	var highlight []tcell.Style
	if line.Selected {
		highlight = append(highlight, t.theme.GetStyle("Selected"))
	}
	if line.Cursor {
		highlight = append(highlight, t.theme.GetStyle("Cursor"))
	}
	style := func(s tcell.Style) tcell.Style {
		for _, h := range highlight {
			s = overlay(s, h)
		}
		return s
	}
	if len(highlight) > 0 {
		fillRow(t.screen, y, width, style(t.theme.GetStyle("Default")))
	}
	t.drawSegments(y, left, width, line.Segments, style)
}

// drawSegments draws styled text on row y, skipping the first left cells. Clusters that
// straddle either edge are not drawn.
func (t *TUI) drawSegments(y, left, width int, segments []view.Segment, style func(tcell.Style) tcell.Style) {
	currentVisualX := 0
	for _, seg := range segments {
		segStyle := style(t.theme.GetStyle(seg.Style))
		gr := uniseg.NewGraphemes(seg.Text)
		for gr.Next() {
			clusterRunes := gr.Runes()
			clusterWidth := gr.Width()
			if clusterRunes[0] == '\t' {
				clusterWidth = tabWidth - currentVisualX%tabWidth
			}
			screenX := currentVisualX - left

			if screenX >= 0 && screenX+clusterWidth <= width {
				if clusterRunes[0] == '\t' {
					for i := 0; i < clusterWidth; i++ {
						t.screen.SetContent(screenX+i, y, ' ', nil, segStyle)
					}
				} else {
					t.screen.SetContent(screenX, y, clusterRunes[0], clusterRunes[1:], segStyle)
					// Fill remaining cells for wide characters
					for cw := 1; cw < clusterWidth; cw++ {
						t.screen.SetContent(screenX+cw, y, ' ', nil, segStyle)
					}
				}
			}

			currentVisualX += clusterWidth
			if currentVisualX-left >= width {
				return
			}
		}
	}
}

func fillRow(screen tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// overlay applies the background and attributes of over to base, keeping base's
// foreground so instruction colors stay visible in a highlighted row.
func overlay(base, over tcell.Style) tcell.Style {
	_, _, baseAttrs := base.Decompose()
	_, bg, attrs := over.Decompose()
	if bg != tcell.ColorDefault && bg != tcell.ColorReset {
		base = base.Background(bg)
	}
	return base.Attributes(baseAttrs | attrs)
}
