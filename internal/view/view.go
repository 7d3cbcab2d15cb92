// Package view holds the layout-agnostic description a module publishes for rendering.
// Styles are theme style names; colors, clipping and scrolling belong to the renderer.
package view

// Context describes the area a view is built for.
type Context struct {
	Width  int
	Height int
}

// Segment is a run of text drawn in one style.
type Segment struct {
	Text  string
	Style string
}

// Line is one row of segments.
type Line struct {
	Segments []Segment
	Selected bool
	Cursor   bool
}

// NewLine builds a line from segments.
func NewLine(segments ...Segment) Line {
	return Line{Segments: segments}
}

// Text returns a line with a single segment.
func Text(text, style string) Line {
	return Line{Segments: []Segment{{Text: text, Style: style}}}
}

// String joins the text of every segment.
func (l Line) String() string {
	n := 0
	for _, s := range l.Segments {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Segments {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Position is a terminal cursor location relative to the body.
type Position struct {
	Row int
	Col int
}

// Data is everything a module wants shown.
type Data struct {
	Title string
	// Leading lines are pinned under the title and never scroll.
	Leading []Line
	Body    []Line
	// Focus is the body line the renderer keeps visible, -1 for none.
	Focus int
	// Top is the first body line to show when there is no focus.
	Top int
	// Left is the horizontal scroll offset in cells.
	Left int
	// Hint is shown in the status bar.
	Hint string
	// TextCursor places the terminal cursor, nil hides it.
	TextCursor *Position
}

// New creates empty view data.
func New(title string) *Data {
	return &Data{Title: title, Focus: -1}
}

// AddLeading appends pinned lines.
func (d *Data) AddLeading(lines ...Line) *Data {
	d.Leading = append(d.Leading, lines...)
	return d
}

// AddBody appends body lines.
func (d *Data) AddBody(lines ...Line) *Data {
	d.Body = append(d.Body, lines...)
	return d
}

// Chrome is the number of rows used by the title and the status bar.
const Chrome = 2

// BodyRows returns how many body rows fit in ctx.
func (d *Data) BodyRows(ctx Context) int {
	rows := ctx.Height - Chrome - len(d.Leading)
	if rows < 0 {
		return 0
	}
	return rows
}

// Viewport keeps a focus line visible across renders.
type Viewport struct {
	top int
}

// Follow scrolls the minimum needed to show focus in rows lines and returns the
// first visible line.
func (v *Viewport) Follow(focus, rows, total int) int {
	if rows <= 0 {
		v.top = 0
		return 0
	}
	if focus < v.top {
		v.top = focus
	}
	if focus >= v.top+rows {
		v.top = focus - rows + 1
	}
	if maxTop := total - rows; v.top > maxTop {
		v.top = maxTop
	}
	if v.top < 0 {
		v.top = 0
	}
	return v.top
}

// Top returns the first visible line.
func (v *Viewport) Top() int { return v.top }

// Scroll moves the viewport by delta, clamped to total lines.
func (v *Viewport) Scroll(delta, rows, total int) {
	v.top += delta
	if maxTop := total - rows; v.top > maxTop {
		v.top = maxTop
	}
	if v.top < 0 {
		v.top = 0
	}
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() { v.top = 0 }
