package todo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/logger"
)

var (
	// ErrRead wraps every failure to load the todo file.
	ErrRead = errors.New("unable to read todo file")
	// ErrWrite wraps every failure to write the todo file.
	ErrWrite = errors.New("unable to write todo file")
)

// List is the editable todo list. Indices are zero based and selection ranges are
// inclusive on both ends.
type List struct {
	path            string
	commentChar     string
	lines           []Line
	trailing        []string // pass-through lines after the last instruction
	eol             string
	trailingNewline bool
	original        string // file content as Load found it
	written         bool
	cursor          int
	anchor          int // -1 when visual mode is off
	history         *history
}

// New creates an empty list bound to path.
func New(path, commentChar string, undoLimit int) *List {
	if commentChar == "" {
		commentChar = "#"
	}
	return &List{
		path:        path,
		commentChar: commentChar,
		anchor:      -1,
		history:     newHistory(undoLimit),
	}
}

// Load creates a list and reads path into it.
func Load(path, commentChar string, undoLimit int) (*List, error) {
	l := New(path, commentChar, undoLimit)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads the todo file, replacing the current content and clearing history.
func (l *List) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	if err := l.parse(string(data)); err != nil {
		return err
	}
	l.original = string(data)
	l.written = false
	l.history = newHistory(l.history.limit)
	logger.Debugf("Loaded %d instructions and %d pass-through lines from %s", len(l.lines), l.passthroughCount(), l.path)
	return nil
}

// Reload re-reads the todo file as a single undoable change.
func (l *List) Reload() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	next := New(l.path, l.commentChar, 0)
	if err := next.parse(string(data)); err != nil {
		return err
	}
	l.mutate(func() bool {
		l.lines = next.lines
		l.trailing = next.trailing
		l.eol = next.eol
		l.trailingNewline = next.trailingNewline
		l.anchor = -1
		l.cursor = clamp(l.cursor, len(l.lines))
		return true
	})
	return nil
}

func (l *List) parse(data string) error {
	l.lines = l.lines[:0]
	l.trailing = nil
	l.eol = ""
	l.cursor = 0
	l.anchor = -1
	l.trailingNewline = strings.HasSuffix(data, "\n")
	if data == "" {
		return nil
	}
	body := strings.TrimSuffix(data, "\n")
	if first, _, _ := strings.Cut(body, "\n"); strings.HasSuffix(first, "\r") {
		l.eol = "\r"
	}
	// Comments and blank lines belong to the instruction that follows them.
	var pending []string
	for n, text := range strings.Split(body, "\n") {
		if l.isPassthrough(text) {
			pending = append(pending, text)
			continue
		}
		line, err := ParseLine(text)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrRead, n+1, err)
		}
		line.leading = pending
		pending = nil
		l.lines = append(l.lines, line)
	}
	l.trailing = pending
	return nil
}

func (l *List) passthroughCount() int {
	n := len(l.trailing)
	for _, line := range l.lines {
		n += len(line.leading)
	}
	return n
}

func (l *List) isPassthrough(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || strings.HasPrefix(t, l.commentChar)
}

// Text serializes the list in file form.
func (l *List) Text() string {
	out := make([]string, 0, len(l.lines)+l.passthroughCount())
	for _, line := range l.lines {
		out = append(out, line.leading...)
		out = append(out, line.String())
	}
	out = append(out, l.trailing...)
	text := strings.Join(out, "\n")
	if l.trailingNewline {
		text += "\n"
	}
	return text
}

// WriteTo writes the serialized list to w.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.Text())
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return int64(n), nil
}

// Write saves the list back to its source path.
func (l *List) Write() error {
	if err := os.WriteFile(l.path, []byte(l.Text()), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	l.written = true
	logger.Infof("Wrote %d instructions to %s", len(l.lines), l.path)
	return nil
}

// Discard puts the file back the way Load found it, if anything was written since.
// The in-memory list is left alone.
func (l *List) Discard() error {
	if !l.written {
		return nil
	}
	if err := os.WriteFile(l.path, []byte(l.original), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	l.written = false
	logger.Infof("Restored %s to its original content", l.path)
	return nil
}

// Path returns the todo file location.
func (l *List) Path() string { return l.path }

// CommentChar returns the comment marker used for parsing.
func (l *List) CommentChar() string { return l.commentChar }

// IsNoop reports whether the list holds a single noop instruction.
func (l *List) IsNoop() bool {
	return len(l.lines) == 1 && l.lines[0].action == ActionNoop
}

// IsEmpty reports whether the list has no instructions.
func (l *List) IsEmpty() bool { return len(l.lines) == 0 }

// Len returns the number of instructions.
func (l *List) Len() int { return len(l.lines) }

// Line returns the instruction at i.
func (l *List) Line(i int) (Line, bool) {
	if i < 0 || i >= len(l.lines) {
		return Line{}, false
	}
	return l.lines[i], true
}

// Lines returns a copy of all instructions.
func (l *List) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Cursor returns the selected line index.
func (l *List) Cursor() int { return l.cursor }

// CursorLine returns the line under the cursor.
func (l *List) CursorLine() (Line, bool) { return l.Line(l.cursor) }

// IsVisualMode reports whether a selection anchor is set.
func (l *List) IsVisualMode() bool { return l.anchor >= 0 }

// SelectionRange returns the inclusive range operations act on.
func (l *List) SelectionRange() (int, int) {
	if l.anchor < 0 {
		return l.cursor, l.cursor
	}
	return min(l.anchor, l.cursor), max(l.anchor, l.cursor)
}

// ToggleVisualMode sets or clears the selection anchor. It is not recorded in history.
func (l *List) ToggleVisualMode() {
	if l.anchor >= 0 {
		l.anchor = -1
	} else if len(l.lines) > 0 {
		l.anchor = l.cursor
	}
	l.syncSelection()
}

// MoveCursorUp moves the cursor n lines up, stopping at the first line.
func (l *List) MoveCursorUp(n int) { l.SetCursor(l.cursor - n) }

// MoveCursorDown moves the cursor n lines down, stopping at the last line.
func (l *List) MoveCursorDown(n int) { l.SetCursor(l.cursor + n) }

// MoveCursorHome moves to the first line.
func (l *List) MoveCursorHome() { l.SetCursor(0) }

// MoveCursorEnd moves to the last line.
func (l *List) MoveCursorEnd() { l.SetCursor(len(l.lines) - 1) }

// SetCursor moves the cursor to i, clamped to the list.
func (l *List) SetCursor(i int) {
	l.cursor = clamp(i, len(l.lines))
	l.syncSelection()
}

// SwapRangeUp moves the selected range one line up.
func (l *List) SwapRangeUp() bool {
	start, end := l.SelectionRange()
	if len(l.lines) == 0 || start == 0 {
		return false
	}
	return l.mutate(func() bool {
		moved := l.lines[start-1]
		copy(l.lines[start-1:end], l.lines[start:end+1])
		l.lines[end] = moved
		l.shift(-1)
		return true
	})
}

// SwapRangeDown moves the selected range one line down.
func (l *List) SwapRangeDown() bool {
	start, end := l.SelectionRange()
	if len(l.lines) == 0 || end >= len(l.lines)-1 {
		return false
	}
	return l.mutate(func() bool {
		moved := l.lines[end+1]
		copy(l.lines[start+1:end+2], l.lines[start:end+1])
		l.lines[start] = moved
		l.shift(1)
		return true
	})
}

func (l *List) shift(delta int) {
	l.cursor += delta
	if l.anchor >= 0 {
		l.anchor += delta
	}
}

// SetRangeAction changes every line in the selection that may legally become a.
// Lines that cannot are skipped. All changes form one undo step.
func (l *List) SetRangeAction(a Action) bool {
	start, end := l.SelectionRange()
	if len(l.lines) == 0 {
		return false
	}
	return l.mutate(func() bool {
		changed := false
		for i := start; i <= end; i++ {
			if l.lines[i].setAction(a) {
				changed = true
			}
		}
		return changed
	})
}

// EditContent replaces the argument text of the exec, label, reset or merge line under
// the cursor.
func (l *List) EditContent(text string) bool {
	if len(l.lines) == 0 || !l.lines[l.cursor].action.IsEditable() || l.lines[l.cursor].EditableText() == text {
		return false
	}
	return l.mutate(func() bool {
		return l.lines[l.cursor].setEditableText(text)
	})
}

// InsertAfterCursor adds line below the cursor and moves the cursor onto it.
func (l *List) InsertAfterCursor(line Line) {
	line.mutated = true
	line.eol = l.eol
	line.leading = nil
	pos := 0
	if len(l.lines) > 0 {
		pos = l.cursor + 1
	}
	l.mutate(func() bool {
		l.lines = append(l.lines, Line{})
		copy(l.lines[pos+1:], l.lines[pos:])
		l.lines[pos] = line
		l.cursor = pos
		l.anchor = -1
		return true
	})
}

// RemoveRange deletes the selected lines and leaves visual mode.
func (l *List) RemoveRange() bool {
	if len(l.lines) == 0 {
		return false
	}
	start, end := l.SelectionRange()
	return l.removeLines(start, end)
}

// removeLines deletes lines start through end. Their comments move to the line that
// takes their place, or to the end of the file.
func (l *List) removeLines(start, end int) bool {
	return l.mutate(func() bool {
		var orphans []string
		for _, line := range l.lines[start : end+1] {
			orphans = append(orphans, line.leading...)
		}
		lines := make([]Line, 0, len(l.lines)-(end-start+1))
		lines = append(lines, l.lines[:start]...)
		lines = append(lines, l.lines[end+1:]...)
		if len(orphans) > 0 {
			if start < len(lines) {
				lines[start].leading = append(orphans, lines[start].leading...)
			} else {
				l.trailing = append(orphans, l.trailing...)
			}
		}
		l.lines = lines
		l.anchor = -1
		l.cursor = clamp(start, len(l.lines))
		return true
	})
}

// ToggleBreak removes the break under the cursor, or inserts one after it.
func (l *List) ToggleBreak() {
	if line, ok := l.CursorLine(); ok && line.action == ActionBreak {
		l.removeLines(l.cursor, l.cursor)
		return
	}
	l.InsertAfterCursor(NewLine(ActionBreak, "", ""))
}

// Undo restores the state before the last mutation.
func (l *List) Undo() bool {
	s, ok := l.history.stepBack(l.snapshot())
	if !ok {
		return false
	}
	l.restore(s)
	return true
}

// Redo reapplies the last undone mutation.
func (l *List) Redo() bool {
	s, ok := l.history.stepForward(l.snapshot())
	if !ok {
		return false
	}
	l.restore(s)
	return true
}

// UndoDepth returns the number of undo entries.
func (l *List) UndoDepth() int { return l.history.undoDepth() }

// RedoDepth returns the number of redo entries.
func (l *List) RedoDepth() int { return l.history.redoDepth() }

// mutate runs fn and records the prior state if fn reports a change.
// fn must leave the list untouched when it returns false.
func (l *List) mutate(fn func() bool) bool {
	var before snapshot
	if l.history.enabled() {
		before = l.snapshot()
	}
	if !fn() {
		return false
	}
	l.history.record(before)
	l.syncSelection()
	return true
}

func (l *List) snapshot() snapshot {
	lines := make([]Line, len(l.lines))
	copy(lines, l.lines)
	return snapshot{lines: lines, trailing: l.trailing, cursor: l.cursor, anchor: l.anchor}
}

func (l *List) restore(s snapshot) {
	l.lines = s.lines
	l.trailing = s.trailing
	l.cursor = clamp(s.cursor, len(l.lines))
	l.anchor = s.anchor
	if l.anchor >= len(l.lines) {
		l.anchor = len(l.lines) - 1
	}
	l.syncSelection()
}

func (l *List) syncSelection() {
	start, end := l.SelectionRange()
	visual := l.anchor >= 0
	for i := range l.lines {
		l.lines[i].selected = visual && i >= start && i <= end
	}
}

// clamp keeps i inside [0, n), or returns 0 for an empty list.
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
