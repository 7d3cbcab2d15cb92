package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLine is returned when a recognized keyword is missing a required argument.
var ErrInvalidLine = errors.New("invalid todo line")

// Line is one instruction of the todo list.
type Line struct {
	action    Action
	reference string
	option    string // fixup -C / -c
	content   string
	raw       string
	eol       string // "\r" for CRLF files
	leading   []string
	mutated   bool
	selected  bool
}

// NewLine builds a line that was not read from disk.
func NewLine(action Action, reference, content string) Line {
	return Line{action: action, reference: reference, content: content, mutated: true}
}

// NewEditableLine builds an exec, label, reset or merge line from its argument text.
func NewEditableLine(action Action, text string) Line {
	l := Line{action: action, mutated: true}
	l.setEditableText(text)
	return l
}

// ParseLine parses a single non-comment todo line.
func ParseLine(text string) (Line, error) {
	trimmed := strings.TrimRight(text, "\r")
	word, rest := splitWord(trimmed)
	action, err := ParseAction(word)
	if err != nil {
		return Line{}, err
	}
	l := Line{action: action, raw: text}
	if trimmed != text {
		l.eol = "\r"
	}

	switch {
	case action == ActionBreak || action == ActionNoop:
	case action.IsCommit():
		if action == ActionFixup && (strings.HasPrefix(rest, "-C ") || strings.HasPrefix(rest, "-c ")) {
			l.option = rest[:2]
			rest = strings.TrimLeft(rest[2:], " \t")
		}
		l.reference, l.content = splitWord(rest)
		if l.reference == "" {
			return Line{}, fmt.Errorf("%w: %s requires a commit", ErrInvalidLine, action)
		}
	case action == ActionLabel || action == ActionReset:
		l.reference, l.content = splitWord(rest)
		if l.reference == "" {
			return Line{}, fmt.Errorf("%w: %s requires a name", ErrInvalidLine, action)
		}
	default: // exec, merge
		l.content = rest
		if l.content == "" {
			return Line{}, fmt.Errorf("%w: %s requires an argument", ErrInvalidLine, action)
		}
	}
	return l, nil
}

// splitWord returns the first whitespace separated word and the remainder with leading
// whitespace removed.
func splitWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// Action returns the instruction kind.
func (l Line) Action() Action { return l.action }

// Reference returns the commit hash or label name, if any.
func (l Line) Reference() string { return l.reference }

// Option returns the fixup flag, if any.
func (l Line) Option() string { return l.option }

// Content returns the free text after the reference.
func (l Line) Content() string { return l.content }

// Selected reports whether the line is inside the visual selection.
func (l Line) Selected() bool { return l.selected }

// Modified reports whether the line differs from what was read from disk.
func (l Line) Modified() bool { return l.mutated }

// EditableText returns the text shown when editing an exec, label, reset or merge line.
func (l Line) EditableText() string {
	switch l.action {
	case ActionLabel, ActionReset:
		if l.content == "" {
			return l.reference
		}
		return l.reference + " " + l.content
	case ActionExec, ActionMerge:
		return l.content
	}
	return ""
}

// String returns the serialized form. Unmodified lines keep their original bytes.
func (l Line) String() string {
	if !l.mutated && l.raw != "" {
		return l.raw
	}
	parts := []string{l.action.String()}
	switch {
	case l.action == ActionBreak || l.action == ActionNoop:
	case l.action.IsCommit():
		if l.option != "" {
			parts = append(parts, l.option)
		}
		parts = append(parts, l.reference)
		if l.content != "" {
			parts = append(parts, l.content)
		}
	case l.action == ActionLabel || l.action == ActionReset:
		parts = append(parts, l.reference)
		if l.content != "" {
			parts = append(parts, l.content)
		}
	default:
		parts = append(parts, l.content)
	}
	return strings.Join(parts, " ") + l.eol
}

func (l *Line) setAction(a Action) bool {
	if l.action == a || !l.action.CanChangeTo(a) {
		return false
	}
	l.action = a
	if a != ActionFixup {
		l.option = ""
	}
	l.mutated = true
	return true
}

// setEditableText refuses text that would leave the line without its required name
// or argument.
func (l *Line) setEditableText(text string) bool {
	if !l.action.IsEditable() || text == l.EditableText() || strings.TrimSpace(text) == "" {
		return false
	}
	switch l.action {
	case ActionLabel, ActionReset:
		l.reference, l.content = splitWord(text)
	default:
		l.content = text
	}
	l.mutated = true
	return true
}
