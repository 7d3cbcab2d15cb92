package modules

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tide-rebase/internal/input"
)

// lineEditor is a single-line text buffer. The cursor is a byte offset that always sits
// on a grapheme cluster boundary.
type lineEditor struct {
	text   string
	cursor int
}

// Set replaces the text and moves the cursor to the end.
func (e *lineEditor) Set(text string) {
	e.text = text
	e.cursor = len(text)
}

func (e *lineEditor) Text() string { return e.text }

// Column returns the cursor position in terminal cells.
func (e *lineEditor) Column() int {
	return uniseg.StringWidth(e.text[:e.cursor])
}

// Insert adds s at the cursor. Line breaks are replaced by spaces.
func (e *lineEditor) Insert(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	e.text = e.text[:e.cursor] + s + e.text[e.cursor:]
	e.cursor += len(s)
}

// prevBoundary returns the start of the grapheme cluster before the cursor.
func (e *lineEditor) prevBoundary() int {
	prev := 0
	state := -1
	rest := e.text[:e.cursor]
	pos := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return prev
}

// nextBoundary returns the end of the grapheme cluster after the cursor.
func (e *lineEditor) nextBoundary() int {
	if e.cursor >= len(e.text) {
		return len(e.text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(e.text[e.cursor:], -1)
	return e.cursor + len(cluster)
}

func (e *lineEditor) Left()  { e.cursor = e.prevBoundary() }
func (e *lineEditor) Right() { e.cursor = e.nextBoundary() }
func (e *lineEditor) Home()  { e.cursor = 0 }
func (e *lineEditor) End()   { e.cursor = len(e.text) }

// Backspace deletes the grapheme cluster before the cursor.
func (e *lineEditor) Backspace() {
	if e.cursor == 0 {
		return
	}
	start := e.prevBoundary()
	e.text = e.text[:start] + e.text[e.cursor:]
	e.cursor = start
}

// Delete deletes the grapheme cluster under the cursor.
func (e *lineEditor) Delete() {
	end := e.nextBoundary()
	e.text = e.text[:e.cursor] + e.text[end:]
}

// DeleteWord deletes back to the start of the previous word.
func (e *lineEditor) DeleteWord() {
	before := strings.TrimRight(e.text[:e.cursor], " ")
	start := strings.LastIndex(before, " ") + 1
	e.text = e.text[:start] + e.text[e.cursor:]
	e.cursor = start
}

// DeleteToStart deletes everything before the cursor.
func (e *lineEditor) DeleteToStart() {
	e.text = e.text[e.cursor:]
	e.cursor = 0
}

// HandleKey applies a text editing key and reports whether it was one. paste supplies
// clipboard text for Ctrl+V.
func (e *lineEditor) HandleKey(k input.Key, paste func() (string, error)) bool {
	switch {
	case k.Code == input.CodeChar && k.Mods.Has(input.ModCtrl):
		switch k.Rune {
		case 'a':
			e.Home()
		case 'e':
			e.End()
		case 'u':
			e.DeleteToStart()
		case 'w':
			e.DeleteWord()
		case 'v':
			if paste == nil {
				return false
			}
			text, err := paste()
			if err != nil {
				return false
			}
			e.Insert(firstLine(text))
		default:
			return false
		}
	case k.Code == input.CodeChar && !k.Mods.Has(input.ModAlt):
		e.Insert(string(k.Rune))
	case k.Code == input.CodeBackspace:
		e.Backspace()
	case k.Code == input.CodeDelete:
		e.Delete()
	case k.Code == input.CodeLeft:
		e.Left()
	case k.Code == input.CodeRight:
		e.Right()
	case k.Code == input.CodeHome:
		e.Home()
	case k.Code == input.CodeEnd:
		e.End()
	default:
		return false
	}
	return true
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\r\n")
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
