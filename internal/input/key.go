package input

import (
	"strconv"
	"strings"
)

// Code identifies a key independent of modifiers.
type Code int

const (
	CodeNone Code = iota
	CodeChar
	CodeFunction
	CodeBackspace
	CodeBackTab
	CodeDelete
	CodeDown
	CodeEnd
	CodeEnter
	CodeEsc
	CodeHome
	CodeInsert
	CodeLeft
	CodePageDown
	CodePageUp
	CodeRight
	CodeTab
	CodeUp
)

var codeNames = map[Code]string{
	CodeBackspace: "Backspace",
	CodeBackTab:   "BackTab",
	CodeDelete:    "Delete",
	CodeDown:      "Down",
	CodeEnd:       "End",
	CodeEnter:     "Enter",
	CodeEsc:       "Esc",
	CodeHome:      "Home",
	CodeInsert:    "Insert",
	CodeLeft:      "Left",
	CodePageDown:  "PageDown",
	CodePageUp:    "PageUp",
	CodeRight:     "Right",
	CodeTab:       "Tab",
	CodeUp:        "Up",
}

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all of o are set.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

// With returns m plus o.
func (m Modifier) With(o Modifier) Modifier { return m | o }

// Without returns m minus o.
func (m Modifier) Without(o Modifier) Modifier { return m &^ o }

func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// Key is a single key chord.
type Key struct {
	Code Code
	Rune rune  // CodeChar only
	F    uint8 // CodeFunction only
	Mods Modifier
}

// Char builds a character chord.
func Char(r rune, mods Modifier) Key {
	return Key{Code: CodeChar, Rune: r, Mods: mods}
}

// Special builds a chord for a named key.
func Special(c Code, mods Modifier) Key {
	return Key{Code: c, Mods: mods}
}

// Function builds a function-key chord.
func Function(n uint8, mods Modifier) Key {
	return Key{Code: CodeFunction, F: n, Mods: mods}
}

// Matches reports whether two chords are the same key. Shift is ignored for characters
// since the rune already carries its case.
func (k Key) Matches(o Key) bool {
	if k.Code != o.Code {
		return false
	}
	switch k.Code {
	case CodeChar:
		return k.Rune == o.Rune && k.Mods.Without(ModShift) == o.Mods.Without(ModShift)
	case CodeFunction:
		return k.F == o.F && k.Mods == o.Mods
	}
	return k.Mods == o.Mods
}

// String renders the chord for help screens, e.g. "Ctrl+z" or "PageDown".
func (k Key) String() string {
	var name string
	switch k.Code {
	case CodeChar:
		name = string(k.Rune)
	case CodeFunction:
		name = "F" + strconv.Itoa(int(k.F))
	case CodeNone:
		name = "?"
	default:
		name = codeNames[k.Code]
	}
	mods := k.Mods
	if k.Code == CodeChar {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// EventKind separates key chords from signals.
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
	EventCommandSucceeded
	EventCommandFailed
)

// Event is one input symbol delivered to a module.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int   // EventResize
	Height int   // EventResize
	Err    error // EventCommandFailed
}

// KeyEvent wraps a chord.
func KeyEvent(k Key) Event { return Event{Kind: EventKey, Key: k} }

// ResizeEvent reports a new terminal size.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// CommandEvent reports the result of an external command.
func CommandEvent(err error) Event {
	if err != nil {
		return Event{Kind: EventCommandFailed, Err: err}
	}
	return Event{Kind: EventCommandSucceeded}
}
