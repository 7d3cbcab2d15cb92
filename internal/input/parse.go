package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptyBinding   = errors.New("empty key binding")
	ErrInvalidBinding = errors.New("invalid key binding")
)

var modifierWords = []struct {
	word string
	mod  Modifier
}{
	{"Control", ModCtrl},
	{"Alt", ModAlt},
	{"Shift", ModShift},
}

var specialCodes = map[string]Code{
	"Backspace": CodeBackspace,
	"BackTab":   CodeBackTab,
	"Delete":    CodeDelete,
	"Down":      CodeDown,
	"End":       CodeEnd,
	"Enter":     CodeEnter,
	"Esc":       CodeEsc,
	"Home":      CodeHome,
	"Insert":    CodeInsert,
	"Left":      CodeLeft,
	"PageDown":  CodePageDown,
	"PageUp":    CodePageUp,
	"Right":     CodeRight,
	"Tab":       CodeTab,
	"Up":        CodeUp,
}

// ParseBinding parses a configuration key string into a chord.
//
// Modifier words ("Control", "Alt", "Shift") may appear anywhere in the string and in
// any order, e.g. "ControlAltShifta" or "ShiftTab". What is left must be:
//   - a named key: Backspace, BackTab, Delete, Down, End, Enter, Esc, Home, Insert,
//     Left, PageDown, PageUp, Right, Tab, Up
//   - a function key "F<n>"; a number that does not fit 0-255 yields F1
//   - otherwise its first character, so "ab" is the key a
func ParseBinding(spec string) (Key, error) {
	if spec == "" {
		return Key{}, ErrEmptyBinding
	}

	rest := spec
	var mods Modifier
	for _, m := range modifierWords {
		if strings.Contains(rest, m.word) {
			rest = strings.ReplaceAll(rest, m.word, "")
			mods = mods.With(m.mod)
		}
	}

	if rest == "" {
		return Key{}, fmt.Errorf("%w: %q has no key after its modifiers", ErrInvalidBinding, spec)
	}
	if code, ok := specialCodes[rest]; ok {
		return Special(code, mods), nil
	}
	if len(rest) > 1 && rest[0] == 'F' {
		n, err := strconv.ParseUint(rest[1:], 10, 8)
		if err != nil {
			n = 1
		}
		return Function(uint8(n), mods), nil
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return Char(r, mods), nil
}

// ParseBindings parses every string of a binding list.
func ParseBindings(specs []string) ([]Key, error) {
	keys := make([]Key, 0, len(specs))
	for _, s := range specs {
		k, err := ParseBinding(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
