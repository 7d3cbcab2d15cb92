// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// tcellCodes maps tcell's named keys onto chord codes.
var tcellCodes = map[tcell.Key]Code{
	tcell.KeyBackspace:  CodeBackspace,
	tcell.KeyBackspace2: CodeBackspace,
	tcell.KeyBacktab:    CodeBackTab,
	tcell.KeyDelete:     CodeDelete,
	tcell.KeyDown:       CodeDown,
	tcell.KeyEnd:        CodeEnd,
	tcell.KeyEnter:      CodeEnter,
	tcell.KeyEscape:     CodeEsc,
	tcell.KeyHome:       CodeHome,
	tcell.KeyInsert:     CodeInsert,
	tcell.KeyLeft:       CodeLeft,
	tcell.KeyPgDn:       CodePageDown,
	tcell.KeyPgUp:       CodePageUp,
	tcell.KeyRight:      CodeRight,
	tcell.KeyTab:        CodeTab,
	tcell.KeyUp:         CodeUp,
}

func modsFromTcell(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(ModAlt)
	}
	return mods
}

// keyFromTcell converts a tcell key event into a chord.
func keyFromTcell(ev *tcell.EventKey) (Key, bool) {
	mods := modsFromTcell(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		return Char(ev.Rune(), mods), true
	}
	// Named keys first: Tab, Enter and Backspace share values with Ctrl+I, Ctrl+M and Ctrl+H.
	if code, ok := tcellCodes[k]; ok {
		if code == CodeBackTab {
			mods = mods.Without(ModShift)
		}
		return Special(code, mods), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF64 {
		return Function(uint8(k-tcell.KeyF1+1), mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Char('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl)), true
	}
	return Key{}, false
}

// FromTcell converts a raw terminal event. Events with no meaning here (mouse, paste,
// interrupts) report false.
func FromTcell(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := keyFromTcell(ev)
		if !ok {
			return Event{}, false
		}
		return KeyEvent(k), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeEvent(w, h), true
	}
	return Event{}, false
}
