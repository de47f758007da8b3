package key

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Normalize converts a raw tcell key code, its rune and modifier mask into a
// Key. Only the control modifier is kept; shift is already folded into the
// rune. It reports false for codes that have no Key equivalent, and the
// caller must then leave shortcut state untouched.
func Normalize(raw tcell.Key, r rune, mods tcell.ModMask) (Key, bool) {
	ctrl := mods&tcell.ModCtrl != 0

	if raw == tcell.KeyRune {
		if r == 0 || !unicode.IsPrint(r) {
			return Key{}, false
		}
		k := Char(r)
		if ctrl {
			k = k.WithCtrl()
		}
		return k, true
	}

	// Enter, Tab, Backspace and Escape share their codes with Ctrl+M,
	// Ctrl+I, Ctrl+H and Ctrl+[ so they have to be matched first.
	var k Key
	switch raw {
	case tcell.KeyEscape:
		k = Special(Escape)
	case tcell.KeyEnter, tcell.KeyLF:
		k = Special(Enter)
	case tcell.KeyTab:
		k = Special(Tab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		k = Special(Backspace)
	case tcell.KeyDelete:
		k = Special(Delete)
	case tcell.KeyInsert:
		k = Special(Insert)
	case tcell.KeyHome:
		k = Special(Home)
	case tcell.KeyEnd:
		k = Special(End)
	case tcell.KeyPgUp:
		k = Special(PageUp)
	case tcell.KeyPgDn:
		k = Special(PageDown)
	case tcell.KeyUp:
		k = Special(Up)
	case tcell.KeyDown:
		k = Special(Down)
	case tcell.KeyLeft:
		k = Special(Left)
	case tcell.KeyRight:
		k = Special(Right)
	case tcell.KeyCtrlSpace:
		return Control(' '), true
	default:
		switch {
		case raw >= tcell.KeyF1 && raw <= tcell.KeyF12:
			k = Special(F1 + Code(raw-tcell.KeyF1))
		case raw >= tcell.KeyCtrlA && raw <= tcell.KeyCtrlZ:
			return Control('a' + rune(raw-tcell.KeyCtrlA)), true
		default:
			return Key{}, false
		}
	}

	if ctrl {
		k.Ctrl = true
	}
	return k, true
}

// ToTcell converts a Key back to the tcell code, rune and modifier mask that
// Normalize maps onto it. It is used to synthesize events.
func ToTcell(k Key) (tcell.Key, rune, tcell.ModMask) {
	var mods tcell.ModMask
	if k.Ctrl {
		mods = tcell.ModCtrl
	}

	switch k.Code {
	case Rune:
		if k.Ctrl && k.Rune >= 'a' && k.Rune <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(k.Rune-'a'), 0, mods
		}
		return tcell.KeyRune, k.Rune, mods
	case Space:
		if k.Ctrl {
			return tcell.KeyCtrlSpace, 0, mods
		}
		return tcell.KeyRune, ' ', mods
	case Escape:
		return tcell.KeyEscape, 0, mods
	case Enter:
		return tcell.KeyEnter, 0, mods
	case Tab:
		return tcell.KeyTab, 0, mods
	case Backspace:
		return tcell.KeyBackspace2, 0, mods
	case Delete:
		return tcell.KeyDelete, 0, mods
	case Insert:
		return tcell.KeyInsert, 0, mods
	case Home:
		return tcell.KeyHome, 0, mods
	case End:
		return tcell.KeyEnd, 0, mods
	case PageUp:
		return tcell.KeyPgUp, 0, mods
	case PageDown:
		return tcell.KeyPgDn, 0, mods
	case Up:
		return tcell.KeyUp, 0, mods
	case Down:
		return tcell.KeyDown, 0, mods
	case Left:
		return tcell.KeyLeft, 0, mods
	case Right:
		return tcell.KeyRight, 0, mods
	}
	if k.Code.IsFunctionKey() {
		return tcell.KeyF1 + tcell.Key(k.Code-F1), 0, mods
	}
	return tcell.KeyNUL, 0, mods
}
