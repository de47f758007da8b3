package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Code identifies a keyboard key.
// For character keys, use Rune and set the Rune field in Key.
type Code uint8

const (
	// None represents no key.
	None Code = iota

	// Special keys
	Escape
	Enter
	Tab
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown
	Space

	// Arrow keys
	Up
	Down
	Left
	Right

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Rune is used for character keys (letters, digits, punctuation).
	// The actual character is stored in Key.Rune.
	Rune
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case None:
		return "None"
	case Escape:
		return "Esc"
	case Enter:
		return "Enter"
	case Tab:
		return "Tab"
	case Backspace:
		return "BS"
	case Delete:
		return "Del"
	case Insert:
		return "Insert"
	case Home:
		return "Home"
	case End:
		return "End"
	case PageUp:
		return "PageUp"
	case PageDown:
		return "PageDown"
	case Space:
		return "Space"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Rune:
		return "Rune"
	}
	if c >= F1 && c <= F12 {
		return fmt.Sprintf("F%d", int(c-F1)+1)
	}
	return fmt.Sprintf("Code(%d)", c)
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (c Code) IsFunctionKey() bool {
	return c >= F1 && c <= F12
}

// IsArrowKey returns true if this is an arrow key.
func (c Code) IsArrowKey() bool {
	return c >= Up && c <= Right
}

// Key is a normalized key press. Two keys are equal when their code, rune and
// control flag are equal, so Key can be compared with == and used as a map key.
type Key struct {
	// Code identifies the key.
	Code Code

	// Rune is the character for Rune keys. Zero otherwise.
	Rune rune

	// Ctrl is set when the control modifier was held.
	Ctrl bool
}

// Keys the application core routes on directly.
var (
	// Colon switches normal mode to command mode.
	Colon = Char(':')

	// Esc cancels the current shortcut and leaves command mode.
	Esc = Special(Escape)

	// Return commits the status-bar entry.
	Return = Special(Enter)
)

// Char creates a key for a character.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Code: Space}
	}
	return Key{Code: Rune, Rune: r}
}

// Control creates a control-modified key for a character.
// Letters are folded to lowercase, matching how terminals report them.
func Control(r rune) Key {
	k := Char(unicode.ToLower(r))
	k.Ctrl = true
	return k
}

// Special creates a key for a non-character code.
func Special(c Code) Key {
	return Key{Code: c}
}

// WithCtrl returns a copy of the key with the control flag set.
func (k Key) WithCtrl() Key {
	if k.Code == Rune {
		k.Rune = unicode.ToLower(k.Rune)
	}
	k.Ctrl = true
	return k
}

// IsZero returns true for the zero Key, which never matches a mapping.
func (k Key) IsZero() bool {
	return k == Key{}
}

// IsRune returns true if this is a character key.
func (k Key) IsRune() bool {
	return k.Code == Rune && k.Rune != 0
}

// IsPrintable returns true if this key inserts text into an entry.
func (k Key) IsPrintable() bool {
	if k.Ctrl {
		return false
	}
	return k.Code == Space || (k.IsRune() && unicode.IsPrint(k.Rune))
}

// Text returns the text a printable key inserts.
func (k Key) Text() string {
	switch {
	case k.Ctrl:
		return ""
	case k.Code == Space:
		return " "
	case k.IsRune():
		return string(k.Rune)
	}
	return ""
}

// String returns the key in Vim notation, the same form
// Parse accepts. Examples: "a", ":", "<lt>", "<Esc>", "<C-w>", "<C-Enter>".
func (k Key) String() string {
	if k.Code == Rune && !k.Ctrl {
		switch k.Rune {
		case '<':
			return "<lt>"
		case 0:
			return ""
		}
		return string(k.Rune)
	}

	var sb strings.Builder
	sb.WriteByte('<')
	if k.Ctrl {
		sb.WriteString("C-")
	}
	if k.Code == Rune {
		if k.Rune == '<' {
			sb.WriteString("lt")
		} else {
			sb.WriteRune(k.Rune)
		}
	} else {
		sb.WriteString(k.Code.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// GoString implements fmt.GoStringer for debugging.
func (k Key) GoString() string {
	return fmt.Sprintf("Key{Code: %s, Rune: %q, Ctrl: %t}", k.Code, k.Rune, k.Ctrl)
}

// codeNameMap maps key names (lowercase) to codes.
var codeNameMap = map[string]Code{
	"esc":       Escape,
	"escape":    Escape,
	"enter":     Enter,
	"cr":        Enter,
	"return":    Enter,
	"tab":       Tab,
	"bs":        Backspace,
	"backspace": Backspace,
	"del":       Delete,
	"delete":    Delete,
	"ins":       Insert,
	"insert":    Insert,
	"home":      Home,
	"end":       End,
	"pageup":    PageUp,
	"pgup":      PageUp,
	"pagedown":  PageDown,
	"pgdn":      PageDown,
	"space":     Space,
	"up":        Up,
	"down":      Down,
	"left":      Left,
	"right":     Right,
	"f1":        F1,
	"f2":        F2,
	"f3":        F3,
	"f4":        F4,
	"f5":        F5,
	"f6":        F6,
	"f7":        F7,
	"f8":        F8,
	"f9":        F9,
	"f10":       F10,
	"f11":       F11,
	"f12":       F12,
}

// runeNameMap maps Vim names for awkward characters to the character.
var runeNameMap = map[string]rune{
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"minus":  '-',
	"plus":   '+',
}

// CodeFromName returns the Code for a given name (case-insensitive).
// Returns None if the name is not recognized.
func CodeFromName(name string) Code {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := codeNameMap[name]; ok {
		return c
	}
	return None
}
