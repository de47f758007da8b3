package statusbar

import (
	"unicode"
	"unicode/utf8"
)

// DefaultIdentifier is the prompt shown left of the entry.
const DefaultIdentifier = ":"

// StatusBar is the window status bar.
//
// StatusBar is not safe for concurrent use. It is driven from the toolkit
// event loop.
type StatusBar struct {
	tk         Toolkit
	root       Container
	message    *Item
	identifier Label
	entry      Entry
	entryShown bool

	// quiet suppresses the changed signal while the bar edits the entry.
	quiet   bool
	changed []func(text string, ok bool)
}

// Item is a text item in the status bar.
type Item struct {
	label Label
	left  bool
}

// SetText sets the item text.
func (i *Item) SetText(text string) { i.label.SetText(text) }

// Text returns the item text.
func (i *Item) Text() string { return i.label.Text() }

// Show shows the item.
func (i *Item) Show() { i.label.Show() }

// Hide hides the item.
func (i *Item) Hide() { i.label.Hide() }

// Visible returns true if the item is shown.
func (i *Item) Visible() bool { return i.label.Visible() }

// Left returns true for items packed on the left side.
func (i *Item) Left() bool { return i.left }

// New builds a status bar from tk's widgets. The entry starts hidden.
func New(tk Toolkit) *StatusBar {
	b := &StatusBar{
		tk:         tk,
		root:       tk.NewContainer(),
		identifier: tk.NewLabel(DefaultIdentifier),
		entry:      tk.NewEntry(),
	}
	b.message = &Item{label: tk.NewLabel(""), left: true}

	b.root.PackStart(b.message.label)
	b.root.PackStart(b.identifier)
	b.root.PackStart(b.entry)

	b.entry.ConnectChanged(func(text string) {
		if b.quiet {
			return
		}
		for _, fn := range b.changed {
			fn(text, text != "")
		}
	})

	b.HideEntry()
	return b
}

// Root returns the container holding every widget of the bar.
func (b *StatusBar) Root() Container { return b.root }

// Entry returns the command entry.
func (b *StatusBar) Entry() Entry { return b.entry }

// Message returns the left-aligned item used for the mode and errors.
func (b *StatusBar) Message() *Item { return b.message }

// AddItem creates a right-aligned item.
func (b *StatusBar) AddItem() *Item {
	item := &Item{label: b.tk.NewLabel("")}
	b.root.PackEnd(item.label)
	return item
}

// EntryShown returns true while the entry is visible.
func (b *StatusBar) EntryShown() bool { return b.entryShown }

// ShowEntry clears and shows the entry and gives it focus.
func (b *StatusBar) ShowEntry() {
	b.entryShown = true
	b.setQuiet("")
	b.identifier.Show()
	b.entry.Show()
	b.entry.GrabFocus()
}

// HideEntry clears and hides the entry.
func (b *StatusBar) HideEntry() {
	b.entryShown = false
	b.setQuiet("")
	b.identifier.Hide()
	b.entry.Hide()
}

// Hide hides the entry and clears the message.
func (b *StatusBar) Hide() {
	b.HideEntry()
	b.message.SetText("")
}

// SetIdentifier sets the prompt shown left of the entry.
func (b *StatusBar) SetIdentifier(identifier string) {
	b.identifier.SetText(identifier)
}

// Identifier returns the prompt shown left of the entry.
func (b *StatusBar) Identifier() string {
	return b.identifier.Text()
}

// SetCommand replaces the entry text and moves the cursor to the end.
// The changed signal is not emitted.
func (b *StatusBar) SetCommand(command string) {
	b.setQuiet(command)
	b.entry.SetPosition(utf8.RuneCountInString(command))
}

// Command returns the entry text, or false when it is empty.
func (b *StatusBar) Command() (string, bool) {
	text := b.entry.Text()
	return text, text != ""
}

// DeletePreviousWord deletes the selection, or the word before the cursor
// together with the whitespace between it and the cursor.
func (b *StatusBar) DeletePreviousWord() {
	if _, _, ok := b.entry.SelectionBounds(); ok {
		b.entry.DeleteSelection()
		return
	}

	text := []rune(b.entry.Text())
	pos := b.entry.Position()
	if pos > len(text) {
		pos = len(text)
	}

	start := pos
	for start > 0 && unicode.IsSpace(text[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(text[start-1]) {
		start--
	}
	if start < pos {
		b.entry.DeleteText(start, pos)
	}
}

// ConnectActivate registers fn for the entry's commit key. ok is false when
// the entry is empty.
func (b *StatusBar) ConnectActivate(fn func(text string, ok bool)) {
	b.entry.ConnectActivate(func(text string) {
		fn(text, text != "")
	})
}

// ConnectChanged registers fn for edits made by the user.
func (b *StatusBar) ConnectChanged(fn func(text string, ok bool)) {
	b.changed = append(b.changed, fn)
}

// OverrideBackground sets the bar background.
func (b *StatusBar) OverrideBackground(c Color) { b.root.OverrideBackground(c) }

// OverrideForeground sets the bar text color.
func (b *StatusBar) OverrideForeground(c Color) { b.root.OverrideForeground(c) }

// ColorBlue paints the bar blue with white text.
func (b *StatusBar) ColorBlue() {
	b.root.OverrideBackground(Blue)
	b.WhiteForeground()
}

// ColorOrange paints the bar orange with white text.
func (b *StatusBar) ColorOrange() {
	b.root.OverrideBackground(Orange)
	b.WhiteForeground()
}

// ColorRed paints the bar red with white text.
func (b *StatusBar) ColorRed() {
	b.root.OverrideBackground(Red)
	b.WhiteForeground()
}

// WhiteForeground sets the text color to white.
func (b *StatusBar) WhiteForeground() {
	b.root.OverrideForeground(White)
}

func (b *StatusBar) setQuiet(text string) {
	b.quiet = true
	b.entry.SetText(text)
	b.quiet = false
}
