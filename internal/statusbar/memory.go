package statusbar

// MemoryToolkit creates widgets that keep their state in memory.
type MemoryToolkit struct {
	// Panels records every container created, in order.
	Panels []*Panel
}

// NewLabel implements Toolkit.
func (tk *MemoryToolkit) NewLabel(text string) Label {
	return NewTextLabel(text)
}

// NewEntry implements Toolkit.
func (tk *MemoryToolkit) NewEntry() Entry {
	return NewTextEntry()
}

// NewContainer implements Toolkit.
func (tk *MemoryToolkit) NewContainer() Container {
	p := NewPanel()
	tk.Panels = append(tk.Panels, p)
	return p
}

// TextLabel is an in-memory Label.
type TextLabel struct {
	text    string
	visible bool
}

// NewTextLabel creates a visible label.
func NewTextLabel(text string) *TextLabel {
	return &TextLabel{text: text, visible: true}
}

func (l *TextLabel) Show()               { l.visible = true }
func (l *TextLabel) Hide()               { l.visible = false }
func (l *TextLabel) Visible() bool       { return l.visible }
func (l *TextLabel) SetText(text string) { l.text = text }
func (l *TextLabel) Text() string        { return l.text }

// TextEntry is an in-memory Entry with a cursor and a selection.
type TextEntry struct {
	runes   []rune
	cursor  int
	anchor  int // selection anchor; equal to cursor when nothing is selected
	visible bool
	focused bool

	activate []func(string)
	changed  []func(string)
}

// NewTextEntry creates an empty, visible entry.
func NewTextEntry() *TextEntry {
	return &TextEntry{visible: true}
}

func (e *TextEntry) Show() { e.visible = true }

// Hide hides the entry and drops focus.
func (e *TextEntry) Hide() {
	e.visible = false
	e.focused = false
}

func (e *TextEntry) Visible() bool { return e.visible }

// Focused returns true if the entry has keyboard focus.
func (e *TextEntry) Focused() bool { return e.focused }

// GrabFocus gives the entry keyboard focus.
func (e *TextEntry) GrabFocus() { e.focused = true }

// Text returns the entry content.
func (e *TextEntry) Text() string { return string(e.runes) }

// SetText replaces the content and puts the cursor at the start.
func (e *TextEntry) SetText(text string) {
	e.runes = []rune(text)
	e.cursor, e.anchor = 0, 0
	e.emitChanged()
}

// Len returns the content length in runes.
func (e *TextEntry) Len() int { return len(e.runes) }

// Position returns the cursor position.
func (e *TextEntry) Position() int { return e.cursor }

// SetPosition moves the cursor and clears the selection.
// Negative positions move to the end.
func (e *TextEntry) SetPosition(pos int) {
	if pos < 0 || pos > len(e.runes) {
		pos = len(e.runes)
	}
	e.cursor, e.anchor = pos, pos
}

// Select selects [start, end) and leaves the cursor at end.
func (e *TextEntry) Select(start, end int) {
	e.anchor = e.clamp(start)
	e.cursor = e.clamp(end)
}

// SelectionBounds implements Entry.
func (e *TextEntry) SelectionBounds() (start, end int, ok bool) {
	if e.anchor == e.cursor {
		return 0, 0, false
	}
	if e.anchor < e.cursor {
		return e.anchor, e.cursor, true
	}
	return e.cursor, e.anchor, true
}

// DeleteSelection removes the selected text, if any.
func (e *TextEntry) DeleteSelection() {
	if start, end, ok := e.SelectionBounds(); ok {
		e.DeleteText(start, end)
	}
}

// DeleteText removes the runes in [start, end) and puts the cursor at start.
// A negative end means the end of the text.
func (e *TextEntry) DeleteText(start, end int) {
	if end < 0 {
		end = len(e.runes)
	}
	start, end = e.clamp(start), e.clamp(end)
	if start >= end {
		return
	}
	e.runes = append(e.runes[:start], e.runes[end:]...)
	e.cursor, e.anchor = start, start
	e.emitChanged()
}

// InsertText inserts text at the cursor, replacing the selection.
func (e *TextEntry) InsertText(text string) {
	if text == "" {
		return
	}
	if start, end, ok := e.SelectionBounds(); ok {
		e.runes = append(e.runes[:start], e.runes[end:]...)
		e.cursor = start
	}
	ins := []rune(text)
	runes := make([]rune, 0, len(e.runes)+len(ins))
	runes = append(runes, e.runes[:e.cursor]...)
	runes = append(runes, ins...)
	runes = append(runes, e.runes[e.cursor:]...)
	e.runes = runes
	e.cursor += len(ins)
	e.anchor = e.cursor
	e.emitChanged()
}

// Backspace deletes the selection or the rune before the cursor.
func (e *TextEntry) Backspace() {
	if _, _, ok := e.SelectionBounds(); ok {
		e.DeleteSelection()
		return
	}
	if e.cursor > 0 {
		e.DeleteText(e.cursor-1, e.cursor)
	}
}

// DeleteForward deletes the selection or the rune under the cursor.
func (e *TextEntry) DeleteForward() {
	if _, _, ok := e.SelectionBounds(); ok {
		e.DeleteSelection()
		return
	}
	if e.cursor < len(e.runes) {
		e.DeleteText(e.cursor, e.cursor+1)
	}
}

// MoveLeft moves the cursor one rune left.
func (e *TextEntry) MoveLeft() { e.SetPosition(max(e.cursor-1, 0)) }

// MoveRight moves the cursor one rune right.
func (e *TextEntry) MoveRight() { e.SetPosition(min(e.cursor+1, len(e.runes))) }

// Home moves the cursor to the start.
func (e *TextEntry) Home() { e.SetPosition(0) }

// End moves the cursor to the end.
func (e *TextEntry) End() { e.SetPosition(len(e.runes)) }

// Activate emits the activate signal with the current text.
func (e *TextEntry) Activate() {
	text := e.Text()
	for _, fn := range e.activate {
		fn(text)
	}
}

// ConnectActivate implements Entry.
func (e *TextEntry) ConnectActivate(fn func(text string)) {
	e.activate = append(e.activate, fn)
}

// ConnectChanged implements Entry.
func (e *TextEntry) ConnectChanged(fn func(text string)) {
	e.changed = append(e.changed, fn)
}

func (e *TextEntry) emitChanged() {
	text := e.Text()
	for _, fn := range e.changed {
		fn(text)
	}
}

func (e *TextEntry) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(e.runes) {
		return len(e.runes)
	}
	return pos
}

// Panel is an in-memory Container.
type Panel struct {
	start   []Widget
	end     []Widget
	visible bool
	bg      Color
	fg      Color
	fgSet   bool
}

// NewPanel creates a visible, transparent panel.
func NewPanel() *Panel {
	return &Panel{visible: true}
}

func (p *Panel) Show()         { p.visible = true }
func (p *Panel) Hide()         { p.visible = false }
func (p *Panel) Visible() bool { return p.visible }

// PackStart implements Container.
func (p *Panel) PackStart(w Widget) { p.start = append(p.start, w) }

// PackEnd implements Container. The first widget packed at the end is the
// rightmost one.
func (p *Panel) PackEnd(w Widget) { p.end = append(p.end, w) }

// Start returns the widgets packed from the left, left to right.
func (p *Panel) Start() []Widget { return p.start }

// End returns the widgets packed from the right, right to left.
func (p *Panel) End() []Widget { return p.end }

// OverrideBackground implements Colorable.
func (p *Panel) OverrideBackground(c Color) { p.bg = c }

// OverrideForeground implements Colorable.
func (p *Panel) OverrideForeground(c Color) {
	p.fg = c
	p.fgSet = true
}

// Background returns the background color.
func (p *Panel) Background() Color { return p.bg }

// Foreground returns the foreground color and whether one was set.
func (p *Panel) Foreground() (Color, bool) { return p.fg, p.fgSet }
