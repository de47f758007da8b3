package terminal

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/modebar/internal/input/key"
	"github.com/dshills/modebar/internal/statusbar"
)

// ErrUnsupportedBar is returned for a status bar whose widgets were not
// created by a statusbar.MemoryToolkit.
var ErrUnsupportedBar = errors.New("status bar widgets cannot be drawn")

// KeyHandler receives key presses and reports whether they were consumed.
type KeyHandler interface {
	KeyPress(k key.Key) bool
}

// UI draws a status bar on the last terminal row and feeds it key events.
// Above the bar it shows a scrolling list of lines.
//
// All methods except Post must be called from the goroutine running Run.
type UI struct {
	term  *Terminal
	bar   *statusbar.StatusBar
	panel *statusbar.Panel
	entry *statusbar.TextEntry
	keys  KeyHandler

	lines    []string
	maxLines int
	quit     bool
}

// New creates a UI for bar. Unconsumed keys edit the entry while it is
// shown.
func New(term *Terminal, bar *statusbar.StatusBar, keys KeyHandler) (*UI, error) {
	panel, ok := bar.Root().(*statusbar.Panel)
	if !ok {
		return nil, ErrUnsupportedBar
	}
	entry, ok := bar.Entry().(*statusbar.TextEntry)
	if !ok {
		return nil, ErrUnsupportedBar
	}
	return &UI{
		term:     term,
		bar:      bar,
		panel:    panel,
		entry:    entry,
		keys:     keys,
		maxLines: 1000,
	}, nil
}

// Print appends a line above the bar.
func (u *UI) Print(line string) {
	u.lines = append(u.lines, line)
	if len(u.lines) > u.maxLines {
		u.lines = u.lines[len(u.lines)-u.maxLines:]
	}
}

// Lines returns the printed lines.
func (u *UI) Lines() []string { return u.lines }

// Beep rings the terminal bell.
func (u *UI) Beep() { u.term.Beep() }

// Quit makes Run return after the current event.
func (u *UI) Quit() { u.quit = true }

// Post runs fn on the event loop. It is safe to call from any goroutine.
func (u *UI) Post(fn func()) error {
	return u.term.PostEvent(tcell.NewEventInterrupt(fn))
}

// Run draws and handles events until Quit is called, Ctrl-C is pressed,
// ctx is done or the terminal shuts down.
func (u *UI) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = u.Post(u.Quit)
	})
	defer stop()

	for !u.quit {
		u.Draw()
		ev := u.term.PollEvent()
		if ev == nil {
			return nil
		}
		u.handleEvent(ev)
	}
	return ctx.Err()
}

// handleEvent dispatches one terminal event.
func (u *UI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		u.term.Sync()
	case *tcell.EventKey:
		u.handleKey(ev)
	}
}

// handleKey offers the key to the key handler, then to the entry.
func (u *UI) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		u.quit = true
		return
	}

	k, ok := key.Normalize(ev.Key(), ev.Rune(), ev.Modifiers())
	if !ok {
		return
	}
	if u.keys != nil && u.keys.KeyPress(k) {
		return
	}
	if u.bar.EntryShown() {
		u.editEntry(k)
	}
}

// editEntry applies a line editing key to the entry.
func (u *UI) editEntry(k key.Key) {
	if k.Ctrl {
		switch k.Rune {
		case 'w':
			u.bar.DeletePreviousWord()
		case 'a':
			u.entry.Home()
		case 'e':
			u.entry.End()
		case 'u':
			u.entry.DeleteText(0, u.entry.Position())
		}
		return
	}

	switch k.Code {
	case key.Enter:
		u.entry.Activate()
	case key.Backspace:
		u.entry.Backspace()
	case key.Delete:
		u.entry.DeleteForward()
	case key.Left:
		u.entry.MoveLeft()
	case key.Right:
		u.entry.MoveRight()
	case key.Home:
		u.entry.Home()
	case key.End:
		u.entry.End()
	case key.Space:
		u.entry.InsertText(" ")
	case key.Rune:
		u.entry.InsertText(string(k.Rune))
	}
}

// Draw renders the printed lines and the status bar.
func (u *UI) Draw() {
	u.term.Clear()
	u.term.HideCursor()

	width, height := u.term.Size()
	if width <= 0 || height <= 0 {
		u.term.Show()
		return
	}

	rows := height - 1
	first := max(len(u.lines)-rows, 0)
	for y, line := range u.lines[first:] {
		u.drawText(0, y, line, tcell.StyleDefault, width)
	}

	if u.panel.Visible() {
		u.drawBar(height-1, width)
	}
	u.term.Show()
}

// drawBar draws the start widgets left to right and the end widgets right
// to left on row y.
func (u *UI) drawBar(y, width int) {
	style := barStyle(u.panel)
	u.term.FillRow(y, style)

	x := 0
	for _, w := range u.panel.Start() {
		if !w.Visible() {
			continue
		}
		switch w := w.(type) {
		case *statusbar.TextEntry:
			runes := []rune(w.Text())
			cursorX := x + runewidth.StringWidth(string(runes[:w.Position()]))
			x = u.drawText(x, y, string(runes), style, width)
			if w.Focused() && cursorX < width {
				u.term.ShowCursor(cursorX, y)
			}
		case statusbar.Label:
			text := w.Text()
			if text == "" {
				continue
			}
			x = u.drawText(x, y, text, style, width)
			if text != u.bar.Identifier() {
				x++
			}
		}
	}

	right := width
	for _, w := range u.panel.End() {
		label, ok := w.(statusbar.Label)
		if !ok || !label.Visible() || label.Text() == "" {
			continue
		}
		right -= runewidth.StringWidth(label.Text())
		if right < x {
			return
		}
		u.drawText(right, y, label.Text(), style, width)
		right--
	}
}

// drawText draws s from x on row y, clipped at maxX, and returns the column
// after the last cell drawn.
func (u *UI) drawText(x, y int, s string, style tcell.Style, maxX int) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		u.term.SetContent(x, y, r, style)
		x += w
	}
	return x
}
