package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modebar/internal/app"
	"github.com/dshills/modebar/internal/settings"
	"github.com/dshills/modebar/internal/statusbar"
)

type harness struct {
	screen   tcell.SimulationScreen
	ui       *UI
	bar      *statusbar.StatusBar
	app      *app.Application[string]
	commands []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(40, 5)
	t.Cleanup(term.Shutdown)

	commands := settings.CommandSet[string]{
		"open": settings.OneArg(func(arg string) string { return "open " + arg }),
		"quit": settings.NoArgs("quit"),
	}

	bar := statusbar.New(&statusbar.MemoryToolkit{})
	a, err := app.New(app.Options[string]{
		Commands: commands.Factory(),
		Logger:   app.NullLogger,
	}, bar)
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	ui, err := New(term, bar, a)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	h := &harness{screen: screen, ui: ui, bar: bar, app: a}
	a.ConnectCommand(func(cmd string) {
		h.commands = append(h.commands, cmd)
	})
	return h
}

func (h *harness) typeKeys(s string) {
	for _, r := range s {
		h.ui.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) press(k tcell.Key) {
	h.ui.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) row(y int) string {
	h.ui.Draw()
	cells, width, _ := h.screen.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func (h *harness) barRow() string {
	_, height := h.screen.Size()
	return h.row(height - 1)
}

func TestDrawMessage(t *testing.T) {
	h := newHarness(t)
	h.bar.Message().SetText("hello")

	if got := h.barRow(); got != "hello" {
		t.Errorf("bar = %q, want hello", got)
	}
}

func TestCommandLine(t *testing.T) {
	h := newHarness(t)

	h.typeKeys(":")
	if !h.bar.EntryShown() {
		t.Fatal("colon should show the entry")
	}
	h.typeKeys("open example.org")
	if got := h.barRow(); got != ":open example.org" {
		t.Errorf("bar = %q", got)
	}

	h.press(tcell.KeyEnter)
	if len(h.commands) != 1 || h.commands[0] != "open example.org" {
		t.Errorf("commands = %v", h.commands)
	}
	if h.bar.EntryShown() {
		t.Error("entry should be hidden after the command")
	}
	if got := h.barRow(); got != "" {
		t.Errorf("bar = %q, want empty", got)
	}
}

func TestCommandLineEditing(t *testing.T) {
	h := newHarness(t)

	h.typeKeys(":open foo bar")
	h.press(tcell.KeyCtrlW)
	if got, _ := h.bar.Command(); got != "open foo " {
		t.Errorf("after Ctrl-W = %q", got)
	}

	h.press(tcell.KeyBackspace2)
	h.press(tcell.KeyLeft)
	h.press(tcell.KeyLeft)
	h.typeKeys("X")
	if got, _ := h.bar.Command(); got != "open fXoo" {
		t.Errorf("after edits = %q", got)
	}

	h.press(tcell.KeyHome)
	h.press(tcell.KeyDelete)
	if got, _ := h.bar.Command(); got != "pen fXoo" {
		t.Errorf("after Home, Delete = %q", got)
	}

	h.press(tcell.KeyEnd)
	h.press(tcell.KeyCtrlU)
	if got, ok := h.bar.Command(); ok {
		t.Errorf("after Ctrl-U = %q, want empty", got)
	}
}

func TestEscapeLeavesCommandMode(t *testing.T) {
	h := newHarness(t)

	h.typeKeys(":open")
	h.press(tcell.KeyEscape)
	if h.bar.EntryShown() {
		t.Error("escape should hide the entry")
	}
	if len(h.commands) != 0 {
		t.Errorf("commands = %v, want none", h.commands)
	}
}

func TestUnknownCommandShowsError(t *testing.T) {
	h := newHarness(t)

	h.typeKeys(":frob")
	h.press(tcell.KeyEnter)

	if got := h.barRow(); got != "Not a command: frob" {
		t.Errorf("bar = %q", got)
	}

	cells, _, _ := h.screen.GetContents()
	_, height := h.screen.Size()
	_, bg, _ := cells[(height-1)*40].Style.Decompose()
	if bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("error background = %v, want red", bg)
	}
}

func TestRightItems(t *testing.T) {
	h := newHarness(t)
	first := h.app.AddStatusBarItem()
	first.SetText("42%")
	second := h.app.AddStatusBarItem()
	second.SetText("[+]")
	h.bar.Message().SetText("msg")

	got := h.barRow()
	if !strings.HasPrefix(got, "msg") || !strings.HasSuffix(got, "[+] 42%") {
		t.Errorf("bar = %q", got)
	}
}

func TestPrintScrolls(t *testing.T) {
	h := newHarness(t)
	for _, line := range []string{"one", "two", "three", "four", "five"} {
		h.ui.Print(line)
	}

	if got := h.row(0); got != "two" {
		t.Errorf("first row = %q, want two", got)
	}
	if got := h.row(3); got != "five" {
		t.Errorf("last line row = %q, want five", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := newHarness(t)
	h.press(tcell.KeyCtrlC)
	if !h.ui.quit {
		t.Error("Ctrl-C should quit")
	}
}

func TestRunPostAndQuit(t *testing.T) {
	h := newHarness(t)

	done := make(chan error, 1)
	go func() {
		done <- h.ui.Run(context.Background())
	}()

	var called bool
	if err := h.ui.Post(func() {
		called = true
		h.ui.Quit()
	}); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	if !called {
		t.Error("posted function did not run")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.ui.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestConvertColor(t *testing.T) {
	if convertColor(statusbar.Transparent) != tcell.ColorDefault {
		t.Error("transparent should map to the default color")
	}
	if convertColor(statusbar.Blue) != tcell.NewRGBColor(0, 0, 255) {
		t.Error("blue mismatch")
	}
}
