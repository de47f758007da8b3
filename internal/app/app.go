package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/modebar/internal/dispatcher"
	"github.com/dshills/modebar/internal/input/key"
	"github.com/dshills/modebar/internal/input/keymap"
	"github.com/dshills/modebar/internal/input/mode"
	"github.com/dshills/modebar/internal/settings"
	"github.com/dshills/modebar/internal/statusbar"
)

// VariableFunc produces the replacement text of a "<name>" placeholder.
type VariableFunc func() string

// Options configures an Application.
type Options[T any] struct {
	// Modes declares the mapping modes. Defaults to mode.DefaultTable().
	Modes mode.Table

	// Commands builds the application commands. Without it every command
	// line is reported as unknown.
	Commands settings.CommandFactory[T]

	// Foreground is the text color restored on reset.
	Foreground statusbar.Color

	// ErrorBackground and ErrorForeground color error messages.
	// They default to red and white.
	ErrorBackground statusbar.Color
	ErrorForeground statusbar.Color

	// Logger defaults to GetLogger().
	Logger *Logger
}

// Application is the state machine coordinating modes, shortcuts and the
// command line.
type Application[T any] struct {
	modes      mode.Table
	bar        *statusbar.StatusBar
	dispatcher *dispatcher.Dispatcher[T]
	mappings   *keymap.Table
	variables  map[string]VariableFunc

	currentMode string
	shortcut    key.Sequence

	foreground statusbar.Color
	errorBg    statusbar.Color
	errorFg    statusbar.Color

	logger *Logger
}

// New creates the application core around bar and connects the entry's
// activate signal. The bar is reset and normal mode is current.
func New[T any](opts Options[T], bar *statusbar.StatusBar) (*Application[T], error) {
	if bar == nil {
		return nil, ErrNoStatusBar
	}

	modes := opts.Modes
	if modes == nil {
		modes = mode.DefaultTable()
	}
	if err := modes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModes, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}

	errorBg, errorFg := opts.ErrorBackground, opts.ErrorForeground
	if errorBg.IsTransparent() {
		errorBg = statusbar.Red
	}
	if errorFg.IsTransparent() {
		errorFg = statusbar.White
	}

	parser := settings.NewParser(opts.Commands, modes.Prefixes())

	app := &Application[T]{
		modes:       modes.Clone(),
		bar:         bar,
		dispatcher:  dispatcher.New(parser),
		mappings:    keymap.NewTable(),
		variables:   make(map[string]VariableFunc),
		currentMode: mode.Normal,
		foreground:  opts.Foreground,
		errorBg:     errorBg,
		errorFg:     errorFg,
		logger:      logger.WithComponent("app"),
	}

	bar.ConnectActivate(app.HandleCommand)
	app.Reset()
	return app, nil
}

// StatusBar returns the status bar.
func (a *Application[T]) StatusBar() *statusbar.StatusBar { return a.bar }

// Dispatcher returns the command dispatcher, for hooks and metrics.
func (a *Application[T]) Dispatcher() *dispatcher.Dispatcher[T] { return a.dispatcher }

// Mappings returns the mapping table.
func (a *Application[T]) Mappings() *keymap.Table { return a.mappings }

// Modes returns a copy of the declared mode table.
func (a *Application[T]) Modes() mode.Table { return a.modes.Clone() }

// Mode returns the current mode.
func (a *Application[T]) Mode() string { return a.currentMode }

// Shortcut returns a copy of the keys accumulated since the last reset.
func (a *Application[T]) Shortcut() key.Sequence { return a.shortcut.Clone() }

// ConnectCommand sets the command callback, replacing the previous one.
func (a *Application[T]) ConnectCommand(fn func(T)) {
	a.dispatcher.ConnectCommand(fn)
}

// AddVariable registers fn as the value of "<name>" in command templates.
func (a *Application[T]) AddVariable(name string, fn VariableFunc) {
	a.variables[name] = fn
}

// AddStatusBarItem creates a right-aligned status bar item.
func (a *Application[T]) AddStatusBarItem() *statusbar.Item {
	return a.bar.AddItem()
}

// UseForeground sets the text color restored on reset.
func (a *Application[T]) UseForeground(c statusbar.Color) {
	a.foreground = c
}

// KeyPress routes a key press and reports whether it was consumed.
func (a *Application[T]) KeyPress(k key.Key) bool {
	switch a.currentMode {
	case mode.Normal:
		switch {
		case k == key.Colon && !a.bar.EntryShown():
			a.SetMode(mode.Command)
			a.Reset()
			a.bar.ShowEntry()
			return true
		case k == key.Esc:
			a.Reset()
			return true
		}
	case mode.Command:
		if k == key.Esc {
			a.SetMode(mode.Normal)
			a.Reset()
			return true
		}
	}
	return a.handleShortcut(k)
}

// handleShortcut adds k to the shortcut buffer and runs the matching action.
func (a *Application[T]) handleShortcut(k key.Key) bool {
	if a.bar.EntryShown() || k.IsZero() {
		return false
	}

	a.shortcut = append(a.shortcut, k)

	action, ok := a.mappings.Lookup(a.currentMode, a.shortcut)
	if !ok {
		if !a.mappings.HasPotentialMatch(a.currentMode, a.shortcut) {
			a.logger.Debug("no mapping", "mode", a.currentMode, "keys", a.shortcut.String())
			a.Reset()
		}
		return false
	}

	a.logger.Debug("mapping matched", "mode", a.currentMode, "keys", a.shortcut.String(), "action", action)
	a.Reset()

	cmd := ClassifyAction(action)
	if cmd.Kind == Incomplete {
		a.inputCommand(cmd.Text)
		return true
	}
	a.HandleCommand(cmd.Text, true)
	return false
}

// inputCommand shows the entry pre-filled with text for the user to finish.
func (a *Application[T]) inputCommand(text string) {
	a.bar.ShowEntry()
	text = a.substitute(text)
	if !strings.Contains(text, " ") {
		text += " "
	}
	a.bar.SetCommand(text)
}

// substitute replaces "<name>" placeholders by their variable values.
func (a *Application[T]) substitute(text string) string {
	names := make([]string, 0, len(a.variables))
	for name := range a.variables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		placeholder := "<" + name + ">"
		if strings.Contains(text, placeholder) {
			text = strings.ReplaceAll(text, placeholder, a.variables[name]())
		}
	}
	return text
}

// HandleCommand dispatches text activated in the entry. ok is false for an
// empty entry, which is ignored.
func (a *Application[T]) HandleCommand(text string, ok bool) {
	if !ok {
		return
	}

	out := a.dispatcher.Dispatch(text)
	switch out.Kind {
	case dispatcher.OutcomeError:
		a.logger.Warn("command failed", "line", text, "error", out.Err)
		a.SetMode(mode.Normal)
		a.Error(out.Message)
	case dispatcher.OutcomeCommand:
		if !out.Delivered {
			a.logger.Debug("no command callback", "line", text)
		}
	case dispatcher.OutcomeIgnored:
		if out.Directive != nil {
			a.logger.Debug("directive not applied at runtime", "line", text, "directive", fmt.Sprintf("%T", out.Directive))
		}
	}
	a.bar.HideEntry()
}

// SetMode switches the current mode, clears the shortcut buffer and
// updates the mode indicator.
func (a *Application[T]) SetMode(name string) {
	if name != a.currentMode {
		a.logger.Debug("mode changed", "from", a.currentMode, "to", name)
	}
	a.currentMode = name
	a.shortcut = nil
	a.showMode()
}

// showMode shows the mode name unless it is normal or command.
func (a *Application[T]) showMode() {
	a.bar.Message().SetText(mode.Indicator(a.currentMode))
}

// Reset restores the bar colors, hides the bar, refreshes the mode indicator
// and clears the shortcut buffer.
func (a *Application[T]) Reset() {
	a.bar.OverrideBackground(statusbar.Transparent)
	a.bar.OverrideForeground(a.foreground)
	a.bar.Hide()
	a.showMode()
	a.shortcut = nil
}

// Error shows msg in the status bar with the error colors until the next
// reset.
func (a *Application[T]) Error(msg string) {
	a.bar.Message().SetText(msg)
	a.bar.OverrideBackground(a.errorBg)
	a.bar.OverrideForeground(a.errorFg)
}
