package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dshills/modebar/internal/app"
	"github.com/dshills/modebar/internal/config"
	"github.com/dshills/modebar/internal/config/watcher"
	"github.com/dshills/modebar/internal/dispatcher"
	"github.com/dshills/modebar/internal/input/key"
	"github.com/dshills/modebar/internal/input/mode"
	"github.com/dshills/modebar/internal/plugin/lua"
	"github.com/dshills/modebar/internal/statusbar"
	"github.com/dshills/modebar/internal/ui/terminal"
)

// session wires the application core to the terminal, the mappings
// watcher and the Lua variables.
type session struct {
	cfg    *config.Config
	logger *app.Logger

	app     *app.Application[Command]
	ui      *terminal.UI
	pending *statusbar.Item
	vars    *lua.Variables
	watcher *watcher.Watcher
}

// newSession builds a session drawing on term. Problems with the mappings
// file or the Lua script do not fail the session; they are shown in the
// status bar.
func newSession(cfg *config.Config, term *terminal.Terminal, logger *app.Logger) (*session, error) {
	modes, err := cfg.ModeTable()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrInvalidModes, err)
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	bar := statusbar.New(&statusbar.MemoryToolkit{})
	core, err := app.New(app.Options[Command]{
		Modes:           modes,
		Commands:        commands.Factory(),
		Foreground:      palette.Foreground,
		ErrorBackground: palette.ErrorBackground,
		ErrorForeground: palette.ErrorForeground,
		Logger:          logger,
	}, bar)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		logger:  logger.WithComponent("session"),
		app:     core,
		pending: core.AddStatusBarItem(),
	}
	s.ui, err = terminal.New(term, bar, s)
	if err != nil {
		return nil, err
	}
	core.ConnectCommand(s.handle)
	core.Dispatcher().RegisterPostHook(dispatcher.PostDispatchFunc[Command](s.dispatched))

	var errs app.ErrorList
	errs.Add(s.loadMappings())
	errs.Add(s.loadVariables())
	if err := errs.AsError(); err != nil {
		s.logger.Warn("startup problems", "error", err)
		core.Error(err.Error())
	}
	return s, nil
}

// loadMappings reads the mappings file. A missing file is not an error.
func (s *session) loadMappings() error {
	path := s.cfg.MappingsPath()
	err := s.app.ParseConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("no mappings file", "path", path)
		return nil
	}
	return err
}

// loadVariables runs the Lua script, if any, and registers its variables.
func (s *session) loadVariables() error {
	path := s.cfg.LuaPath()
	if path == "" {
		return nil
	}

	s.vars = lua.NewVariables(lua.WithErrorFunc(func(name string, err error) {
		s.logger.Warn("variable failed", "name", name, "error", err)
	}))
	if err := s.vars.LoadFile(path); err != nil {
		return app.NewOperationError("load variables", path, err)
	}
	s.vars.Register(func(name string, value func() string) {
		s.app.AddVariable(name, value)
	})
	s.logger.Info("variables loaded", "path", path, "names", s.vars.Names())
	return nil
}

// watch reloads the mappings file on the event loop whenever it changes.
func (s *session) watch() error {
	if !s.cfg.Watch {
		return nil
	}

	path := s.cfg.MappingsPath()
	w := watcher.New(watcher.WithErrorHandler(func(err error) {
		s.logger.Warn("watcher error", "error", err)
	}))
	if err := w.Watch(path); err != nil {
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		if err := s.ui.Post(s.reload); err != nil {
			s.logger.Warn("reload not posted", "error", err)
		}
	})
	if err := w.Start(); err != nil {
		return err
	}
	s.watcher = w
	s.logger.Info("watching", "files", w.WatchedFiles())
	return nil
}

// reload replaces the mappings by the file's current content.
func (s *session) reload() {
	path := s.cfg.MappingsPath()
	if err := s.app.ReloadConfig(path); err != nil {
		s.logger.Warn("reload failed", "path", path, "error", err)
		s.app.Error(err.Error())
		return
	}
	s.logger.Info("mappings reloaded", "path", path)
}

// KeyPress forwards k to the application and shows the pending shortcut.
func (s *session) KeyPress(k key.Key) bool {
	consumed := s.app.KeyPress(k)
	s.pending.SetText(s.app.Shortcut().String())
	return consumed
}

// dispatched logs every command line and rings the bell when one fails.
func (s *session) dispatched(line string, out *dispatcher.Outcome[Command]) {
	s.logger.Debug("dispatched", "line", line, "kind", out.Kind)
	if out.Kind == dispatcher.OutcomeError {
		s.ui.Beep()
	}
}

// handle runs a dispatched command.
func (s *session) handle(cmd Command) {
	s.logger.Debug("command", "type", fmt.Sprintf("%T", cmd))

	switch cmd := cmd.(type) {
	case Open:
		s.ui.Print("open " + cmd.URL)
	case Echo:
		s.app.StatusBar().Message().SetText(cmd.Text)
	case Quit:
		s.ui.Quit()
	case Insert:
		s.app.SetMode("insert")
	case Normal:
		s.app.SetMode(mode.Normal)
	case Reload:
		s.reload()
	}
}

// run starts the watcher and drives the event loop until quit.
func (s *session) run(ctx context.Context) error {
	if err := s.watch(); err != nil {
		s.logger.Warn("not watching mappings", "error", err)
	}
	return s.ui.Run(ctx)
}

// close stops the watcher, releases the Lua state and logs the dispatch
// statistics.
func (s *session) close() {
	stats := s.app.Dispatcher().Metrics().Snapshot()
	s.logger.Info("dispatch stats",
		"commands", stats.Commands,
		"ignored", stats.Ignored,
		"errors", stats.Errors,
		"panics", stats.Panics,
		"max", stats.MaxDuration)

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("stopping watcher", "error", err)
		}
	}
	if s.vars != nil {
		_ = s.vars.Close()
	}
}
