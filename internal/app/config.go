package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/modebar/internal/input/keymap"
	"github.com/dshills/modebar/internal/settings"
)

// ParseConfig reads the mappings file at path and adds its mappings.
func (a *Application[T]) ParseConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return NewOperationError("open config", path, err)
	}
	defer f.Close()

	if err := a.ParseConfigReader(f); err != nil {
		return NewOperationError("parse config", path, err)
	}
	a.logger.Info("config loaded", "path", path, "modes", len(a.mappings.Modes()))
	return nil
}

// ParseConfigReader adds the mappings read from r. Only map directives are
// applied; custom commands and include, set and unmap directives are
// accepted and left alone.
func (a *Application[T]) ParseConfigReader(r io.Reader) error {
	directives, err := a.dispatcher.Parser().Parse(r)
	if err != nil {
		return err
	}

	for _, d := range directives {
		switch d := d.(type) {
		case settings.Map:
			name, ok := a.modes.Name(d.Mode)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownModePrefix, d.Mode)
			}
			a.mappings.Insert(name, d.Keys, d.Action)
		case settings.Custom[T]:
			a.logger.Debug("command in config not run")
		case settings.Include:
			a.logger.Debug("include not applied", "path", d.Path)
		case settings.Set:
			a.logger.Debug("setting not applied", "name", d.Name)
		case settings.Unmap:
			a.logger.Debug("unmap not applied", "mode", d.Mode, "keys", d.Keys.String())
		}
	}
	return nil
}

// ReloadConfig replaces all mappings by those of path. On failure the
// previous mappings are kept.
func (a *Application[T]) ReloadConfig(path string) error {
	previous := a.mappings
	a.mappings = keymap.NewTable()

	if err := a.ParseConfig(path); err != nil {
		a.mappings = previous
		return err
	}
	a.shortcut = nil
	return nil
}
