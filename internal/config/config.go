package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/modebar/internal/input/mode"
	"github.com/dshills/modebar/internal/statusbar"
)

// AppName is the directory name used under the XDG config home.
const AppName = "modebar"

// Config holds the modebar settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Mappings is the path of the mappings file. A leading ~ is expanded.
	Mappings string `toml:"mappings"`

	// Watch reloads the mappings file when it changes.
	Watch bool `toml:"watch"`

	// Lua is an optional script registering command variables.
	Lua string `toml:"lua"`

	// Modes maps mapping prefixes to mode names.
	Modes map[string]string `toml:"modes"`

	Colors Colors `toml:"colors"`
}

// Colors holds the status bar colors as names or hex strings.
type Colors struct {
	ErrorBackground string `toml:"error_background"`
	ErrorForeground string `toml:"error_foreground"`
	Foreground      string `toml:"foreground"`
}

// Palette is the parsed form of Colors.
type Palette struct {
	ErrorBackground statusbar.Color
	ErrorForeground statusbar.Color
	Foreground      statusbar.Color
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Mappings: DefaultMappingsPath(),
		Watch:    true,
		Modes: map[string]string{
			"n": mode.Normal,
			"i": "insert",
		},
		Colors: Colors{
			ErrorBackground: "red",
			ErrorForeground: "white",
		},
	}
}

// DefaultPath returns where the settings file is expected.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// DefaultMappingsPath returns where the mappings file is expected.
func DefaultMappingsPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "main.conf")
}

// Load reads the settings at path over the defaults. An empty path searches
// the XDG config directories. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.toml"))
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	f, err := os.Open(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	return parse(path, f)
}

// LoadReader reads settings from r over the defaults.
func LoadReader(r io.Reader) (*Config, error) {
	return parse("<reader>", r)
}

func parse(source string, r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	modes := cfg.Modes
	cfg.Modes = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if cfg.Modes == nil {
		cfg.Modes = modes
	}
	return cfg, nil
}

// MappingsPath returns the mappings path with ~ expanded.
func (c *Config) MappingsPath() string {
	return ExpandPath(c.Mappings)
}

// LuaPath returns the Lua script path with ~ expanded, or "" if unset.
func (c *Config) LuaPath() string {
	if c.Lua == "" {
		return ""
	}
	return ExpandPath(c.Lua)
}

// ModeTable returns the declared modes as a validated table.
func (c *Config) ModeTable() (mode.Table, error) {
	if len(c.Modes) == 0 {
		return mode.DefaultTable(), nil
	}
	table := make(mode.Table, len(c.Modes))
	for prefix, name := range c.Modes {
		table[prefix] = name
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Palette parses the configured colors. Unset colors stay transparent.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.ErrorBackground, err = parseField("colors.error_background", c.Colors.ErrorBackground); err != nil {
		return Palette{}, err
	}
	if p.ErrorForeground, err = parseField("colors.error_foreground", c.Colors.ErrorForeground); err != nil {
		return Palette{}, err
	}
	if p.Foreground, err = parseField("colors.foreground", c.Colors.Foreground); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func parseField(field, value string) (statusbar.Color, error) {
	color, err := ParseColor(value)
	if err != nil {
		return statusbar.Color{}, &FieldError{Field: field, Value: value, Err: err}
	}
	return color, nil
}

var namedColors = map[string]statusbar.Color{
	"transparent": statusbar.Transparent,
	"red":         statusbar.Red,
	"white":       statusbar.White,
	"blue":        statusbar.Blue,
	"orange":      statusbar.Orange,
	"black":       {A: 1},
}

// ParseColor parses a color name or a "#rgb" / "#rrggbb" hex string.
// The empty string is transparent.
func ParseColor(s string) (statusbar.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return statusbar.Transparent, nil
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return statusbar.Color{}, ErrInvalidColor
	}
	c = c.Clamped()
	return statusbar.Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// ExpandPath replaces a leading ~ by the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
