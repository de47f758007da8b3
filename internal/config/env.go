package config

import (
	"os"
	"strings"
)

// EnvPrefix prefixes the environment variables that override settings.
const EnvPrefix = "MODEBAR_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with MODEBAR_LOG_LEVEL, MODEBAR_MAPPINGS,
// MODEBAR_WATCH and MODEBAR_LUA from the process environment.
// Empty values are treated as set.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom is ApplyEnv reading variables through lookup.
func (c *Config) ApplyEnvFrom(lookup LookupFunc) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "MAPPINGS"); ok {
		c.Mappings = v
	}
	if v, ok := lookup(EnvPrefix + "LUA"); ok {
		c.Lua = v
	}
	if v, ok := lookup(EnvPrefix + "WATCH"); ok {
		b, ok := parseBool(v)
		if !ok {
			return &FieldError{Field: EnvPrefix + "WATCH", Value: v, Err: ErrInvalidValue}
		}
		c.Watch = b
	}
	return nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}
