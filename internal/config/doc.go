// Package config loads the modebar settings file.
//
// Settings are read from TOML. When no path is given the file is searched
// for in the XDG config directories as modebar/config.toml; a missing file
// yields the defaults. Environment variables prefixed with MODEBAR_ override
// file values:
//
//	# ~/.config/modebar/config.toml
//	log_level = "info"
//	mappings = "~/.config/modebar/main.conf"
//	watch = true
//
//	[modes]
//	n = "normal"
//	i = "insert"
//
//	[colors]
//	error_background = "#ff0000"
//	error_foreground = "#ffffff"
//
// The mappings file referenced by the settings uses the line grammar of
// package settings and is loaded by the application core.
//
// # Sub-packages
//
//   - watcher: reloads the mappings file when it changes on disk
package config
