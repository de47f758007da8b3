// Package mode defines the input modes of the application and the table that
// declares which modes accept mappings.
//
// Two modes are built in. Normal mode runs shortcuts with the status-bar
// entry hidden. Command mode shows the entry for typing and leaves on
// Escape. Every other declared mode routes keys like normal mode, and its
// name is shown in the status bar while it is active.
package mode

import (
	"fmt"
	"sort"
	"strings"
)

// Standard mode names.
const (
	Normal  = "normal"
	Command = "command"
)

// IsBuiltin returns true for the normal and command modes.
func IsBuiltin(name string) bool {
	return name == Normal || name == Command
}

// Indicator returns the status text shown while name is the current mode.
// Built-in modes show nothing.
func Indicator(name string) string {
	if IsBuiltin(name) {
		return ""
	}
	return name
}

// Table maps the prefix used in mapping directives to the mode name.
// With {"n": "normal", "i": "insert"}, "nmap" adds a normal-mode mapping and
// "imap" an insert-mode one.
type Table map[string]string

// DefaultTable returns a table declaring only normal mode under "n".
func DefaultTable() Table {
	return Table{"n": Normal}
}

// Prefixes returns the declared prefixes, sorted.
func (t Table) Prefixes() []string {
	prefixes := make([]string, 0, len(t))
	for p := range t {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Name returns the mode declared under prefix.
func (t Table) Name(prefix string) (string, bool) {
	name, ok := t[prefix]
	return name, ok
}

// Names returns the distinct declared mode names, sorted.
func (t Table) Names() []string {
	seen := make(map[string]bool, len(t))
	names := make([]string, 0, len(t))
	for _, name := range t {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Validate checks that prefixes and names are usable in directives.
func (t Table) Validate() error {
	for prefix, name := range t {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("mode prefix %q: empty mode name", prefix)
		}
		if strings.ContainsAny(prefix, " \t") {
			return fmt.Errorf("mode prefix %q: contains whitespace", prefix)
		}
		if strings.HasSuffix(prefix, "un") {
			return fmt.Errorf("mode prefix %q: ambiguous with unmap", prefix)
		}
	}
	return nil
}

// Clone returns a copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for p, n := range t {
		out[p] = n
	}
	return out
}
