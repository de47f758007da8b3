package settings

import (
	"fmt"
	"sort"
)

// CommandSet maps command names to constructors taking the argument string.
type CommandSet[T any] map[string]func(args string) (T, error)

// Factory returns a CommandFactory backed by the set.
func (s CommandSet[T]) Factory() CommandFactory[T] {
	return func(name, args string) (T, error) {
		build, ok := s[name]
		if !ok {
			var zero T
			return zero, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}
		return build(args)
	}
}

// Names returns the command names, sorted.
func (s CommandSet[T]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoArgs returns a constructor for a command without argument.
func NoArgs[T any](cmd T) func(string) (T, error) {
	return func(args string) (T, error) {
		if args != "" {
			var zero T
			tok, _ := cutWord(args)
			return zero, parseError(tok, "end of line")
		}
		return cmd, nil
	}
}

// OneArg returns a constructor for a command whose whole argument string is
// a single required value.
func OneArg[T any](build func(arg string) T) func(string) (T, error) {
	return func(args string) (T, error) {
		if args == "" {
			var zero T
			return zero, ErrMissingArgument
		}
		return build(args), nil
	}
}

// OptionalArg returns a constructor for a command whose argument may be empty.
func OptionalArg[T any](build func(arg string) T) func(string) (T, error) {
	return func(args string) (T, error) {
		return build(args), nil
	}
}
