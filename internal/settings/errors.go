package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by a CommandFactory.
var (
	// ErrUnknownCommand indicates the command name is not defined.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument indicates the command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
)

// ErrorType classifies parse failures.
type ErrorType uint8

const (
	// MissingArgument means a directive or command lacks its argument.
	MissingArgument ErrorType = iota
	// NoCommand means the line holds no directive (blank or comment).
	NoCommand
	// Parse means a token did not fit the grammar.
	Parse
	// UnknownCommand means the first word names no known command.
	UnknownCommand
)

// String returns the name of the error type.
func (t ErrorType) String() string {
	switch t {
	case MissingArgument:
		return "MissingArgument"
	case NoCommand:
		return "NoCommand"
	case Parse:
		return "Parse"
	case UnknownCommand:
		return "UnknownCommand"
	default:
		return fmt.Sprintf("ErrorType(%d)", t)
	}
}

// Error is a parse failure.
type Error struct {
	Type ErrorType

	// Unexpected is the offending token, or the unknown command name.
	Unexpected string

	// Expected describes what the grammar wanted instead.
	Expected string

	// Line is the 1-based line number, or 0 when parsing a single line.
	Line int
}

func (e *Error) Error() string {
	var msg string
	switch e.Type {
	case MissingArgument:
		msg = "argument required"
	case NoCommand:
		msg = "no command"
	case Parse:
		msg = fmt.Sprintf("unexpected %s, expecting %s", e.Unexpected, e.Expected)
	case UnknownCommand:
		msg = fmt.Sprintf("unknown command %s", e.Unexpected)
	default:
		msg = e.Type.String()
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Is reports whether target is an *Error of the same type, so callers can
// write errors.Is(err, &settings.Error{Type: settings.NoCommand}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

// IsNoCommand returns true if err is a NoCommand error.
func IsNoCommand(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == NoCommand
}

func parseError(unexpected, expected string) *Error {
	if unexpected == "" {
		unexpected = "end of line"
	}
	return &Error{Type: Parse, Unexpected: unexpected, Expected: expected}
}
