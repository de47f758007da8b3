package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrUnknownVariable is returned for a name no script registered.
	ErrUnknownVariable = errors.New("unknown variable")
)
