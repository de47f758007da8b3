package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/modebar/internal/settings"
)

// Dispatcher errors.
var (
	// ErrPanic indicates the command callback panicked.
	ErrPanic = errors.New("dispatcher: command callback panic")
)

// Message returns the text shown to the user for err. It returns false for
// errors that are swallowed (an empty line).
func Message(err error) (string, bool) {
	var perr *settings.Error
	if !errors.As(err, &perr) {
		if err == nil {
			return "", false
		}
		return err.Error(), true
	}

	switch perr.Type {
	case settings.MissingArgument:
		return "Argument required", true
	case settings.NoCommand:
		return "", false
	case settings.Parse:
		return fmt.Sprintf("Parse error: unexpected %s, expecting: %s", perr.Unexpected, perr.Expected), true
	case settings.UnknownCommand:
		return fmt.Sprintf("Not a command: %s", perr.Unexpected), true
	default:
		return perr.Error(), true
	}
}

// PanicError wraps a value recovered from the command callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v\n%s", ErrPanic, e.Value, e.Stack)
}

// Unwrap returns ErrPanic.
func (e *PanicError) Unwrap() error {
	return ErrPanic
}
