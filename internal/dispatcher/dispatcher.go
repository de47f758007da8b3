package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/modebar/internal/settings"
)

// OutcomeKind classifies the result of a dispatch.
type OutcomeKind uint8

const (
	// OutcomeIgnored means the line produced nothing to run.
	OutcomeIgnored OutcomeKind = iota
	// OutcomeCommand means a custom command was parsed.
	OutcomeCommand
	// OutcomeError means the line failed and Message should be shown.
	OutcomeError
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCommand:
		return "command"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", k)
	}
}

// Outcome is the result of dispatching one line.
type Outcome[T any] struct {
	Kind OutcomeKind

	// Command is set for OutcomeCommand.
	Command T

	// Directive is the parsed directive, nil on failure.
	Directive settings.Directive

	// Delivered is true when a callback received Command.
	Delivered bool

	// Message is the user-facing error text for OutcomeError.
	Message string

	// Err is the underlying error, if any. NoCommand lines carry their
	// error with an OutcomeIgnored kind.
	Err error
}

// Dispatcher parses command lines and delivers custom commands to a single
// callback.
//
// Dispatcher is not safe for concurrent use. Metrics may be read from any
// goroutine.
type Dispatcher[T any] struct {
	parser   *settings.Parser[T]
	callback func(T)

	postHooks []PostDispatchHook[T]

	metrics *Metrics
}

// New creates a dispatcher over parser.
func New[T any](parser *settings.Parser[T]) *Dispatcher[T] {
	return &Dispatcher[T]{
		parser:  parser,
		metrics: NewMetrics(),
	}
}

// Parser returns the settings parser.
func (d *Dispatcher[T]) Parser() *settings.Parser[T] {
	return d.parser
}

// ConnectCommand registers the command callback, replacing any previous one.
// A nil callback disconnects.
func (d *Dispatcher[T]) ConnectCommand(fn func(T)) {
	d.callback = fn
}

// RegisterPostHook adds a hook run after dispatch.
func (d *Dispatcher[T]) RegisterPostHook(h PostDispatchHook[T]) {
	d.postHooks = append(d.postHooks, h)
}

// Metrics returns the dispatch statistics.
func (d *Dispatcher[T]) Metrics() *Metrics {
	return d.metrics
}

// Dispatch parses line and, for a custom command, calls the callback.
func (d *Dispatcher[T]) Dispatch(line string) Outcome[T] {
	start := time.Now()

	outcome := d.Classify(line)
	if outcome.Kind == OutcomeCommand && d.callback != nil {
		if perr := d.deliver(outcome.Command); perr != nil {
			outcome.Kind = OutcomeError
			outcome.Err = perr
			outcome.Message = fmt.Sprintf("Command failed: %v", perr.Value)
		} else {
			outcome.Delivered = true
		}
	}

	d.runPostHooks(line, &outcome)
	d.metrics.RecordDispatch(outcome.Kind, time.Since(start))
	return outcome
}

// Classify parses line without running any callback or hook.
func (d *Dispatcher[T]) Classify(line string) Outcome[T] {
	directive, err := d.parser.ParseLine(line)
	if err != nil {
		msg, show := Message(err)
		if !show {
			return Outcome[T]{Kind: OutcomeIgnored, Err: err}
		}
		return Outcome[T]{Kind: OutcomeError, Message: msg, Err: err}
	}

	if custom, ok := directive.(settings.Custom[T]); ok {
		return Outcome[T]{Kind: OutcomeCommand, Command: custom.Command, Directive: directive}
	}
	return Outcome[T]{Kind: OutcomeIgnored, Directive: directive}
}

// deliver runs the callback with panic recovery.
func (d *Dispatcher[T]) deliver(cmd T) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			perr = &PanicError{Value: r, Stack: stack[:n]}
			d.metrics.RecordPanic()
		}
	}()

	d.callback(cmd)
	return nil
}
