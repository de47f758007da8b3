package dispatcher

// PostDispatchHook is called after a line was dispatched.
type PostDispatchHook[T any] interface {
	PostDispatch(line string, outcome *Outcome[T])
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc[T any] func(line string, outcome *Outcome[T])

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc[T]) PostDispatch(line string, outcome *Outcome[T]) {
	f(line, outcome)
}

func (d *Dispatcher[T]) runPostHooks(line string, outcome *Outcome[T]) {
	for _, h := range d.postHooks {
		h.PostDispatch(line, outcome)
	}
}
