// Package dispatcher turns text typed in the command line into application
// commands.
//
// Dispatch feeds a line to the settings parser and classifies the result:
//
//   - a custom command is handed to the registered callback
//     (OutcomeCommand);
//   - any other directive, and a blank line, is accepted and dropped
//     (OutcomeIgnored);
//   - a parse failure becomes a user-facing message (OutcomeError).
//
// At most one callback is registered; ConnectCommand replaces the previous
// one. A panicking callback is recovered and reported as an error outcome.
//
// # Hooks
//
// Post-dispatch hooks see every outcome after the callback ran. Metrics
// counts outcomes by kind.
//
//	d := dispatcher.New(parser)
//	d.ConnectCommand(func(cmd AppCommand) { ... })
//	d.RegisterPostHook(dispatcher.PostDispatchFunc[AppCommand](func(line string, out *dispatcher.Outcome[AppCommand]) {
//	    log.Debug("dispatched", "line", line, "kind", out.Kind)
//	}))
//
//	out := d.Dispatch("open example.com")
package dispatcher
