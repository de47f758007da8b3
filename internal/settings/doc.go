// Package settings parses the line-oriented mapping configuration.
//
// Each non-empty line is one directive:
//
//	# comment
//	include other.conf
//	set hint-chars = asdf
//	nmap gg :go-to-top<Enter>
//	nmap o :open
//	nunmap gg
//	open example.com
//
// "map" and "unmap" are prefixed by a declared mapping mode ("n" above).
// Any other first word names a custom command; its constructor comes from
// the CommandFactory given to the Parser, so the application defines its own
// command type:
//
//	type AppCommand interface{ isAppCommand() }
//	type Open struct{ URL string }
//	type Quit struct{}
//
//	commands := settings.CommandSet[AppCommand]{
//	    "open": settings.OneArg(func(s string) AppCommand { return Open{URL: s} }),
//	    "quit": settings.NoArgs[AppCommand](Quit{}),
//	}
//	parser := settings.NewParser(commands.Factory(), []string{"n"})
//
// Failures are *Error values carrying an ErrorType.
package settings
