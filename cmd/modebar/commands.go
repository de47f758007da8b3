package main

import "github.com/dshills/modebar/internal/settings"

// Command is a command the modebar demo understands.
type Command interface {
	command()
}

// Open prints the URL above the bar.
type Open struct{ URL string }

// Echo shows text in the status bar.
type Echo struct{ Text string }

// Quit exits the program.
type Quit struct{}

// Insert switches to insert mode.
type Insert struct{}

// Normal switches to normal mode.
type Normal struct{}

// Reload reloads the mappings file.
type Reload struct{}

func (Open) command()   {}
func (Echo) command()   {}
func (Quit) command()   {}
func (Insert) command() {}
func (Normal) command() {}
func (Reload) command() {}

// commands lists the command names and their argument rules.
var commands = settings.CommandSet[Command]{
	"open":   settings.OneArg(func(arg string) Command { return Open{URL: arg} }),
	"echo":   settings.OptionalArg(func(arg string) Command { return Echo{Text: arg} }),
	"quit":   settings.NoArgs[Command](Quit{}),
	"insert": settings.NoArgs[Command](Insert{}),
	"normal": settings.NoArgs[Command](Normal{}),
	"reload": settings.NoArgs[Command](Reload{}),
}
