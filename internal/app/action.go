package app

import (
	"strings"
)

// EnterMarker ends a command template that runs without user input.
const EnterMarker = "<Enter>"

// ShortcutKind tells whether a mapped command runs immediately.
type ShortcutKind uint8

const (
	// Complete commands are dispatched as soon as the shortcut matches.
	Complete ShortcutKind = iota
	// Incomplete commands are placed in the entry for the user to finish.
	Incomplete
)

// String returns the kind name.
func (k ShortcutKind) String() string {
	if k == Incomplete {
		return "incomplete"
	}
	return "complete"
}

// ShortcutCommand is the command derived from a mapped action.
type ShortcutCommand struct {
	Kind ShortcutKind
	Text string
}

// ClassifyAction converts a mapped action into a command.
//
//	":open<Enter>"  -> Complete("open")
//	":open "        -> Incomplete("open ")
//	"open"          -> Complete("open")
//
// Text after the marker is dropped.
func ClassifyAction(action string) ShortcutCommand {
	rest, ok := strings.CutPrefix(action, ":")
	if !ok {
		return ShortcutCommand{Kind: Complete, Text: action}
	}
	if i := strings.Index(rest, EnterMarker); i >= 0 {
		return ShortcutCommand{Kind: Complete, Text: rest[:i]}
	}
	return ShortcutCommand{Kind: Incomplete, Text: rest}
}
