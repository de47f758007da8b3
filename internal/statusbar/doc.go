// Package statusbar provides the command line shown at the bottom of the
// window: a prompt label, a single-line entry and a set of text items.
//
// The controller never draws anything itself. It talks to the widget toolkit
// through the small interfaces in widget.go (show/hide, text, colors and the
// entry's activate/changed signals). The in-memory widgets in memory.go
// implement those interfaces without a toolkit; the terminal front end
// renders them and tests inspect them directly.
//
// # Entry States
//
// The entry is either hidden (no text) or shown (editable and focused).
// ShowEntry and HideEntry both clear the text. SetCommand replaces the text
// and moves the cursor to the end without emitting the changed signal.
//
// # Word Deletion
//
// DeletePreviousWord removes the current selection when there is one.
// Otherwise it scans backward from the cursor, first over whitespace and
// then over non-whitespace, and deletes from there up to the cursor.
package statusbar
