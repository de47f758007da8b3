// Package app provides the application core: the mode and shortcut state
// machine behind the status bar.
//
// Key presses arrive through KeyPress, already normalized into key.Key
// values. In normal mode ':' opens the command entry and Escape resets the
// bar. In command mode Escape returns to normal mode. Every other key feeds
// the shortcut buffer, which is matched against the mappings of the current
// mode:
//
//   - an exact match resets the buffer and runs the mapped action;
//   - a prefix of some mapping keeps accumulating;
//   - anything else resets the buffer.
//
// An action starting with ':' is a command template. With the "<Enter>"
// marker it runs right away; without it the text is placed in the entry for
// the user to finish, after "<name>" placeholders are replaced by the
// registered variables. Any other action runs as a command directly.
//
// Commands are parsed by the dispatcher and delivered to the callback set
// with ConnectCommand. Parse failures switch back to normal mode and show
// the message in the status bar with the error colors.
//
// The Application is single-threaded. All methods must be called from the
// toolkit's event loop.
package app
