// Package key provides the normalized key values used by shortcut handling.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a special key (Escape, Enter, F5, ...) or a rune key
//   - Key: A Code plus the rune it carries and the control-modifier flag
//   - Sequence: An ordered series of keys forming a shortcut
//
// # Key Specifications
//
// Mapping files write keys the Vim way:
//
//   - Simple keys: "a", "A", "1", ":"
//   - Named keys: "<Enter>", "<Esc>", "<Tab>", "<Space>", "<F5>", "<lt>"
//   - With control: "<C-a>", "<C-Enter>"
//
// A sequence is written without separators: "gg", "<C-w>l", "d<Space>".
//
// # Normalization
//
// Normalize converts a raw tcell key code, rune and modifier mask into a Key.
// Codes with no Key equivalent (mouse wheel pseudo keys, F13 and up, NUL, ...)
// report false and must be ignored by the caller.
package key
