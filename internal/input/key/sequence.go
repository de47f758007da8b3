package key

import "strings"

// Sequence represents a series of keys forming a shortcut.
// Examples: "gg" (go to top), "<C-w>l" (focus right).
type Sequence []Key

// Equals returns true if two sequences hold the same keys in the same order.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, k := range s {
		if k != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
// Every sequence has the empty prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Clone returns a copy that shares no storage with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String returns the sequence in Vim notation, the same form
// ParseSequence accepts. Examples: "gg", "<C-w>l".
func (s Sequence) String() string {
	var sb strings.Builder
	for _, k := range s {
		sb.WriteString(k.String())
	}
	return sb.String()
}
