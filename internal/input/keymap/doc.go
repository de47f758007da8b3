// Package keymap provides the per-mode mapping table from key sequences to
// action strings.
//
// The table keeps one prefix tree per mode. Lookup is exact: a sequence
// resolves to an action only when a mapping was inserted for exactly that
// sequence in that mode. HasPotentialMatch answers whether more keys could
// still complete a mapping, which is what shortcut accumulation needs.
//
// # Usage
//
//	table := keymap.NewTable()
//	table.Insert("normal", key.MustParseSequence("gg"), ":go-to-top<Enter>")
//
//	if action, ok := table.Lookup("normal", buffer); ok {
//	    // run action
//	} else if table.HasPotentialMatch("normal", buffer) {
//	    // wait for more keys
//	}
//
// Inserting the same (mode, keys) pair twice keeps the last action.
package keymap
