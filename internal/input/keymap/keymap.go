package keymap

import (
	"sort"

	"github.com/dshills/modebar/internal/input/key"
)

// Binding is a single mapping from a key sequence to an action.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	Keys key.Sequence

	// Action is the raw, unparsed action string.
	// Examples: ":open ", ":quit<Enter>", "reload"
	Action string
}

// Table holds the mappings of every mode.
//
// Table is not safe for concurrent use; the application core owns it and
// mutates it from the event loop only.
type Table struct {
	// modes holds one prefix tree per mode name.
	modes map[string]*prefixNode
}

type prefixNode struct {
	children map[key.Key]*prefixNode
	action   string
	bound    bool
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Key]*prefixNode)}
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{modes: make(map[string]*prefixNode)}
}

// Insert maps keys to action in mode, replacing any previous action for the
// same (mode, keys) pair. An empty key sequence is ignored.
func (t *Table) Insert(mode string, keys key.Sequence, action string) {
	if len(keys) == 0 {
		return
	}

	node, ok := t.modes[mode]
	if !ok {
		node = newPrefixNode()
		t.modes[mode] = node
	}

	// Navigate/create path for each key in sequence
	for _, k := range keys {
		child, ok := node.children[k]
		if !ok {
			child = newPrefixNode()
			node.children[k] = child
		}
		node = child
	}

	node.action = action
	node.bound = true
}

// Lookup returns the action mapped to exactly keys in mode.
func (t *Table) Lookup(mode string, keys key.Sequence) (string, bool) {
	node := t.find(mode, keys)
	if node == nil || !node.bound {
		return "", false
	}
	return node.action, true
}

// HasPotentialMatch returns true if any mapping in mode starts with prefix,
// including a mapping for prefix itself.
func (t *Table) HasPotentialMatch(mode string, prefix key.Sequence) bool {
	node := t.find(mode, prefix)
	if node == nil {
		return false
	}
	return node.bound || len(node.children) > 0
}

// find walks the tree of mode along keys and returns the node reached, or
// nil if the path does not exist.
func (t *Table) find(mode string, keys key.Sequence) *prefixNode {
	node, ok := t.modes[mode]
	if !ok {
		return nil
	}
	for _, k := range keys {
		child, ok := node.children[k]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Clear removes every mapping of every mode.
func (t *Table) Clear() {
	t.modes = make(map[string]*prefixNode)
}

// Len returns the number of mappings in mode.
func (t *Table) Len(mode string) int {
	root, ok := t.modes[mode]
	if !ok {
		return 0
	}
	return countBound(root)
}

func countBound(node *prefixNode) int {
	n := 0
	if node.bound {
		n++
	}
	for _, child := range node.children {
		n += countBound(child)
	}
	return n
}

// Modes returns the names of all modes that have mappings, sorted.
func (t *Table) Modes() []string {
	names := make([]string, 0, len(t.modes))
	for name, root := range t.modes {
		if countBound(root) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Bindings returns the mappings of mode sorted by their key notation.
func (t *Table) Bindings(mode string) []Binding {
	root, ok := t.modes[mode]
	if !ok {
		return nil
	}

	bindings := make([]Binding, 0)
	var walk func(node *prefixNode, path key.Sequence)
	walk = func(node *prefixNode, path key.Sequence) {
		if node.bound {
			bindings = append(bindings, Binding{Keys: path.Clone(), Action: node.action})
		}
		for k, child := range node.children {
			walk(child, append(path, k))
		}
	}
	walk(root, make(key.Sequence, 0, 4))

	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].Keys.String() < bindings[j].Keys.String()
	})
	return bindings
}
