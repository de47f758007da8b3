package settings

import (
	"github.com/dshills/modebar/internal/input/key"
)

// Directive is one parsed configuration line: Custom[T], Include, Map, Set
// or Unmap.
type Directive interface {
	directive()
}

// Custom is an application command.
type Custom[T any] struct {
	Command T
}

// Include names another file to read.
type Include struct {
	Path string
}

// Map binds Keys to Action in the mode declared under the prefix Mode.
type Map struct {
	Action string
	Keys   key.Sequence
	Mode   string
}

// Set assigns a setting.
type Set struct {
	Name  string
	Value string
}

// Unmap removes the binding of Keys in the mode declared under Mode.
type Unmap struct {
	Keys key.Sequence
	Mode string
}

func (Custom[T]) directive() {}
func (Include) directive()   {}
func (Map) directive()       {}
func (Set) directive()       {}
func (Unmap) directive()     {}
