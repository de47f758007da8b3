package lua

import (
	"fmt"
	"os"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// RegisterFunc receives each variable a script provides.
type RegisterFunc func(name string, value func() string)

// ErrorFunc is told about variables whose function failed.
type ErrorFunc func(name string, err error)

// Variables holds the variable functions registered by scripts.
type Variables struct {
	state *State

	mu    sync.Mutex
	funcs map[string]*lua.LFunction

	onError ErrorFunc
}

// VariablesOption configures Variables.
type VariablesOption func(*Variables)

// WithErrorFunc sets the handler for failing variables.
func WithErrorFunc(fn ErrorFunc) VariablesOption {
	return func(v *Variables) {
		v.onError = fn
	}
}

// NewVariables creates a sandboxed state exposing variable and env to
// scripts.
func NewVariables(opts ...VariablesOption) *Variables {
	v := &Variables{
		state: NewState(),
		funcs: make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.state.RegisterFunc("variable", v.luaVariable)
	v.state.RegisterFunc("env", luaEnv)
	return v
}

// luaVariable implements variable(name, fn).
func (v *Variables) luaVariable(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "variable name must not be empty")
		return 0
	}

	v.mu.Lock()
	v.funcs[name] = fn
	v.mu.Unlock()
	return 0
}

// luaEnv implements env(name), returning nil for unset variables.
func luaEnv(L *lua.LState) int {
	value, ok := os.LookupEnv(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(value))
	return 1
}

// LoadFile runs the script at path.
func (v *Variables) LoadFile(path string) error {
	if err := v.state.DoFile(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadString runs a script from source.
func (v *Variables) LoadString(src string) error {
	return v.state.DoString(src)
}

// Names returns the registered variable names, sorted.
func (v *Variables) Names() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	names := make([]string, 0, len(v.funcs))
	for name := range v.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value calls the named variable function.
func (v *Variables) Value(name string) (string, error) {
	v.mu.Lock()
	fn, ok := v.funcs[name]
	v.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	return v.state.CallString(fn)
}

// Func returns a provider for name. Failures produce the empty string and
// are reported to the error handler.
func (v *Variables) Func(name string) func() string {
	return func() string {
		value, err := v.Value(name)
		if err != nil {
			if v.onError != nil {
				v.onError(name, err)
			}
			return ""
		}
		return value
	}
}

// Register hands a provider for every registered variable to register.
func (v *Variables) Register(register RegisterFunc) {
	for _, name := range v.Names() {
		register(name, v.Func(name))
	}
}

// Close releases the Lua state.
func (v *Variables) Close() error {
	return v.state.Close()
}
