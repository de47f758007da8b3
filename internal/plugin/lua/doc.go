// Package lua runs user scripts that provide command variables.
//
// A script registers variables with the global variable function:
//
//	variable("home", function()
//	    return "https://example.org"
//	end)
//
//	variable("user", function()
//	    return env("USER") or ""
//	end)
//
// Each registration becomes a provider whose result replaces "<name>" in
// commands pre-filled by a shortcut.
//
// # Sandbox
//
// Scripts run in a state with only the base, table, string and math
// libraries. dofile, loadfile, load and loadstring are removed, and every
// call is bounded by an execution timeout.
//
// A State is not safe for concurrent use from Lua's point of view; the
// mutex only serializes Go callers.
package lua
