package lua

import (
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	v := state.GetGlobal("x")
	if num, ok := v.(glua.LNumber); !ok || float64(num) != 2 {
		t.Errorf("x = %v (%T), want 2", v, v)
	}
}

func TestNewStateStackEmpty(t *testing.T) {
	state := NewState()
	defer state.Close()

	if top := state.L.GetTop(); top != 0 {
		t.Errorf("stack top = %d after NewState, want 0", top)
	}
	for _, name := range []string{"string", "table", "math"} {
		if state.GetGlobal(name) == glua.LNil {
			t.Errorf("%s library not loaded", name)
		}
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail for invalid code")
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	tests := []struct {
		name string
		code string
	}{
		{"io", `io.open("/etc/passwd")`},
		{"os", `os.exit(1)`},
		{"dofile", `dofile("x.lua")`},
		{"loadstring", `loadstring("return 1")()`},
		{"load", `load("return 1")()`},
		{"require", `require("os")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := state.DoString(tt.code); err == nil {
				t.Errorf("%s should not be available", tt.name)
			}
		})
	}

	if err := state.DoString(`s = string.upper("ok") .. math.floor(1.5) .. table.concat({"a"})`); err != nil {
		t.Errorf("safe libraries should be available: %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	start := time.Now()
	err := state.DoString(`while true do end`)
	if err == nil {
		t.Fatal("infinite loop should be interrupted")
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout took %v", time.Since(start))
	}
}

func TestStateCallString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`
function str() return "hello" end
function num() return 42 end
function none() end
function tbl() return {} end
function bad() error("boom") end
`); err != nil {
		t.Fatal(err)
	}

	fn := func(name string) *glua.LFunction {
		return state.GetGlobal(name).(*glua.LFunction)
	}

	tests := []struct {
		fn      string
		want    string
		wantErr string
	}{
		{"str", "hello", ""},
		{"num", "42", ""},
		{"none", "", ""},
		{"tbl", "", "want string"},
		{"bad", "", "boom"},
	}

	for _, tt := range tests {
		got, err := state.CallString(fn(tt.fn))
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("%s: error = %v, want %q", tt.fn, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %q, %v; want %q", tt.fn, got, err, tt.want)
		}
	}

	if top := state.L.GetTop(); top != 0 {
		t.Errorf("stack top = %d after calls, want 0", top)
	}
}

func TestStateClose(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close()")
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrStateClosed", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal() after Close should be nil")
	}
}
