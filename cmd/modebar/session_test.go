package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/modebar/internal/app"
	"github.com/dshills/modebar/internal/config"
	"github.com/dshills/modebar/internal/input/key"
	"github.com/dshills/modebar/internal/input/mode"
	"github.com/dshills/modebar/internal/statusbar"
	"github.com/dshills/modebar/internal/ui/terminal"
)

func newTestSession(t *testing.T, mappings, script string) *session {
	t.Helper()
	return newLoggedTestSession(t, app.NullLogger, mappings, script)
}

func newLoggedTestSession(t *testing.T, logger *app.Logger, mappings, script string) *session {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Watch = false
	cfg.Mappings = filepath.Join(dir, "main.conf")
	if mappings != "" {
		if err := os.WriteFile(cfg.Mappings, []byte(mappings), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if script != "" {
		cfg.Lua = filepath.Join(dir, "vars.lua")
		if err := os.WriteFile(cfg.Lua, []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	term := terminal.NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(term.Shutdown)

	s, err := newSession(cfg, term, logger)
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	t.Cleanup(s.close)
	return s
}

func (s *session) typeKeys(t *testing.T, spec string) {
	t.Helper()
	for _, k := range key.MustParseSequence(spec) {
		s.KeyPress(k)
	}
}

func TestSessionMappings(t *testing.T) {
	s := newTestSession(t, "nmap i :insert<Enter>\nimap jk :normal<Enter>\n", "")

	s.typeKeys(t, "i")
	if s.app.Mode() != "insert" {
		t.Fatalf("mode = %q, want insert", s.app.Mode())
	}
	if got := s.app.StatusBar().Message().Text(); got != "insert" {
		t.Errorf("message = %q, want insert", got)
	}

	s.typeKeys(t, "j")
	if s.pending.Text() != "j" {
		t.Errorf("pending = %q, want j", s.pending.Text())
	}
	s.typeKeys(t, "k")
	if s.app.Mode() != mode.Normal {
		t.Errorf("mode = %q, want normal", s.app.Mode())
	}
	if s.pending.Text() != "" {
		t.Errorf("pending = %q, want empty", s.pending.Text())
	}
}

func TestSessionIncompleteMappingUsesLuaVariable(t *testing.T) {
	s := newTestSession(t,
		"nmap O :open <home>\n",
		`variable("home", function() return "https://example.org" end)`)

	s.typeKeys(t, "O")
	bar := s.app.StatusBar()
	if !bar.EntryShown() {
		t.Fatal("entry should be shown")
	}
	if got, _ := bar.Command(); got != "open https://example.org" {
		t.Errorf("command = %q", got)
	}

	bar.Entry().(*statusbar.TextEntry).Activate()
	if lines := s.ui.Lines(); len(lines) != 1 || lines[0] != "open https://example.org" {
		t.Errorf("lines = %v", lines)
	}
}

func TestSessionCommands(t *testing.T) {
	s := newTestSession(t, "", "")

	s.handle(Echo{Text: "hello"})
	if got := s.app.StatusBar().Message().Text(); got != "hello" {
		t.Errorf("message = %q", got)
	}

	s.handle(Insert{})
	if s.app.Mode() != "insert" {
		t.Errorf("mode = %q", s.app.Mode())
	}
	s.handle(Normal{})
	if s.app.Mode() != mode.Normal {
		t.Errorf("mode = %q", s.app.Mode())
	}

	s.handle(Open{URL: "a"})
	if lines := s.ui.Lines(); len(lines) != 1 {
		t.Errorf("lines = %v", lines)
	}
}

func TestSessionLogsDispatchOutcomes(t *testing.T) {
	var buf bytes.Buffer
	logger := app.NewLogger(app.LoggerConfig{Level: app.LogLevelDebug, Output: &buf})
	s := newLoggedTestSession(t, logger, "", "")
	bar := s.app.StatusBar()

	s.app.HandleCommand("echo hi", true)
	s.app.HandleCommand("frob", true)
	if got := bar.Message().Text(); got != "Not a command: frob" {
		t.Errorf("message = %q", got)
	}

	out := buf.String()
	for _, want := range []string{`line="echo hi"`, "kind=command", "line=frob", "kind=error"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	stats := s.app.Dispatcher().Metrics().Snapshot()
	if stats.Commands != 1 || stats.Errors != 1 {
		t.Errorf("stats = %+v, want 1 command and 1 error", stats)
	}

	buf.Reset()
	s.close()
	if out := buf.String(); !strings.Contains(out, "dispatch stats") || !strings.Contains(out, "commands=1") || !strings.Contains(out, "errors=1") {
		t.Errorf("close log = %q", out)
	}
}

func TestSessionStartupErrorsShown(t *testing.T) {
	s := newTestSession(t, "nmap\n", "variable(")

	msg := s.app.StatusBar().Message().Text()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("message = %q, want both startup errors", msg)
	}
}

func TestSessionMissingMappingsIsFine(t *testing.T) {
	s := newTestSession(t, "", "")
	if msg := s.app.StatusBar().Message().Text(); msg != "" {
		t.Errorf("message = %q, want empty", msg)
	}
}

func TestSessionReload(t *testing.T) {
	s := newTestSession(t, "nmap a :insert<Enter>\n", "")

	if err := os.WriteFile(s.cfg.Mappings, []byte("nmap b :insert<Enter>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.handle(Reload{})

	if _, ok := s.app.Mappings().Lookup(mode.Normal, key.MustParseSequence("b")); !ok {
		t.Error("reload should load the new mapping")
	}

	if err := os.WriteFile(s.cfg.Mappings, []byte("nmap\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.reload()
	if msg := s.app.StatusBar().Message().Text(); !strings.Contains(msg, "argument required") {
		t.Errorf("message = %q, want the reload error", msg)
	}
	if _, ok := s.app.Mappings().Lookup(mode.Normal, key.MustParseSequence("b")); !ok {
		t.Error("failed reload should keep the mappings")
	}
}

func TestSessionWatchReloads(t *testing.T) {
	s := newTestSession(t, "nmap a :insert<Enter>\n", "")
	s.cfg.Watch = true

	done := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { done <- s.run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		loaded := make(chan bool, 1)
		if err := os.WriteFile(s.cfg.Mappings, []byte("nmap z :insert<Enter>\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(250 * time.Millisecond)
		_ = s.ui.Post(func() {
			_, ok := s.app.Mappings().Lookup(mode.Normal, key.MustParseSequence("z"))
			loaded <- ok
		})
		if <-loaded {
			cancel()
			<-done
			return
		}
	}
	cancel()
	<-done
	t.Error("mappings were not reloaded after the file changed")
}

func TestQuitCommandStopsRun(t *testing.T) {
	s := newTestSession(t, "", "")

	done := make(chan error, 1)
	go func() { done <- s.run(context.Background()) }()
	_ = s.ui.Post(func() { s.handle(Quit{}) })

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("quit did not stop the session")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "modebar "+version) {
		t.Errorf("output = %q", out)
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "main.conf")

	if _, err := execute(t, "init", path); err != nil {
		t.Fatalf("init error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, defaultMappings) {
		t.Error("init should write the starter mappings")
	}

	if _, err := execute(t, "init", path); err == nil {
		t.Error("init should refuse to overwrite")
	}
	if _, err := execute(t, "init", "--force", path); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestStarterMappingsParse(t *testing.T) {
	s := newTestSession(t, string(defaultMappings), "")
	if msg := s.app.StatusBar().Message().Text(); msg != "" {
		t.Errorf("starter mappings failed: %q", msg)
	}
	if _, ok := s.app.Mappings().Lookup("insert", key.MustParseSequence("jk")); !ok {
		t.Error("insert jk should be mapped")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("log_level = \"warn\"\nmappings = \"/from/file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MODEBAR_LUA", "/from/env.lua")

	var got *config.Config
	cmd := newRootCmd()
	cmd.RunE = func(c *cobra.Command, _ []string) error {
		var err error
		got, err = loadConfig(c, options{
			configPath: cfgPath,
			mappings:   "/from/flag",
			noWatch:    true,
		})
		return err
	}
	cmd.SetArgs([]string{"--mappings", "/from/flag"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if got.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn from file", got.LogLevel)
	}
	if got.Mappings != "/from/flag" {
		t.Errorf("Mappings = %q, want flag value", got.Mappings)
	}
	if got.Lua != "/from/env.lua" {
		t.Errorf("Lua = %q, want env value", got.Lua)
	}
	if got.Watch {
		t.Error("--no-watch should disable watching")
	}
}
