package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"INFO", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"ERROR", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	return logger, &buf
}

func TestLogger_Log(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelDebug)

	logger.Info("config loaded", "mappings", 3)

	output := buf.String()
	if !strings.Contains(output, "config loaded") {
		t.Errorf("output missing message: %q", output)
	}
	if !strings.Contains(output, "mappings=3") {
		t.Errorf("output missing field: %q", output)
	}
	if !strings.Contains(output, "test") {
		t.Errorf("output missing prefix: %q", output)
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("messages below level were written: %q", buf.String())
	}

	logger.Warn("warn message")
	logger.Error("error message")
	output := buf.String()
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("output = %q", output)
	}
}

func TestLogger_WithField(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithField("mode", "insert").Info("mode changed")
	if !strings.Contains(buf.String(), "mode=insert") {
		t.Errorf("output missing field: %q", buf.String())
	}

	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "mode=insert") {
		t.Error("WithField should not modify the parent logger")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithComponent("watcher").Info("started")
	if !strings.Contains(buf.String(), "component=watcher") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelError)

	logger.Info("hidden")
	logger.SetLevel(LogLevelDebug)
	logger.Debug("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") || !strings.Contains(output, "visible") {
		t.Errorf("output = %q", output)
	}
}

func TestLogger_SetOutput(t *testing.T) {
	logger, first := newBufferLogger(LogLevelInfo)
	var second bytes.Buffer

	logger.SetOutput(&second)
	logger.Info("moved")

	if first.Len() != 0 || !strings.Contains(second.String(), "moved") {
		t.Errorf("first = %q, second = %q", first.String(), second.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic.
	NullLogger.Info("nothing")
	NullLogger.WithComponent("x").Error("nothing")
	NullLogger.SetLevel(LogLevelDebug)
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil")
	}

	custom, _ := newBufferLogger(LogLevelDebug)
	old := GetLogger()
	SetLogger(custom)
	defer SetLogger(old)

	if GetLogger() != custom {
		t.Error("SetLogger did not replace the application logger")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %v, want INFO", cfg.Level)
	}
	if cfg.Prefix != "modebar" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.Output == nil {
		t.Error("Output should default to stderr")
	}
}
