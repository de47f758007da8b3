package app

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) charm() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown names give
// LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	if strings.EqualFold(s, "warning") {
		return LogLevelWarn
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return LogLevelInfo
	}
	switch lvl {
	case log.DebugLevel:
		return LogLevelDebug
	case log.WarnLevel:
		return LogLevelWarn
	case log.ErrorLevel, log.FatalLevel:
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides structured logging for the application.
// Messages take alternating key/value pairs:
//
//	logger.Info("config loaded", "path", path, "mappings", n)
type Logger struct {
	base     *log.Logger
	disabled bool
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Timestamps adds the time to every line.
	Timestamps bool
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      LogLevelInfo,
		Output:     os.Stderr,
		Prefix:     "modebar",
		Timestamps: true,
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		base: log.NewWithOptions(cfg.Output, log.Options{
			Level:           cfg.Level.charm(),
			Prefix:          cfg.Prefix,
			ReportTimestamp: cfg.Timestamps,
			TimeFormat:      "2006-01-02T15:04:05.000",
		}),
	}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	if l.base == nil {
		return l
	}
	return &Logger{base: l.base.With(key, value), disabled: l.disabled}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	if l.base != nil {
		l.base.SetLevel(level.charm())
	}
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	if l.base != nil {
		l.base.SetOutput(w)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l.enabled() {
		l.base.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, keyvals ...any) {
	if l.enabled() {
		l.base.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l.enabled() {
		l.base.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, keyvals ...any) {
	if l.enabled() {
		l.base.Error(msg, keyvals...)
	}
}

func (l *Logger) enabled() bool {
	return l != nil && l.base != nil && !l.disabled
}

// NullLogger is a logger that discards all output.
var NullLogger = &Logger{disabled: true}

// appLogger is the application-wide logger instance.
var (
	appLogger   *Logger
	appLoggerMu sync.Mutex
)

// GetLogger returns the application logger.
// Creates a default logger on first call if not set.
func GetLogger() *Logger {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	if appLogger == nil {
		appLogger = NewLogger(DefaultLoggerConfig())
	}
	return appLogger
}

// SetLogger sets the application-wide logger.
// Should be called early in application startup.
func SetLogger(l *Logger) {
	appLoggerMu.Lock()
	defer appLoggerMu.Unlock()
	appLogger = l
}
