package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// levelTrace sits below slog's debug level.
const levelTrace = slog.LevelDebug - 4

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case ErrorLevel:
		return slog.LevelError
	case WarningLevel:
		return slog.LevelWarn
	case DebugLevel:
		return slog.LevelDebug
	case TraceLevel:
		return levelTrace
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel converts a level name such as "debug" or "warn" to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return ErrorLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "", "INFO":
		return InfoLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "TRACE":
		return TraceLevel, nil
	default:
		return InfoLevel, errors.Errorf("unknown log level %q", s)
	}
}

// Logger is a leveled structured logger. It embeds *slog.Logger, so Error,
// Info and Debug take a message followed by key/value pairs.
type Logger struct {
	*slog.Logger
	level  *slog.LevelVar
	closer io.Closer
}

// NewLogger creates a logger writing to stderr, keeping stdout free for
// simulation reports.
func NewLogger(level LogLevel) *Logger {
	return NewWriterLogger(level, os.Stderr)
}

// NewWriterLogger creates a logger writing text records to w.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case "error", "err":
				// Wrapped errors carry stacks; %+v would dump them.
				a.Key = "err"
				if err, ok := a.Value.Any().(error); ok {
					a.Value = slog.StringValue(err.Error())
				}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= levelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(handler), level: lv}
}

// NewFileLogger creates a new logger that writes to a file. Close releases
// the file.
func NewFileLogger(level LogLevel, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "create log file %s", filename)
	}
	l := NewWriterLogger(level, file)
	l.closer = file
	return l, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return NewWriterLogger(ErrorLevel, io.Discard)
}

// SetLevel changes the verbosity of l and every logger derived from it.
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Set(level.slogLevel())
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), level: l.level}
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, args ...any) {
	l.Warn(msg, args...)
}

// Trace logs a trace message (highest verbosity)
func (l *Logger) Trace(msg string, args ...any) {
	l.Log(context.Background(), levelTrace, msg, args...)
}

// Circuit logs information about circuit construction
func (l *Logger) Circuit(msg string, args ...any) {
	l.Debug(msg, append(args, "component", "circuit")...)
}

// Simulation logs information about simulation runs
func (l *Logger) Simulation(msg string, args ...any) {
	l.Debug(msg, append(args, "component", "simulation")...)
}

// Parser logs information about netlist parsing
func (l *Logger) Parser(msg string, args ...any) {
	l.Trace(msg, append(args, "component", "parser")...)
}
