package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger carries structured context (package, file, function) through call
// chains. Error-returning variants log and hand back an error in one step so
// callers can `return log.Err(...)`.
type Logger struct {
	slog *slog.Logger
}

func New(pkg string) Logger {
	return Logger{slog: slog.Default().With("package", pkg)}
}

func (l Logger) File(name string) Logger {
	return Logger{slog: l.slog.With("file", name)}
}

func (l Logger) Function(name string) Logger {
	return Logger{slog: l.slog.With("function", name)}
}

func (l Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Er logs an error without returning one.
func (l Logger) Er(msg string, err error, args ...any) {
	l.slog.Error(msg, append([]any{"error", err}, args...)...)
}

// ErMsg logs an error message without an underlying error value.
func (l Logger) ErMsg(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Err logs and returns the wrapped error.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.slog.Error(msg, args...)
	return errors.New(msg)
}

// ErrMsg is Error without structured args.
func (l Logger) ErrMsg(msg string) error {
	l.slog.Error(msg)
	return errors.New(msg)
}

// Configure sets the process-wide handler. Text in development, JSON
// everywhere else.
func Configure(environment string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	if strings.EqualFold(environment, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
