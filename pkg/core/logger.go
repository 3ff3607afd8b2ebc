package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// slogLogger adapts a structured slog.Logger to the Logger interface
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps a slog.Logger. Messages are logged at info level with
// the trailing newline stripped. A nil logger yields a logger that discards.
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return NopLogger()
	}
	return &slogLogger{logger: logger}
}

func (l *slogLogger) Printf(format string, args ...interface{}) {
	if !l.logger.Enabled(context.Background(), slog.LevelInfo) {
		return
	}
	l.logger.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a Logger that produces no output
func NopLogger() Logger {
	return &slogLogger{logger: slog.New(nopHandler{})}
}
