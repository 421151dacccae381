package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/user/harview/pkg/ports"
)

// SlogLogger adapts log/slog to ports.Logger. Messages are localized
// before being handed to the handler; the component becomes an attribute.
type SlogLogger struct {
	logger *slog.Logger
	quiet  bool
}

// NewTint creates a SlogLogger with a tint handler on stderr.
func NewTint(level ports.LogLevel) *SlogLogger {
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	return NewTintWriter(level, os.Stderr, noColor)
}

// NewTintWriter creates a SlogLogger with a tint handler on w.
func NewTintWriter(level ports.LogLevel, w io.Writer, noColor bool) *SlogLogger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slogLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
	return NewSlog(slog.New(handler), level == ports.LevelQuiet)
}

// NewSlog wraps an existing slog.Logger.
func NewSlog(l *slog.Logger, quiet bool) *SlogLogger {
	return &SlogLogger{logger: l, quiet: quiet}
}

func (l *SlogLogger) Debug(msg string, args ...interface{}) { l.log(slog.LevelDebug, msg, args) }
func (l *SlogLogger) Info(msg string, args ...interface{})  { l.log(slog.LevelInfo, msg, args) }
func (l *SlogLogger) Warn(msg string, args ...interface{})  { l.log(slog.LevelWarn, msg, args) }
func (l *SlogLogger) Error(msg string, args ...interface{}) { l.log(slog.LevelError, msg, args) }

// WithComponent returns a logger that tags records with component.
func (l *SlogLogger) WithComponent(component string) ports.Logger {
	return &SlogLogger{logger: l.logger.With("component", component), quiet: l.quiet}
}

func (l *SlogLogger) log(level slog.Level, msg string, args []interface{}) {
	if l.quiet {
		return
	}
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, l10n.F(msg, args...))
}

func slogLevel(level ports.LogLevel) slog.Level {
	switch level {
	case ports.LevelDebug:
		return slog.LevelDebug
	case ports.LevelWarn:
		return slog.LevelWarn
	case ports.LevelError, ports.LevelQuiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var _ ports.Logger = (*SlogLogger)(nil)
