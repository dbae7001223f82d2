// Package logger is the process-wide structured logger. Nothing is written
// until Initialize is called.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelAlways is logged regardless of the configured level.
const LevelAlways = slog.Level(12)

var (
	logger *slog.Logger
)

// Initialize builds the global logger from config.
func Initialize(config Config) error {
	return InitializeWithWriter(config, os.Stdout)
}

// InitializeWithWriter is Initialize with the console output redirected to w.
func InitializeWithWriter(config Config, w io.Writer) error {
	level := parseLogLevel(config.Level)
	opts := handlerOptions(level)

	var handlers []slog.Handler
	if config.ConsoleEnabled {
		handlers = append(handlers, newHandler(w, config.ConsoleFormat, opts))
	}

	if config.FileEnabled {
		if config.FilePath == "" {
			return fmt.Errorf("file logging enabled without a file path")
		}
		rotator := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.FileMaxSizeMB,
			MaxBackups: config.FileMaxBackups,
			MaxAge:     config.FileMaxAgeDays,
			Compress:   config.FileCompress,
		}
		handlers = append(handlers, newHandler(rotator, config.FileFormat, opts))
	}

	switch len(handlers) {
	case 0:
		logger = slog.New(newHandler(w, "text", opts))
	case 1:
		logger = slog.New(handlers[0])
	default:
		logger = slog.New(newMultiHandler(handlers...))
	}
	return nil
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelAlways {
					a.Value = slog.StringValue("ALWAYS")
				}
			}
			return a
		},
	}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLogLevel maps a level name onto slog. Unknown names mean INFO.
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying attrs, for components that tag every
// line with the same fields. Safe to call before Initialize.
func With(args ...any) *slog.Logger {
	if logger == nil {
		return slog.New(discardHandler{})
	}
	return logger.With(args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...any) {
	Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func Info(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Infof logs a formatted info message
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Warning logs a warning message
func Warning(msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Warningf logs a formatted warning message
func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(msg string, args ...any) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Errorf logs a formatted error message
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Always logs past any level filter. Used for dungeon lifecycle events.
func Always(msg string, args ...any) {
	if logger != nil {
		logger.Log(context.Background(), LevelAlways, msg, args...)
	}
}

// Alwaysf logs a formatted message past any level filter.
func Alwaysf(format string, args ...any) {
	Always(fmt.Sprintf(format, args...))
}

// multiHandler fans records out to several handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(hh slog.Handler) slog.Handler { return hh.WithAttrs(attrs) })
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(hh slog.Handler) slog.Handler { return hh.WithGroup(name) })
}

func (h *multiHandler) each(fn func(slog.Handler) slog.Handler) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = fn(handler)
	}
	return newMultiHandler(handlers...)
}

// discardHandler drops everything.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
