package logging

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Logger is a structured logger over log/slog. Derived loggers made
// with With and WithGroup share their parent's level, so SetLevel on
// any of them takes effect everywhere.
type Logger struct {
	handler slog.Handler
	level   *slog.LevelVar
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// New builds a Logger from a Config.
func New(config *Config) *Logger {
	level := &slog.LevelVar{}
	level.Set(config.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &Logger{handler: handler, level: level}
}

// Default returns the process-wide logger, constructing one from
// DefaultConfig on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(DefaultConfig())
	})
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel changes the minimum level for this logger and every logger
// derived from it.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// DebugContext logs at debug level with a context.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// InfoContext logs at info level with a context.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// WarnContext logs at warn level with a context.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// ErrorContext logs at error level with a context.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

// With returns a Logger that includes the given attributes (slog.Attr
// values such as the field helpers return, or key/value pairs) on every
// record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		handler: l.handler.WithAttrs(argsToAttrs(args)),
		level:   l.level,
	}
}

// WithGroup returns a Logger that nests subsequent attributes under
// name.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		handler: l.handler.WithGroup(name),
		level:   l.level,
	}
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.handler.Enabled(ctx, level) {
		return
	}

	// Skip runtime.Callers, log, and the exported wrapper so AddSource
	// points at the caller.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)

	// A handler that fails here has nowhere to report to.
	_ = l.handler.Handle(ctx, r)
}

func argsToAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			attrs = append(attrs, a)
		case string:
			if i+1 < len(args) {
				attrs = append(attrs, slog.Any(a, args[i+1]))
				i++
			}
		}
	}
	return attrs
}

// String is a string field.
func String(key, value string) any {
	return slog.String(key, value)
}

// Int is an int field.
func Int(key string, value int) any {
	return slog.Int(key, value)
}

// Int64 is an int64 field.
func Int64(key string, value int64) any {
	return slog.Int64(key, value)
}

// Bool is a bool field.
func Bool(key string, value bool) any {
	return slog.Bool(key, value)
}

// Err is an error field under the "error" key.
func Err(err error) any {
	return slog.Any("error", err)
}

// Duration is a duration field.
func Duration(key string, value interface{}) any {
	return slog.Any(key, value)
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level on the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level on the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// DebugContext logs at debug level on the default logger.
func DebugContext(ctx context.Context, msg string, args ...any) {
	Default().DebugContext(ctx, msg, args...)
}

// InfoContext logs at info level on the default logger.
func InfoContext(ctx context.Context, msg string, args ...any) {
	Default().InfoContext(ctx, msg, args...)
}

// WarnContext logs at warn level on the default logger.
func WarnContext(ctx context.Context, msg string, args ...any) {
	Default().WarnContext(ctx, msg, args...)
}

// ErrorContext logs at error level on the default logger.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Default().ErrorContext(ctx, msg, args...)
}

// SetLevel changes the default logger's minimum level.
func SetLevel(level slog.Level) {
	Default().SetLevel(level)
}
