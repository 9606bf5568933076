package logger

import (
	"context"
	"strings"
	"time"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

func (l LogLevel) rank() int {
	switch l {
	case LogLevelDebug:
		return 0
	case LogLevelWarn:
		return 2
	case LogLevelError:
		return 3
	case LogLevelFatal:
		return 4
	default:
		return 1
	}
}

// ParseLevel falls back to INFO for unknown names.
func ParseLevel(name string) LogLevel {
	switch level := LogLevel(strings.ToUpper(strings.TrimSpace(name))); level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return level
	default:
		return LogLevelInfo
	}
}

type attributes = map[string]any

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

type Options struct {
	CollectorEndpoint string
	ServiceName       string
	Production        bool
	Level             LogLevel
}

type noopLogger struct{}

func (noopLogger) Log(context.Context, LogEntry)  {}
func (noopLogger) Shutdown(context.Context) error { return nil }

var globalLogger Logger = noopLogger{}

func newLogEntry(level LogLevel, message string, err error, attrs attributes) LogEntry {
	return LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	}
}

type contextKey struct{}

// WithAttributes returns a context whose entries all carry attrs. Attributes
// passed to a log call win over context ones with the same key.
func WithAttributes(ctx context.Context, attrs attributes) context.Context {
	merged := make(attributes, len(attrs))
	for key, value := range contextAttributes(ctx) {
		merged[key] = value
	}
	for key, value := range attrs {
		merged[key] = value
	}
	return context.WithValue(ctx, contextKey{}, merged)
}

func contextAttributes(ctx context.Context) attributes {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(contextKey{}).(attributes)
	return attrs
}

func emit(ctx context.Context, entry LogEntry) {
	if scoped := contextAttributes(ctx); len(scoped) > 0 {
		merged := make(attributes, len(scoped)+len(entry.Attributes))
		for key, value := range scoped {
			merged[key] = value
		}
		for key, value := range entry.Attributes {
			merged[key] = value
		}
		entry.Attributes = merged
	}
	globalLogger.Log(ctx, entry)
}

func Debug(ctx context.Context, message string, attrs attributes) {
	emit(ctx, newLogEntry(LogLevelDebug, message, nil, attrs))
}

func Info(ctx context.Context, message string, attrs attributes) {
	emit(ctx, newLogEntry(LogLevelInfo, message, nil, attrs))
}

func Warn(ctx context.Context, message string, attrs attributes) {
	emit(ctx, newLogEntry(LogLevelWarn, message, nil, attrs))
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	emit(ctx, newLogEntry(LogLevelError, message, err, attrs))
}

func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	emit(ctx, newLogEntry(LogLevelFatal, message, err, attrs))
}

func Log(ctx context.Context, entry LogEntry) {
	emit(ctx, entry)
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

func Initialize(opts Options) error {
	var (
		l   Logger
		err error
	)

	if opts.Production {
		l, err = initializeOtelLogger(opts.CollectorEndpoint, opts.ServiceName)
	} else {
		l, err = initStdoutLogger(opts.ServiceName)
	}

	if err != nil {
		return err
	}

	globalLogger = &levelFilter{next: l, min: ParseLevel(string(opts.Level))}
	return nil
}

// SetLogger swaps the global logger. Tests use it to capture entries.
func SetLogger(l Logger) {
	globalLogger = l
}

type levelFilter struct {
	next Logger
	min  LogLevel
}

func (f *levelFilter) Log(ctx context.Context, entry LogEntry) {
	if entry.Level.rank() < f.min.rank() {
		return
	}
	f.next.Log(ctx, entry)
}

func (f *levelFilter) Shutdown(ctx context.Context) error {
	return f.next.Shutdown(ctx)
}
