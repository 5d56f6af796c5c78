// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity.
type Level int8

// Supported levels.
const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l Level) zap() zapcore.Level {
	return zapcore.Level(l)
}

// TraceIDFn extracts a trace id from ctx; it returns "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes JSON records tagged with the service name and, when present,
// the trace id found in the context.
type Logger struct {
	z         *zap.SugaredLogger
	traceIDFn TraceIDFn
}

// New builds a Logger writing to w. traceIDFn may be nil.
func New(w io.Writer, minLevel Level, service string, traceIDFn TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), minLevel.zap())
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(zap.String("service", service))
	return &Logger{z: z.Sugar(), traceIDFn: traceIDFn}
}

// Debug logs at debug level. keysAndValues are alternating field names and values.
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.write(ctx, LevelDebug, msg, keysAndValues)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.write(ctx, LevelInfo, msg, keysAndValues)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.write(ctx, LevelWarn, msg, keysAndValues)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.write(ctx, LevelError, msg, keysAndValues)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) write(ctx context.Context, level Level, msg string, kv []any) {
	if l.traceIDFn != nil {
		if id := l.traceIDFn(ctx); id != "" {
			kv = append(kv, "trace_id", id)
		}
	}
	switch level {
	case LevelDebug:
		l.z.Debugw(msg, kv...)
	case LevelInfo:
		l.z.Infow(msg, kv...)
	case LevelWarn:
		l.z.Warnw(msg, kv...)
	default:
		l.z.Errorw(msg, kv...)
	}
}
