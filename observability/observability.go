// Package observability defines the logging capability the conversion
// pipeline reports through. Callers that do not care pass NopLogger.
package observability

import (
	"fmt"
	"io"
	"sync"
)

// Logger is a leveled, structured logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is one structured key/value pair.
type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

// String builds a string field.
func String(key, value string) Field { return stringField{key, value} }

// Int builds an int field.
func Int(key string, value int) Field { return intField{key, value} }

// Float64 builds a float field.
func Float64(key string, value float64) Field { return float64Field{key, value} }

// Error builds an error field.
func Error(key string, err error) Field { return errorField{key, err} }

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger returns a logger that discards all events.
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// WriterLogger writes one line per event to an io.Writer. Used by the CLI
// for --verbose output.
type WriterLogger struct {
	mu       sync.Mutex
	out      io.Writer
	bound    []Field
	MinLevel Level
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// NewWriterLogger builds a WriterLogger emitting events at min and above.
func NewWriterLogger(out io.Writer, min Level) *WriterLogger {
	return &WriterLogger{out: out, MinLevel: min}
}

func (l *WriterLogger) Debug(msg string, fields ...Field) { l.emit(LevelDebug, "DEBUG", msg, fields) }
func (l *WriterLogger) Info(msg string, fields ...Field)  { l.emit(LevelInfo, "INFO", msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...Field)  { l.emit(LevelWarn, "WARN", msg, fields) }
func (l *WriterLogger) Error(msg string, fields ...Field) { l.emit(LevelError, "ERROR", msg, fields) }

func (l *WriterLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &WriterLogger{out: l.out, bound: bound, MinLevel: l.MinLevel}
}

func (l *WriterLogger) emit(lv Level, tag, msg string, fields []Field) {
	if lv < l.MinLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s", tag, msg)
	for _, f := range l.bound {
		fmt.Fprintf(l.out, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(l.out, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.out)
}
