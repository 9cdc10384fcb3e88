package logging

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
)

// DefaultLogger is a leveled logger built on Go's standard log package.
// Debug/Info go to stdout uncolored; Warn, Error and Fatal go to stderr
// with ANSI colors when stdout looks like a terminal.
type DefaultLogger struct {
	out       *log.Logger
	errOut    *log.Logger
	level     Level
	fields    Fields
	useColors bool
}

// NewDefaultLogger creates a new default logger with colored output
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		out:       log.New(os.Stdout, "", log.LstdFlags),
		errOut:    log.New(os.Stderr, "", log.LstdFlags),
		level:     InfoLevel,
		fields:    make(Fields),
		useColors: stdoutIsTerminal(),
	}
}

// NewDefaultLoggerNoColor creates a new default logger without colored output
func NewDefaultLoggerNoColor() *DefaultLogger {
	l := NewDefaultLogger()
	l.useColors = false
	return l
}

func stdoutIsTerminal() bool {
	if info, _ := os.Stdout.Stat(); info != nil {
		return (info.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func (d *DefaultLogger) format(level Level, err error, msg string, fields ...Fields) string {
	merged := make(Fields)
	maps.Copy(merged, d.fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	line := fmt.Sprintf("[%s] %s", level.String(), msg)
	if err != nil {
		line += fmt.Sprintf(": %v", err)
	}
	if len(merged) > 0 {
		line += fmt.Sprintf(" %+v", merged)
	}

	if d.useColors {
		switch level {
		case WarnLevel:
			line = ColorYellow + line + ColorReset
		case ErrorLevel:
			line = ColorRed + line + ColorReset
		case FatalLevel:
			line = ColorBold + ColorRed + line + ColorReset
		}
	}

	return line
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < d.level {
		return
	}

	line := d.format(level, err, msg, fields...)

	switch level {
	case DebugLevel, InfoLevel:
		d.out.Println(line)
	case WarnLevel, ErrorLevel:
		d.errOut.Println(line)
	case FatalLevel:
		d.errOut.Println(line)
		os.Exit(1)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.log(FatalLevel, err, msg, fields...)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields)
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		out:       d.out,
		errOut:    d.errOut,
		level:     d.level,
		fields:    merged,
		useColors: d.useColors,
	}
}

func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := ctx.Value(loggerFieldsKey{}).(Fields); ok {
		return d.WithFields(fields)
	}
	return d
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}

// loggerFieldsKey is the context key under which callers may stash Fields
// for WithContext to pick up.
type loggerFieldsKey struct{}

// ContextWithFields returns a context carrying fields for WithContext.
func ContextWithFields(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, loggerFieldsKey{}, fields)
}

// NoOpLogger discards everything. Useful in tests and when an embedding
// application wants the library fully silent.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, fields ...Fields)            {}
func (n *NoOpLogger) Info(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Warn(msg string, fields ...Fields)             {}
func (n *NoOpLogger) Error(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) Fatal(err error, msg string, fields ...Fields) {}
func (n *NoOpLogger) WithFields(fields Fields) Logger               { return n }
func (n *NoOpLogger) WithContext(ctx context.Context) Logger        { return n }
func (n *NoOpLogger) SetLevel(level Level)                          {}
