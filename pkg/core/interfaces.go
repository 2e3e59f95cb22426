package core

import (
	"fmt"
	"io"
	"os"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes log lines to an io.Writer (stdout unless overridden)
type DefaultLogger struct {
	out io.Writer
}

// NewDefaultLogger creates a logger that prints to stdout
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{out: os.Stdout}
}

// NewWriterLogger creates a logger that prints to w
func NewWriterLogger(w io.Writer) *DefaultLogger {
	return &DefaultLogger{out: w}
}

// Printf implements Logger
func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

var (
	_ Logger = (*DefaultLogger)(nil)
	_ Logger = NopLogger{}
)
