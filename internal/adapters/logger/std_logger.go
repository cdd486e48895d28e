package logger

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a logger adapter writing human-readable output to
// stdout, suitable for interactive batch runs.
func NewStdLogger() (ports.Logger, error) {
	return NewWriterLogger(os.Stdout, false)
}

// NewWriterLogger creates a logger adapter writing to the given output.
// Batch runs are short-lived, so writes are synchronous: nothing may be
// lost in an async buffer when the process exits.
func NewWriterLogger(output io.Writer, jsonFormat bool) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     output,
		JsonFormat: jsonFormat,
		AsyncWrite: false,
		AddSource:  false,
	})
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: logger}, nil
}

// FromExisting wraps an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}
