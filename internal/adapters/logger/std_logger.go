package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_thrones_audit/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// Options controls where and how the standard logger writes.
type Options struct {
	// JSON switches the output to JSON lines.
	JSON bool
	// File is a log file path. Empty means stderr, keeping stdout free for reports.
	File string
}

// createLogger builds the underlying l.Logger.
var createLogger = func(cfg l.Config) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(cfg)
}

// NewStdLogger creates a new standard logger adapter with default configuration.
func NewStdLogger() (*StdLogger, error) {
	return New(Options{})
}

// New creates a standard logger writing according to opts.
func New(opts Options) (*StdLogger, error) {
	var output io.Writer = os.Stderr
	var file *os.File
	if opts.File != "" {
		var err error
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := createLogger(l.Config{
		Output:      output,
		JsonFormat:  opts.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     false,
	})
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &StdLogger{logger: logger}, nil
}

// Debug logs a debug message.
func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the logger.
func (l *StdLogger) Close() error {
	return l.logger.Close()
}

// FromExisting wraps an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
