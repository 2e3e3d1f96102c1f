// Package logging provides the bootstrapper's leveled logger: a console sink
// plus a disk sink that is only written to a file once something goes wrong.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// ConsoleTimeFormat is the timestamp layout on the console.
const ConsoleTimeFormat = "15:04:05"

// Options configures New.
type Options struct {
	// Console receives human-facing output. Defaults to os.Stderr.
	Console io.Writer
	// Verbose lowers the console threshold to DEBUG.
	Verbose bool
	// LogDir is where the error log is written when drained.
	LogDir string
}

// Logger fans each record out to the console and disk sinks.
type Logger struct {
	console *log.Logger
	disk    *log.Logger
	file    *DeferredFile
}

// New builds a Logger. The disk sink always records DEBUG and above.
func New(opts Options) *Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	file := NewDeferredFile(opts.LogDir)
	return &Logger{
		console: log.NewWithOptions(console, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      ConsoleTimeFormat,
		}),
		disk: log.NewWithOptions(file, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       log.LogfmtFormatter,
		}),
		file: file,
	}
}

// Discard returns a Logger that writes nowhere and never creates a file.
func Discard() *Logger {
	return &Logger{
		console: log.NewWithOptions(io.Discard, log.Options{}),
		disk:    log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// Log writes msg at level to both sinks. An ERROR or worse record drains
// the disk buffer into its file.
func (l *Logger) Log(level log.Level, msg interface{}, keyvals ...interface{}) {
	l.console.Log(level, msg, keyvals...)
	l.disk.Log(level, msg, keyvals...)
	if level >= log.ErrorLevel && l.file != nil {
		_, _ = l.file.Drain()
	}
}

// Debug logs msg with structured keyvals at DEBUG.
func (l *Logger) Debug(msg interface{}, keyvals ...interface{}) { l.Log(log.DebugLevel, msg, keyvals...) }

// Info logs msg with structured keyvals at INFO.
func (l *Logger) Info(msg interface{}, keyvals ...interface{}) { l.Log(log.InfoLevel, msg, keyvals...) }

// Warn logs msg with structured keyvals at WARN.
func (l *Logger) Warn(msg interface{}, keyvals ...interface{}) { l.Log(log.WarnLevel, msg, keyvals...) }

// Error logs msg with structured keyvals at ERROR and flushes the error log.
func (l *Logger) Error(msg interface{}, keyvals ...interface{}) { l.Log(log.ErrorLevel, msg, keyvals...) }

// Debugf logs a printf-style message at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Log(log.DebugLevel, fmt.Sprintf(format, args...))
}

// Infof logs a printf-style message at INFO.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Log(log.InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a printf-style message at WARN.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Log(log.WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs a printf-style message at ERROR and flushes the error log.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Log(log.ErrorLevel, fmt.Sprintf(format, args...))
}

// SetLogDir moves the future error log into dir, typically once the
// managed environment's log directory exists.
func (l *Logger) SetLogDir(dir string) {
	if l.file != nil {
		l.file.SetDir(dir)
	}
}

// Drain forces the buffered disk log into its file and returns the path.
func (l *Logger) Drain() (string, error) {
	if l.file == nil {
		return "", errors.New(messages.LoggingNoFile)
	}
	return l.file.Drain()
}

// Close releases the disk sink.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
