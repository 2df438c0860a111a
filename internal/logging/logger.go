// Package logging provides unified logging functionality for qcap.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/donghojung/qcap/internal/constants"
)

// Logger provides logging capabilities for qcap.
type Logger interface {
	// Debug outputs debug information (only when QCAP_DEBUG=1)
	Debug(format string, args ...interface{})

	// Info writes informational message to log file
	Info(format string, args ...interface{})

	// Warn outputs warning to stderr and log file
	Warn(format string, args ...interface{})

	// Error outputs error to stderr and log file
	Error(format string, args ...interface{})

	// SetCommand sets the current CLI command name for context
	SetCommand(command string)

	// StartTimer starts a timer for measuring operation duration
	StartTimer(operation string) *Timer

	// Close closes the log file
	Close() error
}

// Timer represents a timer for measuring operation duration
type Timer struct {
	operation string
	start     time.Time
	logger    *fileLogger
}

// Stop stops the timer and logs the elapsed time
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.logWithLevel("INFO", "%s completed in %v", t.operation, elapsed)
	}
	return elapsed
}

// StopWithResult stops the timer and logs the result
func (t *Timer) StopWithResult(success bool, detail string) time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		status := "completed"
		level := "INFO"
		if !success {
			status = "failed"
			level = "WARN"
		}
		if detail != "" {
			t.logger.logWithLevel(level, "%s %s in %v: %s", t.operation, status, elapsed, detail)
		} else {
			t.logger.logWithLevel(level, "%s %s in %v", t.operation, status, elapsed)
		}
	}
	return elapsed
}

type fileLogger struct {
	file    *os.File
	command string
	debug   bool
	quiet   bool // suppress stderr echo (TUI owns the terminal)
	mu      sync.Mutex
}

// New creates a new Logger that writes to the specified file.
// The parent directory is created if missing.
func New(logPath string, debug bool) (Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePerm) //nolint:gosec // G304: logPath is from config.LogPath
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &fileLogger{
		file:  file,
		debug: debug,
	}, nil
}

// NewStdout creates a logger that only outputs to stderr.
func NewStdout(debug bool) Logger {
	return &fileLogger{
		debug: debug,
	}
}

// SetQuiet stops l from echoing warnings and errors to stderr.
// Used while a full-screen TUI is running.
func SetQuiet(l Logger, quiet bool) {
	if fl, ok := l.(*fileLogger); ok {
		fl.mu.Lock()
		fl.quiet = quiet
		fl.mu.Unlock()
	}
}

func (l *fileLogger) SetCommand(command string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.command = command
}

func (l *fileLogger) getContext() string {
	// Note: caller should hold the lock when calling this method
	if l.command == "" {
		return constants.AppName
	}
	return l.command
}

// getCaller returns the caller function name (skipping internal logging frames)
func getCaller(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	// Extract just the function name from the full path
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	// Shorten the package path
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// formatLine renders a log entry: [timestamp] [level] [context] [caller] message
func formatLine(now time.Time, level, context, caller, msg string) string {
	return fmt.Sprintf("[%s] [%-5s] [%s] [%s] %s\n", now.Format("06-01-02 15:04:05.0"), level, context, caller, msg)
}

// logWithLevel writes a log entry with the specified level
func (l *fileLogger) logWithLevel(level string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	caller := getCaller(3) // Skip logWithLevel, the public method, and the caller

	line := formatLine(time.Now(), level, l.getContext(), caller, msg)
	if _, err := l.file.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to log file: %v\n", err)
	}
}

// echo writes to stderr and the log file.
func (l *fileLogger) echo(level, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.quiet {
		fmt.Fprintf(os.Stderr, "%s%s\n", prefix, msg)
	}

	if l.file != nil {
		caller := getCaller(3)
		_, _ = l.file.WriteString(formatLine(time.Now(), level, l.getContext(), caller, msg))
	}
}

func (l *fileLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	caller := getCaller(2)
	if !l.quiet {
		fmt.Fprintf(os.Stderr, "[DEBUG] [%s] %s\n", caller, msg)
	}

	if l.file != nil {
		_, _ = l.file.WriteString(formatLine(time.Now(), "DEBUG", l.getContext(), caller, msg))
	}
}

func (l *fileLogger) Info(format string, args ...interface{}) {
	l.logWithLevel("INFO", format, args...)
}

func (l *fileLogger) Warn(format string, args ...interface{}) {
	l.echo("WARN", "Warning: ", format, args...)
}

func (l *fileLogger) Error(format string, args ...interface{}) {
	l.echo("ERROR", "Error: ", format, args...)
}

func (l *fileLogger) StartTimer(operation string) *Timer {
	// Log start only if file is available
	if l.file != nil {
		l.logWithLevel("INFO", "%s started", operation)
	}
	return &Timer{
		operation: operation,
		start:     time.Now(),
		logger:    l,
	}
}

func (l *fileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Global logger instance
var globalLogger Logger = NewStdout(os.Getenv(constants.DebugEnvVar) == "1")

// SetGlobal sets the global logger instance.
func SetGlobal(l Logger) {
	globalLogger = l
}

// Global returns the global logger instance.
func Global() Logger {
	return globalLogger
}

// Debug logs debug information using the global logger.
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

// Info logs informational message using the global logger.
func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

// Warn logs a warning using the global logger.
func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

// Error logs an error using the global logger.
func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}

// StartTimer starts a timer for measuring operation duration using the global logger.
func StartTimer(operation string) *Timer {
	return globalLogger.StartTimer(operation)
}
