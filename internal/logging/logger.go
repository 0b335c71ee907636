// Package logging provides structured logging for the complaint client.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel represents a log level.
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields carries structured context attached to a log entry.
type Fields map[string]interface{}

// Logger writes structured JSON log lines.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel LogLevel
}

var (
	global *Logger
	once   sync.Once
)

// Init initializes the global logger. Subsequent calls are no-ops.
func Init(out io.Writer, minLevel LogLevel) {
	once.Do(func() {
		global = &Logger{out: out, minLevel: minLevel}
	})
}

// Get returns the global logger, initializing it with defaults if needed.
func Get() *Logger {
	if global == nil {
		Init(os.Stdout, LevelInfo)
	}
	return global
}

// entry is the wire shape of a single log line.
type entry struct {
	Timestamp string   `json:"timestamp"`
	Level     string   `json:"level"`
	Message   string   `json:"message"`
	Error     string   `json:"error,omitempty"`
	Code      string   `json:"code,omitempty"`
	Fields    Fields   `json:"fields,omitempty"`
}

func (l *Logger) log(level LogLevel, message, code string, err error, fields Fields) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Code:      code,
		Fields:    fields,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, jsonErr := json.Marshal(e)
	if jsonErr != nil {
		fmt.Fprintf(os.Stderr, "logging: marshal failed: %v\n", jsonErr)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, "", nil, fields)
}

// Info logs an info message.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, "", nil, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, "", nil, fields)
}

// Error logs an error message.
func (l *Logger) Error(message string, err error, fields Fields) {
	l.log(LevelError, message, "", err, fields)
}

// ErrorWithCode logs an error message with an application error code.
func (l *Logger) ErrorWithCode(message, code string, err error, fields Fields) {
	l.log(LevelError, message, code, err, fields)
}

// Convenience functions using the global logger.

func Debug(message string, fields Fields) { Get().Debug(message, fields) }
func Info(message string, fields Fields)  { Get().Info(message, fields) }
func Warn(message string, fields Fields)  { Get().Warn(message, fields) }

func Error(message string, err error, fields Fields) { Get().Error(message, err, fields) }

func ErrorWithCode(message, code string, err error, fields Fields) {
	Get().ErrorWithCode(message, code, err, fields)
}
