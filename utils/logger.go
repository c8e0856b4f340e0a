package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string such as "debug" or "WARN" to a LogLevel.
// Unknown values fall back to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a leveled logger with optional key/value fields
type Logger struct {
	*log.Logger
	level  LogLevel
	fields map[string]interface{}
}

// NewLogger creates a new logger writing to stdout
func NewLogger(level LogLevel) *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", 0),
		level:  level,
		fields: make(map[string]interface{}),
	}
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) formatMessage(level LogLevel, format string, v ...interface{}) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, v...)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		message += " [" + strings.Join(pairs, ", ") + "]"
	}

	return fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), message)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.shouldLog(DEBUG) {
		l.Println(l.formatMessage(DEBUG, format, v...))
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.shouldLog(INFO) {
		l.Println(l.formatMessage(INFO, format, v...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.shouldLog(WARN) {
		l.Println(l.formatMessage(WARN, format, v...))
	}
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.shouldLog(ERROR) {
		l.Println(l.formatMessage(ERROR, format, v...))
	}
}

// WithFields returns a derived logger carrying the given fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	derived := &Logger{
		Logger: l.Logger,
		level:  l.level,
		fields: make(map[string]interface{}, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		derived.fields[k] = v
	}
	for k, v := range fields {
		derived.fields[k] = v
	}
	return derived
}

// WithField returns a derived logger with a single field added
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// SetLevel changes the log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// SetOutput redirects the logger, mostly useful in tests
func (l *Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

// Log is the process-wide logger
var Log = NewLogger(INFO)
