package deepagent

import (
	"fmt"
	"log"
	"strings"
)

// StdLogger adapts a stdlib *log.Logger to the Logger interface used across
// this module. Key-value args are rendered as key=value pairs.
type StdLogger struct {
	logger *log.Logger
}

// NewStdLogger creates a Logger backed by the provided stdlib logger.
func NewStdLogger(logger *log.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// DefaultLogger creates a Logger backed by log.Default().
func DefaultLogger() *StdLogger {
	return &StdLogger{logger: log.Default()}
}

func (l *StdLogger) printf(level, msg string, args []any) {
	var b strings.Builder
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	l.logger.Printf("[deepagent] %s: %s%s", level, msg, b.String())
}

// Debug implements Logger
func (l *StdLogger) Debug(msg string, args ...any) { l.printf("DEBUG", msg, args) }

// Info implements Logger
func (l *StdLogger) Info(msg string, args ...any) { l.printf("INFO", msg, args) }

// Warn implements Logger
func (l *StdLogger) Warn(msg string, args ...any) { l.printf("WARN", msg, args) }

// Error implements Logger
func (l *StdLogger) Error(msg string, args ...any) { l.printf("ERROR", msg, args) }
