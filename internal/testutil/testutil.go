// Package testutil provides deterministic fixtures for deepagent tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/youssefsiam38/deepagent/types"
)

// UnitCounter counts every message as exactly one token. It makes token
// budgets read as message counts in tests.
type UnitCounter struct{}

// CountTokens implements compression.Counter
func (UnitCounter) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return len(messages), nil
}

// CharCounter counts one token per content character. Tool call inputs are
// ignored so costs stay easy to reason about in fixtures.
type CharCounter struct{}

// CountTokens implements compression.Counter
func (CharCounter) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	return total, nil
}

// Conversation builds a message slice from "role:content" specs, e.g.
// Conversation("system:be nice", "user:hi", "assistant:hello").
func Conversation(specs ...string) []types.Message {
	messages := make([]types.Message, 0, len(specs))
	for _, spec := range specs {
		role, content, _ := strings.Cut(spec, ":")
		var m types.Message
		switch types.Role(role) {
		case types.RoleSystem:
			m = types.NewSystemMessage(content)
		case types.RoleUser:
			m = types.NewUserMessage(content)
		case types.RoleAssistant:
			m = types.NewAssistantMessage(content)
		case types.RoleTool:
			m = types.NewToolMessage(content, "call_"+content)
		}
		messages = append(messages, m)
	}
	return messages
}

// Roles extracts the role sequence from a message slice for compact
// assertions.
func Roles(messages []types.Message) []types.Role {
	roles := make([]types.Role, 0, len(messages))
	for _, m := range messages {
		roles = append(roles, m.Role)
	}
	return roles
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// RecordingLogger captures log calls for assertions. Safe for concurrent
// use.
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func (l *RecordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Debug implements the Logger interfaces
func (l *RecordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }

// Info implements the Logger interfaces
func (l *RecordingLogger) Info(msg string, args ...any) { l.record("info", msg, args) }

// Warn implements the Logger interfaces
func (l *RecordingLogger) Warn(msg string, args ...any) { l.record("warn", msg, args) }

// Error implements the Logger interfaces
func (l *RecordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

// Has reports whether any entry at the level contains the substring.
func (l *RecordingLogger) Has(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}
