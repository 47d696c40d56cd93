package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role represents the message role
type Role string

const (
	// RoleSystem represents a system message
	RoleSystem Role = "system"

	// RoleUser represents a user message
	RoleUser Role = "user"

	// RoleAssistant represents an assistant message
	RoleAssistant Role = "assistant"

	// RoleTool represents a tool result message
	RoleTool Role = "tool"
)

// ToolCall represents a single tool invocation requested by the assistant
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// Message represents a conversation message with metadata.
//
// Messages are treated as immutable values: code that needs a modified
// message copies it (see CloneMessages) rather than mutating in place.
// Ordering within a conversation is significant and is never reshuffled.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID is set on tool messages and references the call being answered.
	ToolCallID string `json:"tool_call_id,omitempty"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HasToolCalls reports whether the message requests any tool execution
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// NewSystemMessage creates a system message with a fresh ID
func NewSystemMessage(content string) Message {
	return newMessage(RoleSystem, content)
}

// NewUserMessage creates a user message with a fresh ID
func NewUserMessage(content string) Message {
	return newMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message with a fresh ID
func NewAssistantMessage(content string) Message {
	return newMessage(RoleAssistant, content)
}

// NewToolMessage creates a tool result message answering the given tool call
func NewToolMessage(content, toolCallID string) Message {
	m := newMessage(RoleTool, content)
	m.ToolCallID = toolCallID
	return m
}

func newMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// CloneMessages returns a deep copy of the message slice.
// Metadata maps and tool call slices are copied so that callers can
// modify the result without aliasing the input.
func CloneMessages(messages []Message) []Message {
	if messages == nil {
		return nil
	}
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = cloneMessage(m)
	}
	return out
}

func cloneMessage(m Message) Message {
	c := m
	if m.ToolCalls != nil {
		c.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(c.ToolCalls, m.ToolCalls)
	}
	if m.Metadata != nil {
		c.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
