package types

import (
	"encoding/json"
	"testing"
)

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		role Role
	}{
		{name: "system", msg: NewSystemMessage("prompt"), role: RoleSystem},
		{name: "user", msg: NewUserMessage("question"), role: RoleUser},
		{name: "assistant", msg: NewAssistantMessage("answer"), role: RoleAssistant},
		{name: "tool", msg: NewToolMessage("result", "call_1"), role: RoleTool},
	}

	seen := map[string]bool{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.msg.Role != tt.role {
				t.Errorf("Role = %q, want %q", tt.msg.Role, tt.role)
			}
			if tt.msg.ID == "" {
				t.Error("ID not assigned")
			}
			if seen[tt.msg.ID] {
				t.Error("duplicate message ID")
			}
			seen[tt.msg.ID] = true
			if tt.msg.CreatedAt.IsZero() {
				t.Error("CreatedAt not set")
			}
		})
	}

	if m := NewToolMessage("result", "call_1"); m.ToolCallID != "call_1" {
		t.Errorf("ToolCallID = %q, want call_1", m.ToolCallID)
	}
}

func TestHasToolCalls(t *testing.T) {
	m := NewAssistantMessage("thinking")
	if m.HasToolCalls() {
		t.Error("HasToolCalls() = true for a plain message")
	}
	m.ToolCalls = []ToolCall{{ID: "c1", Name: "ls", Input: json.RawMessage(`{}`)}}
	if !m.HasToolCalls() {
		t.Error("HasToolCalls() = false with a tool call present")
	}
}

func TestCloneMessagesDeepCopy(t *testing.T) {
	original := []Message{NewAssistantMessage("hi")}
	original[0].ToolCalls = []ToolCall{{ID: "c1", Name: "ls", Input: json.RawMessage(`{"a":1}`)}}
	original[0].Metadata = map[string]any{"k": "v"}

	clone := CloneMessages(original)
	clone[0].Content = "changed"
	clone[0].ToolCalls[0].Name = "changed"
	clone[0].Metadata["k"] = "changed"

	if original[0].Content != "hi" {
		t.Error("clone shares the message struct")
	}
	if original[0].ToolCalls[0].Name != "ls" {
		t.Error("clone shares the tool call slice")
	}
	if original[0].Metadata["k"] != "v" {
		t.Error("clone shares the metadata map")
	}
}
