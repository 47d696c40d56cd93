package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/youssefsiam38/deepagent/state"
)

// WriteTodosTool replaces the agent's task list. The model is expected to
// call it frequently to plan work and mark tasks completed.
type WriteTodosTool struct{}

type writeTodosInput struct {
	Todos []state.Todo `json:"todos"`
}

// Name implements Tool
func (WriteTodosTool) Name() string { return "write_todos" }

// Description implements Tool
func (WriteTodosTool) Description() string {
	return "Replace the task list. Use this to plan multi-step work and to mark " +
		"tasks completed as soon as they are done."
}

// InputSchema implements Tool
func (WriteTodosTool) InputSchema() ToolSchema {
	return ToolSchema{
		Type: "object",
		Properties: map[string]PropertyDef{
			"todos": {
				Type:        "array",
				Description: "The full task list, replacing the previous one",
				Items: &PropertyDef{
					Type: "object",
					Properties: map[string]PropertyDef{
						"content": {Type: "string", Description: "What needs to be done"},
						"status": {
							Type:        "string",
							Description: "Task state",
							Enum:        []string{"pending", "in_progress", "completed"},
						},
					},
				},
			},
		},
		Required: []string{"todos"},
	}
}

// Execute implements Tool
func (WriteTodosTool) Execute(_ context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	var in writeTodosInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, fmt.Errorf("write_todos: %w", err)
	}
	todos := in.Todos
	if todos == nil {
		todos = []state.Todo{}
	}
	return fmt.Sprintf("Updated todo list to %d item(s)", len(todos)), &state.Patch{Todos: todos}, nil
}

// Builtins returns the built-in tools in their canonical order.
func Builtins() []Tool {
	return []Tool{
		WriteTodosTool{},
		WriteFileTool{},
		ReadFileTool{},
		LsTool{},
		EditFileTool{},
	}
}
