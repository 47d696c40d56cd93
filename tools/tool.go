// Package tools defines the tool contract for deepagent agents and the
// built-in tools backed by the shared agent state (virtual file store and
// todo list).
//
// Tools receive a read-only snapshot of the agent state alongside their
// input and return a result string for the model plus an optional state
// patch. Model-visible failures (missing file, ambiguous edit) are reported
// in the result string; a Go error aborts the turn.
package tools

import (
	"context"
	"encoding/json"

	"github.com/youssefsiam38/deepagent/state"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// Name returns the tool name (used in API calls)
	Name() string

	// Description returns a human-readable description of what the tool does
	Description() string

	// InputSchema returns the JSON Schema for the tool's input parameters
	InputSchema() ToolSchema

	// Execute runs the tool against a state snapshot. It returns the result
	// text for the model and an optional patch with state changes. The
	// snapshot must not be mutated.
	Execute(ctx context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error)
}

// ToolSchema defines the JSON Schema for a tool's input parameters
type ToolSchema struct {
	// Type must be "object"
	Type string `json:"type"`

	// Properties defines the tool's parameters
	Properties map[string]PropertyDef `json:"properties"`

	// Required lists the names of required parameters
	Required []string `json:"required,omitempty"`
}

// PropertyDef defines a single property in the tool schema
type PropertyDef struct {
	// Type is the JSON Schema type (string, number, boolean, array, object)
	Type string `json:"type"`

	// Description explains what this parameter is for
	Description string `json:"description,omitempty"`

	// Enum restricts the parameter to specific values
	Enum []string `json:"enum,omitempty"`

	// Items defines the schema for array items (when Type is "array")
	Items *PropertyDef `json:"items,omitempty"`

	// Properties defines nested object properties (when Type is "object")
	Properties map[string]PropertyDef `json:"properties,omitempty"`
}

// funcTool is a simple Tool implementation using a function
type funcTool struct {
	name        string
	description string
	schema      ToolSchema
	fn          func(context.Context, json.RawMessage, *state.State) (string, *state.Patch, error)
}

// Name implements Tool
func (t *funcTool) Name() string {
	return t.name
}

// Description implements Tool
func (t *funcTool) Description() string {
	return t.description
}

// InputSchema implements Tool
func (t *funcTool) InputSchema() ToolSchema {
	return t.schema
}

// Execute implements Tool
func (t *funcTool) Execute(ctx context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	return t.fn(ctx, input, st)
}

// NewFuncTool creates a Tool from a function.
// Useful for simple tools where a full struct is overkill.
func NewFuncTool(
	name string,
	description string,
	schema ToolSchema,
	fn func(context.Context, json.RawMessage, *state.State) (string, *state.Patch, error),
) Tool {
	return &funcTool{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}
