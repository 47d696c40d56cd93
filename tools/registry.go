package tools

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
)

// Registry holds an agent's tools in registration order.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a name twice replaces the earlier tool
// without changing its position.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get returns the tool with the given name
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	return len(r.order)
}

// All returns the tools in registration order
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// ToAnthropicToolUnions converts the registered tools to API parameters
func (r *Registry) ToAnthropicToolUnions() []anthropic.ToolUnionParam {
	unions := make([]anthropic.ToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		param := convertToolToParam(r.tools[name])
		unions = append(unions, anthropic.ToolUnionParam{OfTool: &param})
	}
	return unions
}

// convertToolToParam converts a single tool to Anthropic format
func convertToolToParam(t Tool) anthropic.ToolParam {
	schema := t.InputSchema()

	properties := make(map[string]interface{}, len(schema.Properties))
	for propName, propDef := range schema.Properties {
		properties[propName] = convertPropertyDef(propDef)
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Type:       constant.Object("object"),
		Properties: properties,
	}
	if len(schema.Required) > 0 {
		inputSchema.Required = schema.Required
	}

	return anthropic.ToolParam{
		Name:        t.Name(),
		Description: anthropic.String(t.Description()),
		InputSchema: inputSchema,
	}
}

// convertPropertyDef converts a property definition to Anthropic format
func convertPropertyDef(def PropertyDef) map[string]interface{} {
	prop := map[string]interface{}{
		"type": def.Type,
	}
	if def.Description != "" {
		prop["description"] = def.Description
	}
	if len(def.Enum) > 0 {
		prop["enum"] = def.Enum
	}
	if def.Items != nil {
		prop["items"] = convertPropertyDef(*def.Items)
	}
	if len(def.Properties) > 0 {
		nested := make(map[string]interface{}, len(def.Properties))
		for name, p := range def.Properties {
			nested[name] = convertPropertyDef(p)
		}
		prop["properties"] = nested
	}
	return prop
}
