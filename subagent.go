package deepagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/youssefsiam38/deepagent/state"
	"github.com/youssefsiam38/deepagent/tools"
	"github.com/youssefsiam38/deepagent/types"
)

const (
	taskToolName = "task"

	// generalPurposeName is the sub-agent registered on every agent that
	// carries the task tool. It runs with the parent's instructions.
	generalPurposeName = "general-purpose"
)

// SubAgent describes an agent that can be invoked through the task tool.
// Sub-agents run in an isolated conversation but share the parent's file
// store.
type SubAgent struct {
	// Name identifies the sub-agent in task tool calls
	Name string

	// Description tells the model when to delegate to this sub-agent
	Description string

	// Prompt is the sub-agent's system prompt
	Prompt string

	// Tools restricts the sub-agent to the named tools. Nil means all of
	// the parent's tools except task.
	Tools []string
}

const taskToolDescription = `Launch a sub-agent to handle complex, multi-step independent tasks.

The sub-agent starts with a fresh conversation but shares your filesystem.
Give it a detailed, self-contained task description; its final response is
returned to you as the tool result. Use it to keep large intermediate work
out of your own context.`

// taskTool delegates work to a sub-agent with an isolated conversation.
type taskTool struct {
	cfg         *internalConfig
	subagents   []SubAgent
	parentTools []tools.Tool
}

// newTaskTool builds the task tool for an agent. parentTools are the
// agent's tools excluding task itself; they are what sub-agents without an
// explicit tool list inherit.
func newTaskTool(cfg *internalConfig, parentTools []tools.Tool) *taskTool {
	subs := make([]SubAgent, 0, len(cfg.subagents)+1)
	subs = append(subs, SubAgent{
		Name:        generalPurposeName,
		Description: "General-purpose agent for researching complex questions and executing multi-step tasks.",
		Prompt:      cfg.instructions,
	})
	subs = append(subs, cfg.subagents...)
	return &taskTool{
		cfg:         cfg,
		subagents:   subs,
		parentTools: parentTools,
	}
}

// Name implements tools.Tool
func (t *taskTool) Name() string {
	return taskToolName
}

// Description implements tools.Tool
func (t *taskTool) Description() string {
	desc := taskToolDescription + "\n\nAvailable sub-agent types:\n"
	for _, s := range t.subagents {
		desc += fmt.Sprintf("- %s: %s\n", s.Name, s.Description)
	}
	return desc
}

// InputSchema implements tools.Tool
func (t *taskTool) InputSchema() tools.ToolSchema {
	names := make([]string, 0, len(t.subagents))
	for _, s := range t.subagents {
		names = append(names, s.Name)
	}
	return tools.ToolSchema{
		Type: "object",
		Properties: map[string]tools.PropertyDef{
			"description": {
				Type:        "string",
				Description: "Self-contained description of the task for the sub-agent to perform",
			},
			"subagent_type": {
				Type:        "string",
				Description: "The type of sub-agent to launch",
				Enum:        names,
			},
		},
		Required: []string{"description", "subagent_type"},
	}
}

// Execute implements tools.Tool. It runs the requested sub-agent to
// completion and returns its final response. The sub-agent's file changes
// are propagated back through the returned patch.
func (t *taskTool) Execute(ctx context.Context, input json.RawMessage, st *state.State) (string, *state.Patch, error) {
	var in struct {
		Description  string `json:"description"`
		SubagentType string `json:"subagent_type"`
	}
	if err := json.Unmarshal(input, &in); err != nil {
		return "", nil, NewAgentError("task", err)
	}

	sub, ok := t.lookup(in.SubagentType)
	if !ok {
		return "", nil, NewAgentError("task", ErrUnknownSubAgent).
			WithContext("subagent_type", in.SubagentType)
	}

	child, err := t.childAgent(sub)
	if err != nil {
		return "", nil, NewAgentError("task", err).WithContext("subagent", sub.Name)
	}

	childState := state.New()
	childState.Files = make(map[string]string, len(st.Files))
	for name, content := range st.Files {
		childState.Files[name] = content
	}

	final, err := child.Run(ctx, childState, in.Description)
	if err != nil {
		return "", nil, NewAgentError("task", err).WithContext("subagent", sub.Name)
	}

	patch := &state.Patch{Files: final.Files}
	return lastAssistantContent(final.Messages), patch, nil
}

func (t *taskTool) lookup(name string) (SubAgent, bool) {
	for _, s := range t.subagents {
		if s.Name == name {
			return s, true
		}
	}
	return SubAgent{}, false
}

// childAgent builds an agent for the sub-agent definition. The child shares
// the parent's client, model, and compression setup but never gets a task
// tool of its own.
func (t *taskTool) childAgent(sub SubAgent) (*Agent, error) {
	selected := t.parentTools
	if sub.Tools != nil {
		allowed := make(map[string]bool, len(sub.Tools))
		for _, name := range sub.Tools {
			allowed[name] = true
		}
		selected = nil
		for _, tool := range t.parentTools {
			if allowed[tool.Name()] {
				selected = append(selected, tool)
			}
		}
	}

	opts := []Option{
		WithBuiltinTools(), // parent tools carried explicitly below
		WithTools(selected...),
		WithMaxTokens(t.cfg.maxTokens),
		WithMaxToolIterations(t.cfg.maxToolIterations),
		WithToolTimeout(t.cfg.toolTimeout),
		WithLogger(t.cfg.logger),
	}
	if t.cfg.compression != nil {
		opts = append(opts, WithCompression(*t.cfg.compression))
	}
	if t.cfg.counter != nil {
		opts = append(opts, WithTokenCounter(t.cfg.counter))
	}

	return New(Config{
		Client:       t.cfg.client,
		Model:        t.cfg.model,
		Instructions: sub.Prompt,
	}, opts...)
}

// lastAssistantContent returns the content of the last assistant message,
// or a placeholder when the conversation holds none.
func lastAssistantContent(messages []types.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == types.RoleAssistant && messages[i].Content != "" {
			return messages[i].Content
		}
	}
	return "Sub-agent finished without a response."
}
