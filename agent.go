package deepagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/youssefsiam38/deepagent/compression"
	"github.com/youssefsiam38/deepagent/hooks"
	"github.com/youssefsiam38/deepagent/state"
	"github.com/youssefsiam38/deepagent/tools"
	"github.com/youssefsiam38/deepagent/types"
)

// Agent is an Anthropic-backed agent with planning, filesystem, and
// sub-agent tools, plus optional context compression.
type Agent struct {
	config   *internalConfig
	registry *tools.Registry
	preHook  hooks.StateUpdateFunc
	postHook hooks.StateUpdateFunc
}

// New creates a new Agent with the given configuration and options
func New(cfg Config, opts ...Option) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	internal := newInternalConfig(cfg)
	for _, opt := range opts {
		if err := opt(internal); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	registry := tools.NewRegistry()
	if err := registerBuiltins(registry, internal.builtinNames); err != nil {
		return nil, err
	}
	for _, t := range internal.tools {
		registry.Register(t)
	}
	if len(internal.subagents) > 0 {
		registry.Register(newTaskTool(internal, registry.All()))
	}

	agent := &Agent{
		config:   internal,
		registry: registry,
	}

	if internal.compression != nil {
		counter := internal.counter
		hook, err := compression.NewPreModelHook(*internal.compression, counter, internal.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to build compression hook: %w", err)
		}
		agent.preHook = hook
	}

	var postSteps []hooks.StateUpdateFunc
	if internal.approver != nil {
		postSteps = append(postSteps, hooks.NewApprovalHook(internal.approver, internal.approved...))
	}
	postSteps = append(postSteps, internal.postHooks...)
	if len(postSteps) > 0 {
		agent.postHook = hooks.ChainLogged(internal.logger, postSteps...)
	}

	return agent, nil
}

// registerBuiltins registers the built-in tools. A nil names slice means
// all of them; an empty slice means none.
func registerBuiltins(registry *tools.Registry, names []string) error {
	builtins := tools.Builtins()
	if names == nil {
		for _, t := range builtins {
			registry.Register(t)
		}
		return nil
	}
	byName := make(map[string]tools.Tool, len(builtins))
	for _, t := range builtins {
		byName[t.Name()] = t
	}
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return NewAgentError("New", ErrToolNotFound).WithContext("tool", name)
		}
		registry.Register(t)
	}
	return nil
}

// Model returns the model this agent calls
func (a *Agent) Model() string {
	return a.config.model
}

// Tools returns the names of the agent's registered tools in order
func (a *Agent) Tools() []string {
	all := a.registry.All()
	names := make([]string, 0, len(all))
	for _, t := range all {
		names = append(names, t.Name())
	}
	return names
}

// Run executes one agent turn: it appends the user input to the state,
// then loops between the model and tool execution until the model responds
// without tool calls or the iteration limit is hit. The input state is
// never mutated; the returned state is the new canonical state.
//
// Pre-model hooks run before every model call; post-model hooks run after
// every response. Hook and tool failures degrade where possible: a failed
// tool reports its error to the model as the tool result.
func (a *Agent) Run(ctx context.Context, st *state.State, input string) (*state.State, error) {
	if st == nil {
		st = state.New()
	}
	st = applyPatch(st, &state.Patch{
		Messages: state.AppendMessages(types.NewUserMessage(input)),
	})

	for i := 0; i < a.config.maxToolIterations; i++ {
		var err error
		st, err = a.step(ctx, st)
		if err != nil {
			return st, err
		}
		if len(pendingToolCalls(st)) > 0 {
			st, err = a.executeTools(ctx, st)
			if err != nil {
				return st, err
			}
			continue
		}
		return st, nil
	}

	return st, NewAgentError("Run", ErrMaxToolIterations).
		WithContext("max_iterations", a.config.maxToolIterations)
}

// step runs the pre-model hook, calls the model, records the assistant
// message, and runs the post-model hook.
func (a *Agent) step(ctx context.Context, st *state.State) (*state.State, error) {
	if a.preHook != nil {
		patch, err := a.preHook(ctx, st)
		if err != nil {
			return st, NewAgentError("step", err).WithContext("hook", "pre_model")
		}
		st = applyPatch(st, patch)
	}

	params := a.buildParams(st.ModelInput())
	resp, err := a.config.client.Messages.New(ctx, params)

	// The ephemeral model input is consumed by the call either way.
	if st.LLMInputMessages != nil {
		st = st.Clone()
		st.LLMInputMessages = nil
	}
	if err != nil {
		return st, NewAgentError("step", err).WithContext("model", a.config.model)
	}

	assistant := parseResponse(resp)
	a.config.logger.Debug("model response",
		"stop_reason", string(resp.StopReason),
		"tool_calls", len(assistant.ToolCalls))
	st = applyPatch(st, &state.Patch{Messages: state.AppendMessages(assistant)})

	if a.postHook != nil {
		patch, err := a.postHook(ctx, st)
		if err != nil {
			return st, NewAgentError("step", err).WithContext("hook", "post_model")
		}
		st = applyPatch(st, patch)
	}

	return st, nil
}

// executeTools runs every unanswered tool call from the last assistant
// message and appends the results.
func (a *Agent) executeTools(ctx context.Context, st *state.State) (*state.State, error) {
	for _, call := range pendingToolCalls(st) {
		result, patch := a.executeTool(ctx, st, call)
		st = applyPatch(st, patch)
		st = applyPatch(st, &state.Patch{
			Messages: state.AppendMessages(types.NewToolMessage(result, call.ID)),
		})
		if err := ctx.Err(); err != nil {
			return st, err
		}
	}
	return st, nil
}

// executeTool runs one tool call. Failures become model-visible error
// results instead of aborting the run.
func (a *Agent) executeTool(ctx context.Context, st *state.State, call types.ToolCall) (string, *state.Patch) {
	t, ok := a.registry.Get(call.Name)
	if !ok {
		a.config.logger.Warn("unknown tool requested", "tool", call.Name)
		return fmt.Sprintf("Error: tool '%s' not found", call.Name), nil
	}

	toolCtx, cancel := context.WithTimeout(ctx, a.config.toolTimeout)
	defer cancel()

	result, patch, err := t.Execute(toolCtx, call.Input, st)
	if err != nil {
		a.config.logger.Warn("tool execution failed", "tool", call.Name, "error", err)
		return fmt.Sprintf("Error: %s", err), nil
	}
	a.config.logger.Debug("tool executed", "tool", call.Name)
	return result, patch
}

// pendingToolCalls returns the tool calls from the last assistant message
// that have no tool result yet. An approval hook answering a call with a
// reply removes it from the pending set.
func pendingToolCalls(st *state.State) []types.ToolCall {
	last := -1
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Role == types.RoleAssistant {
			last = i
			break
		}
	}
	if last < 0 || !st.Messages[last].HasToolCalls() {
		return nil
	}

	answered := make(map[string]bool)
	for _, m := range st.Messages[last+1:] {
		if m.Role == types.RoleTool && m.ToolCallID != "" {
			answered[m.ToolCallID] = true
		}
	}

	var pending []types.ToolCall
	for _, call := range st.Messages[last].ToolCalls {
		if !answered[call.ID] {
			pending = append(pending, call)
		}
	}
	return pending
}

// applyPatch applies a patch to the state, tolerating nil and empty patches.
func applyPatch(st *state.State, patch *state.Patch) *state.State {
	if patch.IsZero() {
		return st
	}
	return patch.Apply(st)
}

// buildParams assembles the API request for the given conversation view.
func (a *Agent) buildParams(messages []types.Message) anthropic.MessageNewParams {
	system := []anthropic.TextBlockParam{
		{Text: a.config.instructions + basePrompt},
	}

	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case types.RoleUser:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case types.RoleAssistant:
			params = append(params, convertAssistantMessage(msg))
		case types.RoleTool:
			params = append(params, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false)))
		}
	}

	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.model),
		MaxTokens: a.config.maxTokens,
		System:    system,
		Messages:  params,
	}
	if a.config.temperature != nil {
		req.Temperature = anthropic.Float(*a.config.temperature)
	}
	if a.config.topK != nil {
		req.TopK = anthropic.Int(*a.config.topK)
	}
	if a.config.topP != nil {
		req.TopP = anthropic.Float(*a.config.topP)
	}
	if len(a.config.stopSequences) > 0 {
		req.StopSequences = a.config.stopSequences
	}
	if a.registry.Count() > 0 {
		req.Tools = a.registry.ToAnthropicToolUnions()
	}
	return req
}

// convertAssistantMessage rebuilds an assistant turn with its tool use
// blocks for the API.
func convertAssistantMessage(msg types.Message) anthropic.MessageParam {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, 1+len(msg.ToolCalls))
	if msg.Content != "" {
		blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
	}
	for _, call := range msg.ToolCalls {
		var input any
		if len(call.Input) > 0 {
			_ = json.Unmarshal(call.Input, &input)
		}
		// The API requires an object, not null.
		if input == nil {
			input = map[string]any{}
		}
		blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, input, call.Name))
	}
	return anthropic.NewAssistantMessage(blocks...)
}

// parseResponse converts an API response into an assistant message.
func parseResponse(resp *anthropic.Message) types.Message {
	var text string
	var calls []types.ToolCall
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			if text != "" {
				text += "\n"
			}
			text += b.Text
		case anthropic.ToolUseBlock:
			calls = append(calls, types.ToolCall{
				ID:    b.ID,
				Name:  b.Name,
				Input: json.RawMessage(b.Input),
			})
		}
	}

	msg := types.NewAssistantMessage(text)
	msg.ToolCalls = calls
	return msg
}
