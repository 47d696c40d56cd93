package hooks

import (
	"context"
	"fmt"

	"github.com/youssefsiam38/deepagent/state"
	"github.com/youssefsiam38/deepagent/types"
)

// ApprovalAction is the decision an approver can make for a gated tool call.
type ApprovalAction string

const (
	// ApprovalAccept runs the tool call unchanged.
	ApprovalAccept ApprovalAction = "accept"

	// ApprovalEdit runs the tool call with an edited name or input.
	ApprovalEdit ApprovalAction = "edit"

	// ApprovalRespond skips the tool and answers the call with a direct reply.
	ApprovalRespond ApprovalAction = "respond"
)

// ApprovalRequest describes a tool call awaiting a decision.
type ApprovalRequest struct {
	// ToolCall is the pending call, including its input.
	ToolCall types.ToolCall

	// Description is a human-readable summary of what is being approved.
	Description string
}

// ApprovalResponse is an approver's decision.
type ApprovalResponse struct {
	Action ApprovalAction

	// EditedCall carries the replacement name and input for ApprovalEdit.
	// The original call's ID is always preserved.
	EditedCall *types.ToolCall

	// Reply is the direct answer recorded for ApprovalRespond.
	Reply string
}

// Approver decides whether a gated tool call may run. Implementations
// typically block on human input; how that input is transported is the
// caller's concern.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error)
}

// ApproverFunc adapts a function to the Approver interface.
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error)

// Approve implements Approver
func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error) {
	return f(ctx, req)
}

// NewApprovalHook returns a post-model hook that gates the named tools
// behind the approver. Tool calls for unlisted tools are auto-approved.
//
// The hook inspects the last message: if it carries exactly one gated tool
// call, the approver decides its fate. Accept leaves the call in place,
// edit rewrites it (replacing the whole history with the corrected last
// message), and respond answers the call with a tool message so the tool
// never runs. More than one gated call in a single message is an error.
func NewApprovalHook(approver Approver, toolNames ...string) StateUpdateFunc {
	gatedNames := make(map[string]bool, len(toolNames))
	for _, name := range toolNames {
		gatedNames[name] = true
	}

	return func(ctx context.Context, st *state.State) (*state.Patch, error) {
		if len(st.Messages) == 0 {
			return nil, nil
		}
		last := st.Messages[len(st.Messages)-1]
		if last.Role != types.RoleAssistant || !last.HasToolCalls() {
			return nil, nil
		}

		var gated []types.ToolCall
		auto := make([]types.ToolCall, 0, len(last.ToolCalls))
		for _, call := range last.ToolCalls {
			if gatedNames[call.Name] {
				gated = append(gated, call)
			} else {
				auto = append(auto, call)
			}
		}
		if len(gated) == 0 {
			return nil, nil
		}
		if len(gated) > 1 {
			return nil, fmt.Errorf("%w: got %d", ErrMultipleApprovalRequests, len(gated))
		}

		call := gated[0]
		resp, err := approver.Approve(ctx, ApprovalRequest{
			ToolCall:    call,
			Description: fmt.Sprintf("Tool execution requires approval\n\nTool: %s\nArgs: %s", call.Name, call.Input),
		})
		if err != nil {
			return nil, fmt.Errorf("approval for tool %q: %w", call.Name, err)
		}

		switch resp.Action {
		case ApprovalAccept:
			return approvedCallsPatch(st, append(auto, call)), nil

		case ApprovalEdit:
			if resp.EditedCall == nil {
				return nil, ErrApprovalEditMissingCall
			}
			edited := *resp.EditedCall
			edited.ID = call.ID
			return approvedCallsPatch(st, append(auto, edited)), nil

		case ApprovalRespond:
			return &state.Patch{
				Messages: state.AppendMessages(types.NewToolMessage(resp.Reply, call.ID)),
			}, nil

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownApprovalAction, resp.Action)
		}
	}
}

// approvedCallsPatch rewrites the last message's tool calls. The patch
// replaces the full history because the canonical record must reflect the
// approved call set, not the one the model originally proposed.
func approvedCallsPatch(st *state.State, approved []types.ToolCall) *state.Patch {
	messages := types.CloneMessages(st.Messages)
	messages[len(messages)-1].ToolCalls = approved
	return &state.Patch{Messages: state.ReplaceAllMessages(messages)}
}
