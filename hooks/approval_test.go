package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/youssefsiam38/deepagent/state"
	"github.com/youssefsiam38/deepagent/types"
)

func stateWithCalls(calls ...types.ToolCall) *state.State {
	st := state.New()
	msg := types.NewAssistantMessage("")
	msg.ToolCalls = calls
	st.Messages = []types.Message{types.NewUserMessage("do it"), msg}
	return st
}

func call(id, name string) types.ToolCall {
	return types.ToolCall{ID: id, Name: name, Input: json.RawMessage(`{}`)}
}

func decide(action ApprovalAction, resp ApprovalResponse) Approver {
	resp.Action = action
	return ApproverFunc(func(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error) {
		return resp, nil
	})
}

func TestApprovalNotNeeded(t *testing.T) {
	tests := []struct {
		name string
		st   *state.State
	}{
		{name: "empty state", st: state.New()},
		{name: "no tool calls", st: func() *state.State {
			st := state.New()
			st.Messages = []types.Message{types.NewAssistantMessage("plain answer")}
			return st
		}()},
		{name: "only ungated calls", st: stateWithCalls(call("c1", "ls"))},
	}

	approver := ApproverFunc(func(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error) {
		t.Error("approver consulted for an ungated call")
		return ApprovalResponse{Action: ApprovalAccept}, nil
	})
	hook := NewApprovalHook(approver, "write_file")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := hook(context.Background(), tt.st)
			if err != nil {
				t.Fatalf("hook error = %v", err)
			}
			if patch != nil {
				t.Errorf("patch = %+v, want nil", patch)
			}
		})
	}
}

func TestApprovalAcceptKeepsCall(t *testing.T) {
	hook := NewApprovalHook(decide(ApprovalAccept, ApprovalResponse{}), "write_file")
	st := stateWithCalls(call("c1", "ls"), call("c2", "write_file"))

	patch, err := hook(context.Background(), st)
	if err != nil {
		t.Fatalf("hook error = %v", err)
	}
	next := patch.Apply(st)

	last := next.Messages[len(next.Messages)-1]
	if len(last.ToolCalls) != 2 {
		t.Fatalf("got %d tool calls, want both to survive", len(last.ToolCalls))
	}
	names := map[string]bool{}
	for _, c := range last.ToolCalls {
		names[c.Name] = true
	}
	if !names["ls"] || !names["write_file"] {
		t.Errorf("surviving calls = %v", last.ToolCalls)
	}
}

func TestApprovalEditRewritesCall(t *testing.T) {
	edited := types.ToolCall{
		ID:    "ignored by the hook",
		Name:  "write_file",
		Input: json.RawMessage(`{"file_path":"safe.txt","content":"ok"}`),
	}
	hook := NewApprovalHook(decide(ApprovalEdit, ApprovalResponse{EditedCall: &edited}), "write_file")
	st := stateWithCalls(call("c2", "write_file"))

	patch, err := hook(context.Background(), st)
	if err != nil {
		t.Fatalf("hook error = %v", err)
	}
	next := patch.Apply(st)

	last := next.Messages[len(next.Messages)-1]
	if len(last.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(last.ToolCalls))
	}
	got := last.ToolCalls[0]
	if got.ID != "c2" {
		t.Errorf("edited call ID = %q, want the original ID preserved", got.ID)
	}
	if string(got.Input) != string(edited.Input) {
		t.Errorf("edited input not applied: %s", got.Input)
	}
}

func TestApprovalRespondAnswersCall(t *testing.T) {
	hook := NewApprovalHook(
		decide(ApprovalRespond, ApprovalResponse{Reply: "not allowed today"}), "write_file")
	st := stateWithCalls(call("c2", "write_file"))

	patch, err := hook(context.Background(), st)
	if err != nil {
		t.Fatalf("hook error = %v", err)
	}
	next := patch.Apply(st)

	last := next.Messages[len(next.Messages)-1]
	if last.Role != types.RoleTool {
		t.Fatalf("last message role = %q, want tool", last.Role)
	}
	if last.ToolCallID != "c2" || last.Content != "not allowed today" {
		t.Errorf("reply message = %+v", last)
	}
}

func TestApprovalMultipleGatedCalls(t *testing.T) {
	hook := NewApprovalHook(decide(ApprovalAccept, ApprovalResponse{}), "write_file", "edit_file")
	st := stateWithCalls(call("c1", "write_file"), call("c2", "edit_file"))

	_, err := hook(context.Background(), st)
	if !errors.Is(err, ErrMultipleApprovalRequests) {
		t.Errorf("error = %v, want ErrMultipleApprovalRequests", err)
	}
}

func TestApprovalUnknownAction(t *testing.T) {
	hook := NewApprovalHook(decide("escalate", ApprovalResponse{}), "write_file")
	st := stateWithCalls(call("c1", "write_file"))

	_, err := hook(context.Background(), st)
	if !errors.Is(err, ErrUnknownApprovalAction) {
		t.Errorf("error = %v, want ErrUnknownApprovalAction", err)
	}
}

func TestApprovalEditWithoutCall(t *testing.T) {
	hook := NewApprovalHook(decide(ApprovalEdit, ApprovalResponse{}), "write_file")
	st := stateWithCalls(call("c1", "write_file"))

	_, err := hook(context.Background(), st)
	if !errors.Is(err, ErrApprovalEditMissingCall) {
		t.Errorf("error = %v, want ErrApprovalEditMissingCall", err)
	}
}
