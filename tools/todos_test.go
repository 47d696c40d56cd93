package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/youssefsiam38/deepagent/state"
)

func TestWriteTodosTool(t *testing.T) {
	st := state.New()
	st.Todos = []state.Todo{{Content: "old plan", Status: state.TodoInProgress}}

	input := `{"todos":[
		{"content":"step one","status":"completed"},
		{"content":"step two","status":"pending"}
	]}`
	result, patch, err := WriteTodosTool{}.Execute(context.Background(), json.RawMessage(input), st)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result != "Updated todo list to 2 item(s)" {
		t.Errorf("result = %q", result)
	}
	if len(patch.Todos) != 2 {
		t.Fatalf("patch has %d todos, want full replacement with 2", len(patch.Todos))
	}
	if patch.Todos[0].Status != state.TodoCompleted {
		t.Errorf("todo status = %q, want completed", patch.Todos[0].Status)
	}
	if len(st.Todos) != 1 {
		t.Error("tool mutated the state snapshot")
	}
}

func TestWriteTodosToolEmptyList(t *testing.T) {
	_, patch, err := WriteTodosTool{}.Execute(context.Background(), json.RawMessage(`{"todos":[]}`), state.New())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if patch.Todos == nil {
		t.Error("empty list must still replace the todos, not leave them untouched")
	}
}

func TestBuiltinsOrder(t *testing.T) {
	want := []string{"write_todos", "write_file", "read_file", "ls", "edit_file"}
	builtins := Builtins()
	if len(builtins) != len(want) {
		t.Fatalf("got %d builtins, want %d", len(builtins), len(want))
	}
	for i, tool := range builtins {
		if tool.Name() != want[i] {
			t.Errorf("builtin[%d] = %q, want %q", i, tool.Name(), want[i])
		}
	}
}
