// Package state defines the shared agent state record and the patch algebra
// used to update it.
//
// Hooks never mutate state directly. Each hook receives an immutable snapshot
// and returns a Patch; whoever owns the state (the agent loop, or a hook
// chain's working copy) applies patches. This keeps the destructive and
// non-destructive compression paths from aliasing each other.
package state

import (
	"github.com/youssefsiam38/deepagent/types"
)

// TodoStatus represents the progress of a single todo entry
type TodoStatus string

const (
	// TodoPending marks a task that has not been started
	TodoPending TodoStatus = "pending"

	// TodoInProgress marks a task that is currently being worked on
	TodoInProgress TodoStatus = "in_progress"

	// TodoCompleted marks a finished task
	TodoCompleted TodoStatus = "completed"
)

// Todo is a single entry in the agent's task list
type Todo struct {
	Content string     `json:"content"`
	Status  TodoStatus `json:"status"`
}

// State is the shared record an agent operates on.
//
// Messages is the canonical history: durable, and replaced wholesale only
// when a destructive patch fires. LLMInputMessages is the ephemeral view, a
// transient substitute list consumed by exactly one model call and then
// discarded; when nil, the canonical history is sent instead.
type State struct {
	// Messages is the canonical conversation history.
	Messages []types.Message

	// LLMInputMessages, when non-nil, replaces Messages as the input for the
	// next model call only. It is never read back by hooks.
	LLMInputMessages []types.Message

	// Files maps file name to content. It is replaced wholesale by patches,
	// never mutated in place.
	Files map[string]string

	// Todos is the agent's task list.
	Todos []Todo

	// Extra holds caller-defined state fields written by custom hooks.
	Extra map[string]any
}

// New returns an empty state
func New() *State {
	return &State{
		Files: make(map[string]string),
	}
}

// Clone returns a deep copy of the state.
// Hook chains clone before running steps so that no step observes
// another's in-flight mutations except through applied patches.
func (s *State) Clone() *State {
	if s == nil {
		return New()
	}
	c := &State{
		Messages:         types.CloneMessages(s.Messages),
		LLMInputMessages: types.CloneMessages(s.LLMInputMessages),
	}
	if s.Files != nil {
		c.Files = make(map[string]string, len(s.Files))
		for k, v := range s.Files {
			c.Files[k] = v
		}
	}
	if s.Todos != nil {
		c.Todos = make([]Todo, len(s.Todos))
		copy(c.Todos, s.Todos)
	}
	if s.Extra != nil {
		c.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// ModelInput returns the message list the next model call should consume:
// the ephemeral view when one is populated, otherwise the canonical history.
func (s *State) ModelInput() []types.Message {
	if s.LLMInputMessages != nil {
		return s.LLMInputMessages
	}
	return s.Messages
}
