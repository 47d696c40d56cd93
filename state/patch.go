package state

import (
	"github.com/youssefsiam38/deepagent/types"
)

// MessagesPatch updates the canonical history. ReplaceAll is a tagged
// variant, not a sentinel value: when true, Messages replaces the entire
// history; when false, Messages is appended to it.
type MessagesPatch struct {
	ReplaceAll bool
	Messages   []types.Message
}

// AppendMessages returns a patch fragment that appends messages to the
// canonical history
func AppendMessages(messages ...types.Message) *MessagesPatch {
	return &MessagesPatch{Messages: messages}
}

// ReplaceAllMessages returns a patch fragment that replaces the entire
// canonical history. This is irreversible: the prior history is not
// retrievable through this path.
func ReplaceAllMessages(messages []types.Message) *MessagesPatch {
	return &MessagesPatch{ReplaceAll: true, Messages: messages}
}

// Patch is a partial state update returned by a hook. Nil fields mean
// "leave untouched". Patches are applied by the state owner, never by the
// hook that produced them.
type Patch struct {
	// Messages appends to or replaces the canonical history.
	Messages *MessagesPatch

	// LLMInputMessages populates the ephemeral view for the next model call.
	LLMInputMessages []types.Message

	// Files replaces the file store wholesale.
	Files map[string]string

	// Todos replaces the task list.
	Todos []Todo

	// Extra carries caller-defined fields, merged per key.
	Extra map[string]any
}

// IsZero reports whether the patch changes nothing.
// A nil or zero patch is a true no-op: hook chains collapse it to nil so
// hosts can skip a redundant state update.
func (p *Patch) IsZero() bool {
	if p == nil {
		return true
	}
	return p.Messages == nil &&
		p.LLMInputMessages == nil &&
		p.Files == nil &&
		p.Todos == nil &&
		len(p.Extra) == 0
}

// Clone returns a shallow-field copy of the patch. The message slices and
// maps referenced by the fields are shared; patches are treated as
// immutable once returned by a hook.
func (p *Patch) Clone() *Patch {
	if p == nil {
		return nil
	}
	c := &Patch{
		Messages:         p.Messages,
		LLMInputMessages: p.LLMInputMessages,
		Files:            p.Files,
		Todos:            p.Todos,
	}
	if p.Extra != nil {
		c.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// Merge folds other into p with last-writer-wins semantics: every field set
// on other overwrites the corresponding field on p. It returns the names of
// the fields that were overwritten, so callers can log patch conflicts.
func (p *Patch) Merge(other *Patch) []string {
	if other == nil {
		return nil
	}
	var conflicts []string
	if other.Messages != nil {
		if p.Messages != nil {
			conflicts = append(conflicts, "messages")
		}
		p.Messages = other.Messages
	}
	if other.LLMInputMessages != nil {
		if p.LLMInputMessages != nil {
			conflicts = append(conflicts, "llm_input_messages")
		}
		p.LLMInputMessages = other.LLMInputMessages
	}
	if other.Files != nil {
		if p.Files != nil {
			conflicts = append(conflicts, "files")
		}
		p.Files = other.Files
	}
	if other.Todos != nil {
		if p.Todos != nil {
			conflicts = append(conflicts, "todos")
		}
		p.Todos = other.Todos
	}
	for k, v := range other.Extra {
		if p.Extra == nil {
			p.Extra = make(map[string]any, len(other.Extra))
		}
		if _, exists := p.Extra[k]; exists {
			conflicts = append(conflicts, "extra."+k)
		}
		p.Extra[k] = v
	}
	return conflicts
}

// Apply returns a new state with the patch applied. The input state is
// never mutated.
func (p *Patch) Apply(s *State) *State {
	next := s.Clone()
	if p == nil {
		return next
	}
	if p.Messages != nil {
		if p.Messages.ReplaceAll {
			next.Messages = types.CloneMessages(p.Messages.Messages)
		} else {
			next.Messages = append(next.Messages, types.CloneMessages(p.Messages.Messages)...)
		}
	}
	if p.LLMInputMessages != nil {
		next.LLMInputMessages = types.CloneMessages(p.LLMInputMessages)
	}
	if p.Files != nil {
		next.Files = make(map[string]string, len(p.Files))
		for k, v := range p.Files {
			next.Files[k] = v
		}
	}
	if p.Todos != nil {
		next.Todos = make([]Todo, len(p.Todos))
		copy(next.Todos, p.Todos)
	}
	if len(p.Extra) > 0 {
		if next.Extra == nil {
			next.Extra = make(map[string]any, len(p.Extra))
		}
		for k, v := range p.Extra {
			next.Extra[k] = v
		}
	}
	return next
}
