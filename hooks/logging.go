package hooks

import (
	"context"

	"github.com/youssefsiam38/deepagent/state"
)

// NewLoggingHook returns a step that records the state it observes and
// returns no patch. Useful as the last step of a post-model chain to see
// what earlier steps produced.
func NewLoggingHook(logger Logger) StateUpdateFunc {
	if logger == nil {
		logger = noopLogger{}
	}
	return func(ctx context.Context, st *state.State) (*state.Patch, error) {
		totalChars := 0
		for _, m := range st.Messages {
			totalChars += len(m.Content)
		}
		logger.Debug("state snapshot",
			"messages", len(st.Messages),
			"ephemeral_messages", len(st.LLMInputMessages),
			"message_chars", totalChars,
			"files", len(st.Files),
			"todos", len(st.Todos),
		)
		return nil, nil
	}
}
