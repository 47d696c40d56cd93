package compression

import (
	"context"

	"github.com/youssefsiam38/deepagent/types"
)

// Counter provides approximate token counts for message windows.
// Counting is an injected capability: tests substitute a deterministic
// counter, production code uses one of the implementations below.
type Counter interface {
	CountTokens(ctx context.Context, messages []types.Message) (int, error)
}

// CounterFunc adapts a function to the Counter interface.
type CounterFunc func(ctx context.Context, messages []types.Message) (int, error)

// CountTokens implements Counter
func (f CounterFunc) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return f(ctx, messages)
}

// ApproximateTokens provides fast estimation without a tokenizer.
// English text runs roughly 4 characters per token; any non-empty string
// counts as at least 1.
func ApproximateTokens(content string) int {
	return (len(content) + 3) / 4
}

// ApproxCounter is a character-based Counter. It is additive: the count of
// a window equals the sum of its messages' counts, which keeps window
// search and final budget checks consistent.
type ApproxCounter struct{}

// CountTokens implements Counter
func (ApproxCounter) CountTokens(_ context.Context, messages []types.Message) (int, error) {
	total := 0
	for _, m := range messages {
		total += ApproximateTokens(m.Content)
		for _, call := range m.ToolCalls {
			total += ApproximateTokens(string(call.Input))
		}
	}
	return total, nil
}
