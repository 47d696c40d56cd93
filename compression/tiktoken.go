package compression

import (
	"context"

	"github.com/tiktoken-go/tokenizer"

	"github.com/youssefsiam38/deepagent/types"
)

// TiktokenCounter counts tokens offline with a BPE vocabulary. It is not
// the model's exact tokenizer, but it tracks real counts far better than a
// character estimate and needs no network access.
type TiktokenCounter struct {
	codec tokenizer.Codec
}

// NewTiktokenCounter creates a counter using the o200k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	codec, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		return nil, NewCompressionError("NewTiktokenCounter", err)
	}
	return &TiktokenCounter{codec: codec}, nil
}

// CountTokens implements Counter. Content that fails to encode falls back
// to the character estimate.
func (c *TiktokenCounter) CountTokens(_ context.Context, messages []types.Message) (int, error) {
	total := 0
	for _, m := range messages {
		total += c.countOrEstimate(m.Content)
		for _, call := range m.ToolCalls {
			total += c.countOrEstimate(string(call.Input))
		}
	}
	return total, nil
}

func (c *TiktokenCounter) countOrEstimate(text string) int {
	n, err := c.codec.Count(text)
	if err != nil {
		return ApproximateTokens(text)
	}
	return n
}
