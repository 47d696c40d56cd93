package compression

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/youssefsiam38/deepagent/types"
)

// APICounter counts tokens with the Anthropic token counting API, falling
// back to the character estimate if the API is unavailable. Counts reflect
// the model's real tokenizer but cost a network round trip per call.
type APICounter struct {
	client *anthropic.Client
	model  string
}

// NewAPICounter creates a counter backed by the token counting API.
func NewAPICounter(client *anthropic.Client, model string) *APICounter {
	return &APICounter{client: client, model: model}
}

// CountTokens implements Counter.
func (c *APICounter) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		// The counting endpoint only accepts user/assistant turns. System and
		// tool content is counted as user text; the metric is approximate by
		// contract, so the role mismatch is acceptable.
		role := anthropic.MessageParamRoleUser
		if msg.Role == types.RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		content := msg.Content
		if content == "" && len(msg.ToolCalls) == 0 {
			continue
		}
		blocks := []anthropic.ContentBlockParamUnion{}
		if content != "" {
			blocks = append(blocks, anthropic.NewTextBlock(content))
		}
		for _, call := range msg.ToolCalls {
			blocks = append(blocks, anthropic.NewTextBlock(string(call.Input)))
		}
		params = append(params, anthropic.MessageParam{
			Role:    role,
			Content: blocks,
		})
	}

	if len(params) == 0 {
		return 0, nil
	}

	resp, err := c.client.Messages.CountTokens(ctx, anthropic.MessageCountTokensParams{
		Model:    anthropic.Model(c.model),
		Messages: params,
	})
	if err != nil {
		// Fallback to approximation if the API fails.
		return ApproxCounter{}.CountTokens(ctx, messages)
	}
	return int(resp.InputTokens), nil
}
