package deepagent

import (
	"time"

	"github.com/youssefsiam38/deepagent/compression"
	"github.com/youssefsiam38/deepagent/hooks"
	"github.com/youssefsiam38/deepagent/tools"
)

// Option is a functional option for configuring an Agent
type Option func(*internalConfig) error

// WithMaxTokens sets the maximum number of tokens to generate per model call
func WithMaxTokens(n int64) Option {
	return func(c *internalConfig) error {
		c.maxTokens = n
		return nil
	}
}

// WithTemperature sets the temperature for sampling (0.0 to 1.0)
func WithTemperature(t float64) Option {
	return func(c *internalConfig) error {
		c.temperature = &t
		return nil
	}
}

// WithTopK sets the top-k sampling parameter
func WithTopK(k int64) Option {
	return func(c *internalConfig) error {
		c.topK = &k
		return nil
	}
}

// WithTopP sets the nucleus sampling parameter
func WithTopP(p float64) Option {
	return func(c *internalConfig) error {
		c.topP = &p
		return nil
	}
}

// WithStopSequences sets custom stop sequences
func WithStopSequences(sequences ...string) Option {
	return func(c *internalConfig) error {
		c.stopSequences = sequences
		return nil
	}
}

// WithTools registers additional tools with the agent
func WithTools(ts ...tools.Tool) Option {
	return func(c *internalConfig) error {
		for _, t := range ts {
			schema := t.InputSchema()
			if schema.Type != "object" {
				return NewAgentError("WithTools", ErrInvalidToolSchema).
					WithContext("tool", t.Name()).
					WithContext("reason", "schema type must be 'object'")
			}
			c.tools = append(c.tools, t)
		}
		return nil
	}
}

// WithBuiltinTools restricts the built-in tools to the named ones. Without
// this option, all built-in tools are registered; calling it with no names
// registers none.
func WithBuiltinTools(names ...string) Option {
	return func(c *internalConfig) error {
		if names == nil {
			names = []string{}
		}
		c.builtinNames = names
		return nil
	}
}

// WithCompression enables the context compression pre-model hook
func WithCompression(cfg compression.Config) Option {
	return func(c *internalConfig) error {
		c.compression = &cfg
		return nil
	}
}

// WithTokenCounter sets the token counter used by compression.
// Defaults to the character-based estimator.
func WithTokenCounter(counter compression.Counter) Option {
	return func(c *internalConfig) error {
		c.counter = counter
		return nil
	}
}

// WithSubAgents registers sub-agents callable through the task tool
func WithSubAgents(subs ...SubAgent) Option {
	return func(c *internalConfig) error {
		for _, s := range subs {
			if s.Name == "" {
				return NewAgentError("WithSubAgents", ErrInvalidConfig).
					WithContext("reason", "sub-agent name is required")
			}
			c.subagents = append(c.subagents, s)
		}
		return nil
	}
}

// WithApproval gates the named tools behind the approver. Calls to other
// tools run without approval.
func WithApproval(approver hooks.Approver, toolNames ...string) Option {
	return func(c *internalConfig) error {
		c.approver = approver
		c.approved = toolNames
		return nil
	}
}

// WithPostModelHook appends a custom post-model hook step. Steps run after
// the built-in approval hook, in registration order.
func WithPostModelHook(h hooks.StateUpdateFunc) Option {
	return func(c *internalConfig) error {
		c.postHooks = append(c.postHooks, h)
		return nil
	}
}

// WithLogger sets the agent's logger
func WithLogger(l Logger) Option {
	return func(c *internalConfig) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMaxToolIterations sets the maximum tool call iterations per Run (default 10)
func WithMaxToolIterations(n int) Option {
	return func(c *internalConfig) error {
		if n <= 0 {
			return NewAgentError("WithMaxToolIterations", ErrInvalidConfig).
				WithContext("n", n).
				WithContext("reason", "must be positive")
		}
		c.maxToolIterations = n
		return nil
	}
}

// WithToolTimeout sets the timeout for individual tool executions (default 5m)
func WithToolTimeout(timeout time.Duration) Option {
	return func(c *internalConfig) error {
		if timeout <= 0 {
			return NewAgentError("WithToolTimeout", ErrInvalidConfig).
				WithContext("timeout", timeout).
				WithContext("reason", "timeout must be positive")
		}
		c.toolTimeout = timeout
		return nil
	}
}
