package deepagent

import (
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/youssefsiam38/deepagent/compression"
	"github.com/youssefsiam38/deepagent/hooks"
	"github.com/youssefsiam38/deepagent/tools"
)

// Logger interface for agent logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a no-op implementation of Logger.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

// Config holds the required configuration for an agent.
//
// Example:
//
//	client := anthropic.NewClient()
//	agent, _ := deepagent.New(deepagent.Config{
//	    Client:       &client,
//	    Instructions: "You are a helpful assistant",
//	})
type Config struct {
	// Client is the Anthropic API client (required)
	Client *anthropic.Client

	// Model is the model ID to use. Defaults to DefaultModel.
	Model string

	// Instructions is the agent's system prompt (required). The standard
	// tool guidance is appended to it.
	Instructions string
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Client == nil {
		return fmt.Errorf("%w: Anthropic client is required", ErrInvalidConfig)
	}
	if c.Instructions == "" {
		return fmt.Errorf("%w: Instructions are required", ErrInvalidConfig)
	}
	return nil
}

// internalConfig holds the full agent configuration including optional parameters
type internalConfig struct {
	// Required from Config
	client       *anthropic.Client
	model        string
	instructions string

	// Optional model parameters
	maxTokens     int64
	temperature   *float64
	topK          *int64
	topP          *float64
	stopSequences []string

	// Tooling
	tools             []tools.Tool
	builtinNames      []string // nil = all builtins
	subagents         []SubAgent
	maxToolIterations int
	toolTimeout       time.Duration

	// Hooks
	compression *compression.Config
	counter     compression.Counter
	approver    hooks.Approver
	approved    []string
	postHooks   []hooks.StateUpdateFunc

	logger Logger
}

// newInternalConfig creates a new internal config from the public Config
func newInternalConfig(cfg Config) *internalConfig {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &internalConfig{
		client:       cfg.Client,
		model:        model,
		instructions: cfg.Instructions,

		maxTokens:         DefaultMaxTokens,
		maxToolIterations: DefaultMaxToolIterations,
		toolTimeout:       DefaultToolTimeout,

		logger: noopLogger{},
	}
}
