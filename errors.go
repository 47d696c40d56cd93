package deepagent

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig is returned when the agent configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrToolNotFound is returned when a tool cannot be found
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidToolSchema is returned when a tool schema is invalid
	ErrInvalidToolSchema = errors.New("invalid tool schema")

	// ErrMaxToolIterations is returned when a run exceeds the tool iteration limit
	ErrMaxToolIterations = errors.New("max tool iterations reached")

	// ErrUnknownSubAgent is returned when the task tool names a sub-agent
	// that was never registered
	ErrUnknownSubAgent = errors.New("unknown sub-agent")
)

// AgentError represents an error with additional context
type AgentError struct {
	Op      string         // Operation that failed
	Err     error          // Underlying error
	Context map[string]any // Additional context
}

// Error implements the error interface
func (e *AgentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *AgentError) Unwrap() error {
	return e.Err
}

// WithContext adds additional context to the error
func (e *AgentError) WithContext(key string, value any) *AgentError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewAgentError creates a new AgentError
func NewAgentError(op string, err error) *AgentError {
	return &AgentError{
		Op:  op,
		Err: err,
	}
}
