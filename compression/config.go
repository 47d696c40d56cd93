package compression

import (
	"fmt"

	"github.com/youssefsiam38/deepagent/types"
)

// Strategy selects which end of the conversation the kept window grows from.
type Strategy string

const (
	// StrategyLatest keeps the most recent messages, growing the window
	// leftward from the tail. This is the default.
	StrategyLatest Strategy = "latest"

	// StrategyEarliest keeps the earliest messages, growing the window
	// rightward from the head.
	StrategyEarliest Strategy = "earliest"
)

// Default configuration values.
const (
	DefaultMaxTokens   = 8000
	DefaultStrategy    = StrategyLatest
	DefaultStartOn     = types.RoleUser
	DefaultMaxFileSize = 10000
)

// DefaultEndOn is the default set of roles allowed at the window's last element.
func DefaultEndOn() []types.Role {
	return []types.Role{types.RoleUser, types.RoleTool}
}

// Config holds compression configuration.
//
// A Config is constructed once by the caller and treated as immutable
// afterwards; the hook and the trim/compress functions only read it.
type Config struct {
	// MaxTokens is the token budget for the message window.
	// Default: 8000
	MaxTokens int

	// Strategy selects which end of the conversation to keep.
	// Default: StrategyLatest
	Strategy Strategy

	// StartOn is the role required at the kept window's first element.
	// Default: types.RoleUser
	StartOn types.Role

	// EndOn is the set of roles allowed at the kept window's last element.
	// Default: {types.RoleUser, types.RoleTool}
	EndOn []types.Role

	// IncludeSystem preserves every system message in the conversation,
	// re-inserting them in original order even when they fall outside the
	// selected window. System messages do not participate in the window
	// search; their cost does count toward the reported tokens-after.
	IncludeSystem bool

	// CompressFiles enables file store compression.
	CompressFiles bool

	// MaxFileSize is the content length in characters above which a file is
	// truncated. Default: 10000
	MaxFileSize int

	// Destructive controls how the trimmed window is applied. When true, the
	// patch replaces the entire canonical history (irreversible). When false,
	// the patch only populates the ephemeral view for the next model call.
	Destructive bool
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     DefaultMaxTokens,
		Strategy:      DefaultStrategy,
		StartOn:       DefaultStartOn,
		EndOn:         DefaultEndOn(),
		IncludeSystem: true,
		CompressFiles: true,
		MaxFileSize:   DefaultMaxFileSize,
		Destructive:   false,
	}
}

// ApplyDefaults fills in zero values with defaults. The boolean fields keep
// whatever value they hold; start from DefaultConfig to get IncludeSystem
// and CompressFiles enabled.
func (c *Config) ApplyDefaults() {
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if c.StartOn == "" {
		c.StartOn = DefaultStartOn
	}
	if len(c.EndOn) == 0 {
		c.EndOn = DefaultEndOn()
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive, got %d", ErrInvalidConfig, c.MaxTokens)
	}
	if c.Strategy != StrategyLatest && c.Strategy != StrategyEarliest {
		return fmt.Errorf("%w: unknown strategy %q, must be %q or %q",
			ErrInvalidConfig, c.Strategy, StrategyLatest, StrategyEarliest)
	}
	if c.StartOn == "" {
		return fmt.Errorf("%w: start_on role is required", ErrInvalidConfig)
	}
	if len(c.EndOn) == 0 {
		return fmt.Errorf("%w: end_on must name at least one role", ErrInvalidConfig)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	return nil
}

// endsOn reports whether role is an allowed window endpoint.
func (c *Config) endsOn(role types.Role) bool {
	for _, r := range c.EndOn {
		if r == role {
			return true
		}
	}
	return false
}
