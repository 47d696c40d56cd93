package compression

import (
	"errors"
	"testing"

	"github.com/youssefsiam38/deepagent/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}
	if cfg.Strategy != StrategyLatest {
		t.Errorf("Strategy = %q, want latest", cfg.Strategy)
	}
	if !cfg.IncludeSystem || !cfg.CompressFiles {
		t.Error("IncludeSystem and CompressFiles should default on")
	}
	if cfg.Destructive {
		t.Error("Destructive should default off")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want default", cfg.MaxTokens)
	}
	if cfg.StartOn != types.RoleUser {
		t.Errorf("StartOn = %q, want user", cfg.StartOn)
	}
	if len(cfg.EndOn) != 2 {
		t.Errorf("EndOn = %v, want user and tool", cfg.EndOn)
	}
	// Zero-value booleans are kept: use DefaultConfig when the defaults for
	// IncludeSystem and CompressFiles are wanted.
	if cfg.IncludeSystem || cfg.CompressFiles {
		t.Error("ApplyDefaults must not flip boolean fields")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: true,
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Strategy = "middle" },
			wantErr: true,
		},
		{
			name:    "missing start role",
			mutate:  func(c *Config) { c.StartOn = "" },
			wantErr: true,
		},
		{
			name:    "empty end roles",
			mutate:  func(c *Config) { c.EndOn = nil },
			wantErr: true,
		},
		{
			name:    "zero max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
