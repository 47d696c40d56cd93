package compression

import (
	"context"

	"github.com/youssefsiam38/deepagent/hooks"
	"github.com/youssefsiam38/deepagent/state"
	"github.com/youssefsiam38/deepagent/types"
)

// Logger interface for compression logging.
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

// NewPreModelHook returns a pre-model hook that enforces the context budget.
//
// The file and message channels are decoupled: either may produce changes
// alone. With cfg.Destructive set, a trimmed window replaces the entire
// canonical history; otherwise it only populates the ephemeral view and the
// canonical history stays intact. Counter failures degrade to "skip message
// trimming, still attempt file compression" with a logged warning; the
// returned hook itself never returns an error.
//
// A nil counter defaults to the character-based ApproxCounter; a nil logger
// is silent.
func NewPreModelHook(cfg Config, counter Counter, logger Logger) (hooks.StateUpdateFunc, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if counter == nil {
		counter = ApproxCounter{}
	}
	if logger == nil {
		logger = noopLogger{}
	}

	return func(ctx context.Context, st *state.State) (*state.Patch, error) {
		patch := &state.Patch{}

		var fileNotice *types.Message
		if cfg.CompressFiles && len(st.Files) > 0 {
			if names := OversizedFiles(st.Files, cfg); len(names) > 0 {
				patch.Files = CompressFiles(st.Files, cfg)
				notice := newFileNotice(names, cfg.MaxFileSize)
				fileNotice = &notice
				logger.Info("files compressed",
					"count", len(names),
					"max_file_size", cfg.MaxFileSize,
				)
			}
		}

		var trimmed *TrimResult
		if len(st.Messages) > 0 {
			result, err := Trim(ctx, st.Messages, cfg, counter)
			switch {
			case err != nil:
				logger.Warn("message trimming skipped", "error", err)
			case result.Changed:
				trimmed = result
				if result.OverBudget {
					logger.Warn("kept window exceeds token budget",
						"tokens_after", result.TokensAfter,
						"max_tokens", cfg.MaxTokens,
					)
				}
				logger.Info("context trimmed",
					"dropped", result.DroppedCount,
					"tokens_before", result.TokensBefore,
					"tokens_after", result.TokensAfter,
					"strategy", cfg.Strategy,
					"destructive", cfg.Destructive,
				)
			}
		}

		switch {
		case trimmed != nil:
			window := trimmed.Kept
			if fileNotice != nil {
				window = append(window, *fileNotice)
			}
			if cfg.Destructive {
				patch.Messages = state.ReplaceAllMessages(window)
			} else {
				patch.LLMInputMessages = window
			}

		case fileNotice != nil:
			if cfg.Destructive {
				patch.Messages = state.AppendMessages(*fileNotice)
			} else {
				patch.LLMInputMessages = append(types.CloneMessages(st.Messages), *fileNotice)
			}
		}

		if patch.IsZero() {
			return nil, nil
		}
		return patch, nil
	}, nil
}
