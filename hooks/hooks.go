// Package hooks provides the state-update hook contract and a combinator
// for composing independent hooks into one ordered pipeline.
//
// A hook is any function that takes a state snapshot and returns an optional
// patch. Hooks run before or after each model call: the compression package
// provides the standard pre-model hook, and this package provides built-in
// post-model hooks (approval gating, logging) plus Chain for combining them
// with caller-supplied steps.
package hooks

import (
	"context"
	"fmt"

	"github.com/youssefsiam38/deepagent/state"
)

// StateUpdateFunc is a single state-mutation step. It receives an immutable
// snapshot of the agent state and returns a patch describing its changes,
// or nil when it has nothing to change. Steps must not mutate st.
type StateUpdateFunc func(ctx context.Context, st *state.State) (*state.Patch, error)

// Logger interface for hook logging.
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

// Chain composes steps into a single StateUpdateFunc. See ChainLogged.
func Chain(steps ...StateUpdateFunc) StateUpdateFunc {
	return ChainLogged(nil, steps...)
}

// ChainLogged composes steps into a single StateUpdateFunc.
//
// Steps execute strictly in order against a working copy of the state: the
// patch from step i is applied to the working copy before step i+1 runs, so
// later steps observe earlier effects. The composed result is the union of
// all patches with last-writer-wins on field conflicts; conflicts are logged
// but are not errors. If every step returns nil, the composed function
// returns nil rather than an empty patch.
//
// A step error aborts the chain and is returned to the caller.
func ChainLogged(logger Logger, steps ...StateUpdateFunc) StateUpdateFunc {
	if logger == nil {
		logger = noopLogger{}
	}
	return func(ctx context.Context, st *state.State) (*state.Patch, error) {
		working := st.Clone()
		var merged *state.Patch
		for i, step := range steps {
			if step == nil {
				continue
			}
			patch, err := step(ctx, working)
			if err != nil {
				return nil, fmt.Errorf("hook chain step %d: %w", i, err)
			}
			if patch.IsZero() {
				continue
			}
			working = patch.Apply(working)
			if merged == nil {
				merged = patch.Clone()
				continue
			}
			for _, field := range merged.Merge(patch) {
				logger.Warn("hook patch conflict, last writer wins",
					"field", field,
					"step", i,
				)
			}
		}
		return merged, nil
	}
}
