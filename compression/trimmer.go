package compression

import (
	"context"

	"github.com/youssefsiam38/deepagent/types"
)

// TrimResult contains the outcome of a Trim call.
type TrimResult struct {
	// Kept is the resulting message window, in original order, including
	// re-inserted system messages and, when Changed, a trailing trim notice.
	Kept []types.Message

	// DroppedCount is the number of input messages not present in Kept.
	DroppedCount int

	// TokensBefore is the counted cost of the input conversation.
	TokensBefore int

	// TokensAfter is the counted cost of Kept, excluding the trim notice.
	// Re-inserted system messages are included in this figure.
	TokensAfter int

	// Changed reports whether any trimming happened. When false, Kept is the
	// input unchanged and no notice was appended.
	Changed bool

	// OverBudget reports that no window satisfied both the budget and the
	// boundary roles, so the smallest boundary-valid window (or, failing
	// that, the whole conversation) was kept despite exceeding the budget.
	OverBudget bool
}

// Trim selects a budget-satisfying, boundary-valid window of the
// conversation. The window is a contiguous block of non-system messages
// grown from the tail (StrategyLatest) or the head (StrategyEarliest);
// message order is never altered.
//
// The first element of the window must have role cfg.StartOn and the last
// must have a role in cfg.EndOn; the window is shrunk to the nearest
// positions satisfying both, even below the budget-optimal size. With
// IncludeSystem set, every system message is unconditionally re-inserted in
// original order without participating in the window search.
//
// Trim only fails when the injected counter fails; every structural
// situation degrades to a flagged result instead (see TrimResult.OverBudget).
func Trim(ctx context.Context, messages []types.Message, cfg Config, counter Counter) (*TrimResult, error) {
	countable := withoutNotices(messages)
	tokensBefore, err := counter.CountTokens(ctx, countable)
	if err != nil {
		return nil, NewCompressionError("Trim", ErrCounterFailure).WithContext("cause", err)
	}

	if tokensBefore <= cfg.MaxTokens {
		return &TrimResult{
			Kept:         messages,
			TokensBefore: tokensBefore,
			TokensAfter:  tokensBefore,
		}, nil
	}

	costs, err := perMessageCosts(ctx, messages, counter)
	if err != nil {
		return nil, err
	}

	// Candidate indices for the window search. System messages sit out when
	// IncludeSystem re-inserts them; stale notices never participate.
	var candidates []int
	for i, m := range messages {
		if IsNotice(m) {
			continue
		}
		if cfg.IncludeSystem && m.Role == types.RoleSystem {
			continue
		}
		candidates = append(candidates, i)
	}

	block := searchWindow(candidates, costs, cfg)
	block = shrinkToBoundaries(block, messages, cfg)

	overBudget := false
	if len(block) == 0 {
		block = minimalValidWindow(candidates, messages, cfg)
		overBudget = true
		if len(block) == 0 {
			// No boundary-valid window exists anywhere. Keep everything
			// rather than sending the model an invalid sequence.
			block = candidates
		}
	}

	keep := make(map[int]bool, len(block))
	for _, i := range block {
		keep[i] = true
	}
	if cfg.IncludeSystem {
		for i, m := range messages {
			if m.Role == types.RoleSystem && !IsNotice(m) {
				keep[i] = true
			}
		}
	}

	kept := make([]types.Message, 0, len(keep))
	for i, m := range messages {
		if keep[i] {
			kept = append(kept, m)
		}
	}

	tokensAfter, err := counter.CountTokens(ctx, withoutNotices(kept))
	if err != nil {
		return nil, NewCompressionError("Trim", ErrCounterFailure).WithContext("cause", err)
	}

	result := &TrimResult{
		Kept:         kept,
		DroppedCount: len(messages) - len(kept),
		TokensBefore: tokensBefore,
		TokensAfter:  tokensAfter,
		Changed:      true,
		OverBudget:   overBudget,
	}
	notice := newTrimNotice(result, len(messages), cfg.Strategy)
	result.Kept = append(result.Kept, notice)
	return result, nil
}

// perMessageCosts counts each message individually. Notices cost nothing.
func perMessageCosts(ctx context.Context, messages []types.Message, counter Counter) ([]int, error) {
	costs := make([]int, len(messages))
	for i, m := range messages {
		if IsNotice(m) {
			continue
		}
		c, err := counter.CountTokens(ctx, messages[i:i+1])
		if err != nil {
			return nil, NewCompressionError("Trim", ErrCounterFailure).WithContext("cause", err)
		}
		costs[i] = c
	}
	return costs, nil
}

// searchWindow grows a contiguous block of candidates within the budget.
// This is a best-fit prefix/suffix search, not an optimal subset selection.
func searchWindow(candidates []int, costs []int, cfg Config) []int {
	sum := 0
	switch cfg.Strategy {
	case StrategyEarliest:
		end := 0
		for i := 0; i < len(candidates); i++ {
			c := costs[candidates[i]]
			if sum+c > cfg.MaxTokens {
				break
			}
			sum += c
			end = i + 1
		}
		return candidates[:end]

	default: // StrategyLatest
		start := len(candidates)
		for i := len(candidates) - 1; i >= 0; i-- {
			c := costs[candidates[i]]
			if sum+c > cfg.MaxTokens {
				break
			}
			sum += c
			start = i
		}
		return candidates[start:]
	}
}

// shrinkToBoundaries drops leading elements until the window starts on
// cfg.StartOn and trailing elements until it ends on a role in cfg.EndOn.
// Returns an empty window when no position satisfies both.
func shrinkToBoundaries(block []int, messages []types.Message, cfg Config) []int {
	for len(block) > 0 && messages[block[0]].Role != cfg.StartOn {
		block = block[1:]
	}
	for len(block) > 0 && !cfg.endsOn(messages[block[len(block)-1]].Role) {
		block = block[:len(block)-1]
	}
	return block
}

// minimalValidWindow finds the smallest boundary-valid window nearest the
// kept end of the conversation, ignoring the budget. Used as the fallback
// when the budget and boundary constraints cannot both be met.
func minimalValidWindow(candidates []int, messages []types.Message, cfg Config) []int {
	switch cfg.Strategy {
	case StrategyEarliest:
		for s := 0; s < len(candidates); s++ {
			if messages[candidates[s]].Role != cfg.StartOn {
				continue
			}
			for e := s; e < len(candidates); e++ {
				if cfg.endsOn(messages[candidates[e]].Role) {
					return candidates[s : e+1]
				}
			}
			return nil
		}
		return nil

	default: // StrategyLatest
		for e := len(candidates) - 1; e >= 0; e-- {
			if !cfg.endsOn(messages[candidates[e]].Role) {
				continue
			}
			for s := e; s >= 0; s-- {
				if messages[candidates[s]].Role == cfg.StartOn {
					return candidates[s : e+1]
				}
			}
			return nil
		}
		return nil
	}
}

// withoutNotices filters stale compression notices out of a window for
// budget accounting.
func withoutNotices(messages []types.Message) []types.Message {
	out := make([]types.Message, 0, len(messages))
	for _, m := range messages {
		if IsNotice(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}
