// Package compression keeps a growing conversation and its file store
// within configured size limits before each model call.
//
// # Components
//
// The package has two independent channels:
//
//   - Message trimming (Trim): selects a budget-satisfying, boundary-valid
//     window of the conversation. The window is a contiguous block grown from
//     the head or tail depending on the strategy; order is never reshuffled.
//
//   - File compression (CompressFiles): truncates oversized file contents
//     with a deterministic head/tail/elision rule.
//
// NewPreModelHook combines both into a single pre-model hook that returns a
// state patch. In destructive mode the patch replaces the canonical history
// outright; in non-destructive mode it only populates the ephemeral view
// consumed by the next model call, leaving the full record intact for future
// compression decisions and audit.
//
// # Token Counting
//
// Token counting is an injected capability (the Counter interface), assumed
// approximate. The package ships a character-based estimator, an offline BPE
// counter backed by tiktoken, and a counter backed by the Anthropic token
// counting API with an approximation fallback.
//
// # Failure Policy
//
// Context-size management must never be the reason a turn fails. When no
// window satisfies both the budget and the boundary roles, Trim returns the
// smallest boundary-valid window over budget and flags it. When the counter
// fails, the hook skips message trimming for the turn, still attempts file
// compression, and logs a warning. The hook never returns an error.
package compression
