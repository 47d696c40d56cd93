package deepagent

import "time"

// Defaults for optional agent configuration.
const (
	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultMaxTokens is the default generation limit per model call.
	DefaultMaxTokens = 8192

	// DefaultMaxToolIterations bounds the tool-calling loop per Run.
	DefaultMaxToolIterations = 10

	// DefaultToolTimeout bounds a single tool execution.
	DefaultToolTimeout = 5 * time.Minute
)

// basePrompt is appended to the caller's instructions so every agent knows
// about the planning and file tools it carries.
const basePrompt = `

You have access to a number of standard tools

## write_todos

Use the write_todos tool very frequently to plan tasks, break complex work
into smaller steps, and give the user visibility into your progress. Mark
todos as completed as soon as you finish them; do not batch completions.

## Filesystem

The ls, read_file, write_file, and edit_file tools operate on a virtual
filesystem shared across the whole run. Use files to stash intermediate
results instead of repeating them in conversation.

## task

When work can be delegated in isolation (such as web research), prefer the
task tool in order to reduce context usage.`
