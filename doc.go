// Package deepagent provides a stateful AI agent toolkit for Go with
// automatic context compression.
//
// Deepagent is opinionated (Anthropic) and modular: agents carry a virtual
// file store and todo list in shared state, mutate that state only through
// patches returned by hooks and tools, and keep their context within a
// token budget before every model call.
//
// # Quick Start
//
// Create an agent with required configuration:
//
//	client := anthropic.NewClient()
//	agent, err := deepagent.New(
//	    deepagent.Config{
//	        Client:       &client,
//	        Model:        "claude-sonnet-4-20250514",
//	        Instructions: "You are a helpful research assistant",
//	    },
//	    deepagent.WithCompression(compression.DefaultConfig()),
//	)
//
// Run the agent against a state it owns between turns:
//
//	st := state.New()
//	st, err = agent.Run(ctx, st, "Summarize the notes in notes.txt")
//
// # Context Compression
//
// With WithCompression, a pre-model hook trims the conversation window and
// truncates oversized files before each call (see the compression package).
// Non-destructive mode (the default) sends a trimmed ephemeral view while
// the canonical history stays intact; destructive mode rewrites the history
// itself.
//
// # Hooks
//
// Post-model steps — approval gating via WithApproval, caller-supplied
// steps via WithPostModelHook — compose into one ordered pipeline (see the
// hooks package). Steps exchange patches, never mutate shared state, and
// later steps observe earlier effects.
//
// # Tools and Sub-Agents
//
// Built-in tools cover the virtual file store and the todo list; custom
// tools implement the tools.Tool interface. Sub-agents registered with
// WithSubAgents become callable through a "task" tool that runs an isolated
// child agent sharing only the file store.
package deepagent
