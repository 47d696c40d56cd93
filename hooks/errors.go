package hooks

import (
	"errors"
)

// Sentinel errors for hook operations.
var (
	// ErrMultipleApprovalRequests indicates more than one gated tool call in
	// a single assistant message. The approval hook handles one at a time.
	ErrMultipleApprovalRequests = errors.New("only one tool call may require approval per message")

	// ErrUnknownApprovalAction indicates the approver returned an action the
	// hook does not recognize.
	ErrUnknownApprovalAction = errors.New("unknown approval action")

	// ErrApprovalEditMissingCall indicates an edit response without the
	// edited tool call.
	ErrApprovalEditMissingCall = errors.New("edit approval response carries no edited tool call")
)
