package compression

import (
	"fmt"
	"strings"

	"github.com/youssefsiam38/deepagent/types"
)

// NoticeMetadataKey marks synthetic system messages emitted by this package
// to record what was changed. Notices exist for observability only: they are
// excluded from budget accounting, and a later trim drops stale ones rather
// than preserving them with the real system messages.
const NoticeMetadataKey = "compression_notice"

// IsNotice reports whether the message is a compression notice.
func IsNotice(m types.Message) bool {
	if m.Metadata == nil {
		return false
	}
	v, ok := m.Metadata[NoticeMetadataKey].(bool)
	return ok && v
}

func newNotice(content string) types.Message {
	m := types.NewSystemMessage(content)
	m.Metadata = map[string]any{NoticeMetadataKey: true}
	return m
}

func newTrimNotice(result *TrimResult, messagesBefore int, strategy Strategy) types.Message {
	content := fmt.Sprintf(
		"[SYSTEM: Context trimmed - reduced from %d to %d messages, ~%d to ~%d tokens using %q strategy.]",
		messagesBefore, len(result.Kept), result.TokensBefore, result.TokensAfter, strategy,
	)
	if result.OverBudget {
		content += " [WARNING: No window satisfied both the token budget and the boundary roles; the smallest boundary-valid window was kept and still exceeds the budget.]"
	}
	return newNotice(content)
}

func newFileNotice(names []string, maxFileSize int) types.Message {
	return newNotice(fmt.Sprintf(
		"[SYSTEM: Files compressed - %s truncated due to size limit (%d chars).]",
		strings.Join(names, ", "), maxFileSize,
	))
}
