package notification

import (
	"fmt"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// Event types sent at the end of a run.
const (
	EventCompleted   = "completed"
	EventInterrupted = "interrupted"
	EventToolMissing = "tool_missing"
)

// FormatEvent creates a notification message for the given event.
// s may be nil for EventToolMissing.
func FormatEvent(event string, s *model.RunSummary, exitCode int) string {
	switch event {
	case EventCompleted:
		if len(s.Failed) == 0 {
			return fmt.Sprintf("✅ spotdl-bulk [%s] downloaded %d/%d URLs (exit %d)", s.RunID, len(s.Succeeded), s.Total, exitCode)
		}
		return fmt.Sprintf("⚠️ spotdl-bulk [%s] downloaded %d/%d URLs, %d failed (exit %d)", s.RunID, len(s.Succeeded), s.Total, len(s.Failed), exitCode)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ spotdl-bulk [%s] interrupted after %d/%d URLs (exit %d)", s.RunID, s.Processed(), s.Total, exitCode)
	case EventToolMissing:
		return fmt.Sprintf("❌ spotdl-bulk aborted: download tool not available (exit %d)", exitCode)
	default:
		return fmt.Sprintf("ℹ️ spotdl-bulk event: %s (exit %d)", event, exitCode)
	}
}
