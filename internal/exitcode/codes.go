// Package exitcode defines named exit codes for the spotdl-bulk CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and cron jobs.
package exitcode

// Exit code constants.
const (
	Success     = 0 // All items processed (individual failures included)
	Error       = 1 // Invalid args, URL file missing or empty, misconfiguration
	ToolMissing = 2 // Download tool could not be launched

	// Interrupted is a clean cancellation, not an error.
	Interrupted = Success
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case ToolMissing:
		return "ToolMissing"
	default:
		return "unknown"
	}
}
