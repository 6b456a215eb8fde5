// Package download runs the external download tool for one work item and
// wraps it with bounded, linearly backed-off retries.
package download

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// Executor runs the download tool once for a single work item.
// A zero status means success; any other value is a tool-reported failure.
// A *ToolUnavailableError means the tool could not be launched at all.
type Executor interface {
	Run(ctx context.Context, item model.WorkItem) (int, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, item model.WorkItem) (int, error)

// Run calls f(ctx, item).
func (f ExecutorFunc) Run(ctx context.Context, item model.WorkItem) (int, error) {
	return f(ctx, item)
}

// ToolUnavailableError is returned when the download tool binary cannot be
// located or started. It aborts the whole run.
type ToolUnavailableError struct {
	Tool string
	Err  error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("%s could not be launched: %v", e.Tool, e.Err)
}

func (e *ToolUnavailableError) Unwrap() error {
	return e.Err
}
