package download

import (
	"context"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// RetryRunner wraps an Executor with RetryWithBackoff retry logic.
type RetryRunner struct {
	Inner    Executor
	RetryCfg RetryConfig
}

// Run executes item through the inner executor, retrying failed attempts.
func (r *RetryRunner) Run(ctx context.Context, item model.WorkItem) (Result, error) {
	return RetryWithBackoff(ctx, r.RetryCfg, func(int) (int, error) {
		return r.Inner.Run(ctx, item)
	})
}
