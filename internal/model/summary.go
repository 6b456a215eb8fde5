package model

import "time"

// Outcome is the final verdict for one work item after retries.
type Outcome int

const (
	Failed Outcome = iota
	Succeeded
)

func (o Outcome) String() string {
	if o == Succeeded {
		return "succeeded"
	}
	return "failed"
}

// Run status values recorded in a RunSummary.
const (
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// RunSummary is produced once at the end of a run (or on interruption).
// Failed preserves the order in which items failed.
type RunSummary struct {
	RunID      string     `yaml:"run_id"`
	Status     string     `yaml:"status"`
	Total      int        `yaml:"total"`
	Succeeded  []WorkItem `yaml:"succeeded"`
	Failed     []WorkItem `yaml:"failed"`
	StartedAt  time.Time  `yaml:"started_at"`
	FinishedAt time.Time  `yaml:"finished_at"`
}

// Processed returns how many items reached a final outcome.
func (s *RunSummary) Processed() int {
	return len(s.Succeeded) + len(s.Failed)
}

// Interrupted reports whether the run was cancelled before finishing.
func (s *RunSummary) Interrupted() bool {
	return s.Status == StatusInterrupted
}
