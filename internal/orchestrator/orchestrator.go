// Package orchestrator drives a spotdl-bulk run: it downloads each work item
// in order with retries, paces bulk runs with cooldowns, and reports how the
// run ended.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/CodexForgeBR/spotdl-bulk/internal/banner"
	"github.com/CodexForgeBR/spotdl-bulk/internal/config"
	"github.com/CodexForgeBR/spotdl-bulk/internal/cooldown"
	"github.com/CodexForgeBR/spotdl-bulk/internal/download"
	"github.com/CodexForgeBR/spotdl-bulk/internal/exitcode"
	"github.com/CodexForgeBR/spotdl-bulk/internal/logging"
	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
	"github.com/CodexForgeBR/spotdl-bulk/internal/notification"
	"github.com/CodexForgeBR/spotdl-bulk/internal/report"
	"github.com/CodexForgeBR/spotdl-bulk/internal/schedule"
)

// CommandChecker is a function type that checks tool availability.
// It takes a list of tool names and returns a map of tool name to availability.
type CommandChecker func(tools ...string) map[string]bool

// commander is implemented by executors that can show their command line.
type commander interface {
	Command(url string) []string
}

// Orchestrator runs the download loop over Items.
type Orchestrator struct {
	Config *config.Config
	Items  []model.WorkItem

	// Executor runs one download attempt.
	Executor download.Executor
	// Retry holds backoff settings; MaxAttempts comes from Config.Retries.
	Retry download.RetryConfig
	// Cooldown paces bulk runs. Built from Config when nil.
	Cooldown *cooldown.Scheduler
	// StartWaiter holds the run until Config.StartAt. Built when nil.
	StartWaiter *schedule.Waiter

	CommandChecker CommandChecker
	Notifier       *notification.Notifier

	// Now and NewRunID are replaceable for tests.
	Now      func() time.Time
	NewRunID func() string

	// Summary is set when the run completes or is interrupted.
	// It stays nil after a fatal abort.
	Summary *model.RunSummary

	runID     string
	startedAt time.Time
	succeeded []model.WorkItem
	failed    []model.WorkItem
}

// NewOrchestrator creates an orchestrator for items that runs spotdl
// as configured by cfg.
func NewOrchestrator(cfg *config.Config, items []model.WorkItem) *Orchestrator {
	return &Orchestrator{
		Config: cfg,
		Items:  items,
		Executor: &download.SpotDLRunner{
			Bin:       cfg.SpotDLBin,
			OutputDir: cfg.OutputDir,
			Organize:  cfg.Organize,
			Overwrite: cfg.Overwrite,
		},
		Notifier: &notification.Notifier{
			Webhook: cfg.NotifyWebhook,
			Channel: cfg.NotifyChannel,
			ChatID:  cfg.NotifyChatID,
		},
	}
}

// Run processes every item in order and returns an exit code.
func (o *Orchestrator) Run(ctx context.Context) int {
	o.init()

	if code := o.phasePreflight(); code >= 0 {
		return code
	}

	o.phaseBanner()

	if code := o.phaseScheduledStart(ctx); code >= 0 {
		return code
	}

	return o.phaseDownloadLoop(ctx)
}

func (o *Orchestrator) init() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewRunID == nil {
		o.NewRunID = newRunID
	}
	if o.CommandChecker == nil {
		o.CommandChecker = download.CheckAvailability
	}
	if o.Cooldown == nil {
		o.Cooldown = o.defaultCooldown()
	}
	if o.StartWaiter == nil {
		o.StartWaiter = defaultStartWaiter()
	}

	o.runID = o.NewRunID()
	o.startedAt = o.Now()
	o.succeeded = nil
	o.failed = nil
	o.Summary = nil
}

func (o *Orchestrator) phasePreflight() int {
	if err := os.MkdirAll(o.Config.OutputDir, 0o755); err != nil {
		logging.Error(fmt.Sprintf("Cannot create output directory %s: %v", o.Config.OutputDir, err))
		return exitcode.Error
	}

	bin := o.Config.SpotDLBin
	if avail := o.CommandChecker(bin); !avail[bin] {
		return o.abortToolMissing(&download.ToolUnavailableError{Tool: bin, Err: errors.New("not found in PATH")})
	}
	return -1
}

func (o *Orchestrator) phaseBanner() {
	banner.PrintStartupBanner(banner.RunInfo{
		Total:          len(o.Items),
		OutputDir:      o.Config.OutputDir,
		Organize:       o.Config.Organize,
		Overwrite:      o.Config.Overwrite,
		Retries:        o.Config.Retries,
		Bulk:           o.Config.Bulk,
		CooldownBase:   o.Config.CooldownBase,
		CooldownJitter: o.Config.CooldownJitter,
	})
	logging.Event("run started",
		"run_id", o.runID,
		"items", len(o.Items),
		"bulk", o.Config.Bulk,
		"retries", o.Config.Retries,
	)
}

// phaseScheduledStart blocks until Config.StartAt, if set.
func (o *Orchestrator) phaseScheduledStart(ctx context.Context) int {
	if o.Config.StartAt == "" {
		return -1
	}

	target, err := schedule.Parse(o.Config.StartAt, o.Now())
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	logging.Event("waiting for start", "run_id", o.runID, "start_at", target)
	if err := o.StartWaiter.Until(ctx, target); err != nil {
		return o.abort(ctx, err)
	}
	return -1
}

func (o *Orchestrator) phaseDownloadLoop(ctx context.Context) int {
	total := len(o.Items)

	for i, item := range o.Items {
		idx := i + 1

		outcome, err := o.downloadItem(ctx, idx, total, item)
		if err != nil {
			return o.abort(ctx, err)
		}
		// spotdl sees the same Ctrl-C and may exit before ctx is cancelled.
		// A failure in that window is the interruption, not an item result.
		if ctx.Err() != nil {
			if outcome == model.Succeeded {
				o.record(item, outcome)
			}
			return o.abort(ctx, ctx.Err())
		}
		o.record(item, outcome)

		// Cooldown only in bulk mode and never after the last item.
		if o.Config.Bulk && idx < total {
			if _, err := o.Cooldown.Wait(ctx); err != nil {
				return o.abort(ctx, err)
			}
		}
	}

	if ctx.Err() != nil {
		return o.abort(ctx, ctx.Err())
	}
	return o.finish(model.StatusCompleted)
}

// downloadItem runs the retry controller for one item and prints progress.
func (o *Orchestrator) downloadItem(ctx context.Context, idx, total int, item model.WorkItem) (model.Outcome, error) {
	pfx := banner.ItemPrefix(idx, total)

	var command []string
	if c, ok := o.Executor.(commander); ok {
		command = c.Command(item.URL)
	}
	banner.PrintItemHeader(idx, total, item, command)

	retries := o.Config.Retries
	cfg := o.Retry
	cfg.MaxAttempts = retries
	cfg.OnAttemptFailed = func(attempt, status int) {
		logging.Warn(fmt.Sprintf("%s ✗ Error (exit %d), attempt %d/%d.", pfx, status, attempt, retries))
		logging.Event("attempt failed", "run_id", o.runID, "url", item.URL, "attempt", attempt, "status", status)
	}
	cfg.OnRetry = func(attempt int, delay time.Duration) {
		logging.Info(fmt.Sprintf("%s   Retrying in %s...", pfx, delay))
	}

	runner := &download.RetryRunner{Inner: o.Executor, RetryCfg: cfg}
	res, err := runner.Run(ctx, item)
	if err != nil {
		return model.Failed, err
	}

	if res.Outcome == model.Succeeded {
		logging.Success(fmt.Sprintf("%s ✓ Completed (attempt %d/%d).", pfx, res.Attempts, retries))
	} else {
		logging.Error(fmt.Sprintf("%s ✗ All %d attempts failed. Moving on.", pfx, retries))
	}
	logging.Event("item finished",
		"run_id", o.runID,
		"url", item.URL,
		"kind", item.Kind,
		"outcome", res.Outcome.String(),
		"attempts", res.Attempts,
	)
	return res.Outcome, nil
}

func (o *Orchestrator) record(item model.WorkItem, outcome model.Outcome) {
	if outcome == model.Succeeded {
		o.succeeded = append(o.succeeded, item)
		return
	}
	o.failed = append(o.failed, item)
}

// abort classifies an error that stopped the loop.
func (o *Orchestrator) abort(ctx context.Context, err error) int {
	var toolErr *download.ToolUnavailableError
	if errors.As(err, &toolErr) {
		return o.abortToolMissing(toolErr)
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		banner.PrintInterruptedBanner()
		return o.finish(model.StatusInterrupted)
	}

	logging.Error(fmt.Sprintf("Run aborted: %v", err))
	return exitcode.Error
}

func (o *Orchestrator) abortToolMissing(err *download.ToolUnavailableError) int {
	banner.PrintFatalBanner(err.Tool)
	logging.Debug(err.Error())
	logging.Event("run aborted", "run_id", o.runID, "reason", err.Error())
	o.Notifier.Send(notification.FormatEvent(notification.EventToolMissing, nil, exitcode.ToolMissing))
	return exitcode.ToolMissing
}

// finish builds the summary, prints it, writes the report and notifies.
func (o *Orchestrator) finish(status string) int {
	o.Summary = &model.RunSummary{
		RunID:      o.runID,
		Status:     status,
		Total:      len(o.Items),
		Succeeded:  append([]model.WorkItem(nil), o.succeeded...),
		Failed:     append([]model.WorkItem(nil), o.failed...),
		StartedAt:  o.startedAt,
		FinishedAt: o.Now(),
	}

	banner.PrintSummaryBanner(o.Summary)
	logging.Event("run finished",
		"run_id", o.runID,
		"status", status,
		"succeeded", len(o.Summary.Succeeded),
		"failed", len(o.Summary.Failed),
		"total", o.Summary.Total,
	)

	if o.Config.ReportFile != "" {
		if err := report.Append(o.Config.ReportFile, o.Summary); err != nil {
			logging.Warn(fmt.Sprintf("Could not write report: %v", err))
		}
	}

	code := exitcode.Success
	event := notification.EventCompleted
	if status == model.StatusInterrupted {
		code = exitcode.Interrupted
		event = notification.EventInterrupted
	}
	o.Notifier.Send(notification.FormatEvent(event, o.Summary, code))
	return code
}

func (o *Orchestrator) defaultCooldown() *cooldown.Scheduler {
	s := cooldown.New(o.Config.CooldownBase, o.Config.CooldownJitter, nil)
	s.OnStart = func(d time.Duration) {
		fmt.Printf("\n  Bulk cooldown: waiting %.1fs before the next URL...\n", d.Seconds())
	}
	s.OnTick = func(remaining time.Duration) {
		logging.Progress(fmt.Sprintf("     %.0fs remaining...", remaining.Seconds()))
	}
	s.OnDone = func() {
		logging.ProgressDone("     Ready.", 30)
	}
	return s
}

func defaultStartWaiter() *schedule.Waiter {
	return &schedule.Waiter{
		OnStart: func(target time.Time, remaining time.Duration) {
			logging.Info(fmt.Sprintf("Scheduled start at %s (%s from now)",
				target.Format("2006-01-02 15:04"), logging.FormatDuration(int(remaining.Seconds()))))
		},
		OnTick: func(remaining time.Duration) {
			logging.Debug(fmt.Sprintf("%s until start", logging.FormatDuration(int(remaining.Seconds()))))
		},
	}
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
