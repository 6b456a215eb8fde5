// Package cli provides flag binding and validation for the spotdl-bulk CLI.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/spotdl-bulk/internal/config"
	"github.com/CodexForgeBR/spotdl-bulk/internal/schedule"
)

// BindFlags registers all CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Output
	flags.BoolVar(&cfg.Organize, "organize", false, "Create Artist/Album/Track sub-folders")
	flags.StringVar(&cfg.Overwrite, "overwrite", config.OverwriteSkip, "Duplicate handling: skip | metadata | force")

	// Bulk download
	flags.BoolVar(&cfg.Bulk, "bulk", false, "Add a randomized cooldown between URLs")
	flags.IntVar(&cfg.Retries, "retries", config.DefaultRetries, "Maximum attempts per URL")
	flags.Float64Var(&cfg.CooldownBase, "cooldown", config.DefaultCooldown, "Base cooldown between URLs in bulk mode (seconds)")
	flags.Float64Var(&cfg.CooldownJitter, "cooldown-jitter", config.DefaultCooldownJitter, "Random +/- variation applied to the cooldown (seconds)")
	flags.StringVar(&cfg.StartAt, "start-at", "", "Wait until this time before the first download (HH:MM or YYYY-MM-DD[ HH:MM])")

	// Tool
	flags.StringVar(&cfg.SpotDLBin, "spotdl-bin", config.DefaultSpotDLBin, "spotdl executable name or path")

	// Config & output files
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Append structured JSON run events to this file")
	flags.StringVar(&cfg.ReportFile, "report", "", "Append a YAML run summary to this file")

	// Notifications
	flags.StringVar(&cfg.NotifyWebhook, "notify-webhook", cfg.NotifyWebhook, "OpenClaw webhook URL")
	flags.StringVar(&cfg.NotifyChannel, "notify-channel", cfg.NotifyChannel, "Notification channel")
	flags.StringVar(&cfg.NotifyChatID, "notify-chat-id", "", "Recipient chat ID")

	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show debug output")
}

// ValidateFlags checks flag values after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite = strings.ToLower(cfg.Overwrite)
		if !config.ValidOverwrite(cfg.Overwrite) {
			return fmt.Errorf("--overwrite must be one of %s, got: %s", strings.Join(config.OverwriteModes, ", "), cfg.Overwrite)
		}
	}

	if cmd.Flags().Changed("retries") && cfg.Retries < 1 {
		return fmt.Errorf("--retries must be at least 1, got: %d", cfg.Retries)
	}
	if cmd.Flags().Changed("cooldown") {
		if err := config.CheckSeconds(cfg.CooldownBase); err != nil {
			return fmt.Errorf("--cooldown %w", err)
		}
	}
	if cmd.Flags().Changed("cooldown-jitter") {
		if err := config.CheckSeconds(cfg.CooldownJitter); err != nil {
			return fmt.Errorf("--cooldown-jitter %w", err)
		}
	}

	if cmd.Flags().Changed("start-at") {
		if _, err := schedule.Parse(cfg.StartAt, time.Now()); err != nil {
			return fmt.Errorf("--start-at: %w", err)
		}
	}

	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	return nil
}
