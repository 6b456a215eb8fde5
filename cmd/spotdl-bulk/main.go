package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/spotdl-bulk/internal/cli"
	"github.com/CodexForgeBR/spotdl-bulk/internal/config"
	"github.com/CodexForgeBR/spotdl-bulk/internal/exitcode"
	"github.com/CodexForgeBR/spotdl-bulk/internal/logging"
	"github.com/CodexForgeBR/spotdl-bulk/internal/orchestrator"
	sighandler "github.com/CodexForgeBR/spotdl-bulk/internal/signal"
	"github.com/CodexForgeBR/spotdl-bulk/internal/urlfile"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()
	code := exitcode.Success

	rootCmd := &cobra.Command{
		Use:     "spotdl-bulk <url_file> [output_dir]",
		Short:   "Bulk Spotify downloader built on spotdl",
		Long:    "spotdl-bulk downloads albums, artists and playlists listed in a file, with retries and optional rate limiting.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFlags(cmd, cfg); err != nil {
				return err
			}
			var err error
			code, err = run(cmd, args, cfg)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindFlags(rootCmd, cfg)
	cli.SetCustomHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(exitcode.Error)
	}
	os.Exit(code)
}

// buildCLIOverrides creates a map of CLI overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the user,
// ensuring config file values are not accidentally overridden by default values.
// The optional output_dir argument is treated like a flag.
func buildCLIOverrides(cmd *cobra.Command, args []string, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"overwrite":      {"OVERWRITE", cfg.Overwrite},
		"spotdl-bin":     {"SPOTDL_BIN", cfg.SpotDLBin},
		"start-at":       {"START_AT", cfg.StartAt},
		"log-file":       {"LOG_FILE", cfg.LogFile},
		"report":         {"REPORT_FILE", cfg.ReportFile},
		"notify-webhook": {"NOTIFY_WEBHOOK", cfg.NotifyWebhook},
		"notify-channel": {"NOTIFY_CHANNEL", cfg.NotifyChannel},
		"notify-chat-id": {"NOTIFY_CHAT_ID", cfg.NotifyChatID},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	if cmd.Flags().Changed("retries") {
		overrides["RETRIES"] = strconv.Itoa(cfg.Retries)
	}

	floatFlags := map[string]struct {
		key string
		val float64
	}{
		"cooldown":        {"COOLDOWN", cfg.CooldownBase},
		"cooldown-jitter": {"COOLDOWN_JITTER", cfg.CooldownJitter},
	}
	for flag, mapping := range floatFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = strconv.FormatFloat(mapping.val, 'f', -1, 64)
		}
	}

	boolFlags := map[string]struct {
		key string
		val bool
	}{
		"organize": {"ORGANIZE", cfg.Organize},
		"bulk":     {"BULK", cfg.Bulk},
		"verbose":  {"VERBOSE", cfg.Verbose},
	}
	for flag, mapping := range boolFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = strconv.FormatBool(mapping.val)
		}
	}

	if len(args) > 1 {
		overrides["OUTPUT_DIR"] = args[1]
	}

	return overrides
}

// loadConfig merges config files and CLI overrides, then validates the result.
func loadConfig(cmd *cobra.Command, args []string, cfg *config.Config) (*config.Config, error) {
	finalCfg, err := config.LoadWithPrecedence(
		config.GlobalConfigPath(),
		config.ProjectConfigFile,
		cfg.ConfigFile,
		buildCLIOverrides(cmd, args, cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI-only values
	finalCfg.ConfigFile = cfg.ConfigFile
	finalCfg.URLFile = args[0]

	if err := finalCfg.Validate(); err != nil {
		return nil, err
	}

	finalCfg.OutputDir, err = config.ResolvePath(finalCfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	return finalCfg, nil
}

func run(cmd *cobra.Command, args []string, cfg *config.Config) (int, error) {
	cfg, err := loadConfig(cmd, args, cfg)
	if err != nil {
		return exitcode.Error, err
	}

	logging.SetVerbose(cfg.Verbose)

	if cfg.LogFile != "" {
		closeLog, err := logging.SetupEventLog(cfg.LogFile, cfg.Verbose)
		if err != nil {
			return exitcode.Error, err
		}
		defer closeLog()
	}

	items, err := urlfile.Load(cfg.URLFile)
	if err != nil {
		return exitcode.Error, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupt received, stopping after the current wait...")
	})
	defer stop()

	orch := orchestrator.NewOrchestrator(cfg, items)
	return orch.Run(ctx), nil
}
