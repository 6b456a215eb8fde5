// Package config defines the spotdl-bulk configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Overwrite modes understood by spotdl.
const (
	OverwriteSkip     = "skip"
	OverwriteMetadata = "metadata"
	OverwriteForce    = "force"
)

// OverwriteModes lists every accepted overwrite mode.
var OverwriteModes = []string{OverwriteSkip, OverwriteMetadata, OverwriteForce}

// Built-in defaults.
const (
	DefaultRetries        = 3
	DefaultCooldown       = 20.0 // seconds between URLs in bulk mode
	DefaultCooldownJitter = 2.0  // +/- seconds of random jitter
	DefaultSpotDLBin      = "spotdl"

	// MaxSeconds is the longest wait a time.Duration can hold.
	MaxSeconds = float64(math.MaxInt64 / int64(time.Second))
)

// File names used for layered config discovery.
const (
	ProjectConfigFile = ".spotdl-bulk.conf"
	globalConfigDir   = "spotdl-bulk"
	globalConfigFile  = "config"
)

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [15]string{
	"OUTPUT_DIR",
	"ORGANIZE",
	"OVERWRITE",
	"RETRIES",
	"BULK",
	"COOLDOWN",
	"COOLDOWN_JITTER",
	"START_AT",
	"SPOTDL_BIN",
	"VERBOSE",
	"LOG_FILE",
	"REPORT_FILE",
	"NOTIFY_WEBHOOK",
	"NOTIFY_CHANNEL",
	"NOTIFY_CHAT_ID",
}

// Config holds every configuration field for a spotdl-bulk run.
// It is not modified once the run has started.
type Config struct {
	// Download destination and layout.
	OutputDir string
	Organize  bool
	Overwrite string

	// Retry and bulk pacing.
	Retries        int
	Bulk           bool
	CooldownBase   float64
	CooldownJitter float64

	// StartAt defers the first download; see schedule.Parse for formats.
	StartAt string

	// External tool.
	SpotDLBin string

	// Runtime output.
	Verbose    bool
	LogFile    string
	ReportFile string

	// Notification settings.
	NotifyWebhook string
	NotifyChannel string
	NotifyChatID  string

	// CLI-only (not loaded from config files).
	URLFile    string
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		OutputDir:      ".",
		Overwrite:      OverwriteSkip,
		Retries:        DefaultRetries,
		CooldownBase:   DefaultCooldown,
		CooldownJitter: DefaultCooldownJitter,
		SpotDLBin:      DefaultSpotDLBin,
		NotifyWebhook:  "http://127.0.0.1:18789/webhook",
		NotifyChannel:  "telegram",
	}
}

// GlobalConfigPath returns the per-user config file location
// (usually ~/.config/spotdl-bulk/config). Returns "" when no user config
// directory can be determined.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, globalConfigDir, globalConfigFile)
}

// ValidOverwrite reports whether mode is an accepted overwrite mode.
func ValidOverwrite(mode string) bool {
	for _, m := range OverwriteModes {
		if m == mode {
			return true
		}
	}
	return false
}

// CheckSeconds reports whether v is usable as a wait in seconds: finite,
// non-negative and small enough for a time.Duration.
func CheckSeconds(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("must be a finite number, got: %g", v)
	case v < 0:
		return fmt.Errorf("must be >= 0, got: %g", v)
	case v > MaxSeconds:
		return fmt.Errorf("must be at most %g seconds, got: %g", MaxSeconds, v)
	}
	return nil
}

// ResolvePath expands a leading "~" to the user's home directory and makes
// the result absolute.
func ResolvePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}
