package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/CodexForgeBR/spotdl-bulk/internal/schedule"
)

// whitelistSet is a precomputed lookup table for fast whitelist membership checks.
var whitelistSet map[string]bool

func init() {
	whitelistSet = make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		whitelistSet[v] = true
	}
}

// LoadFile parses a KEY=VALUE config file at the given path.
//
// Lines are processed according to these rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = sign are skipped.
//   - Leading and trailing whitespace is trimmed from both key and value.
//   - Keys not present in WhitelistedVars are silently ignored.
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first '=' only.
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if !whitelistSet[key] {
			continue
		}

		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return result, nil
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Global config file (globalPath)
//  3. Project config file (projectPath)
//  4. Explicit config file (explicitPath)
//  5. CLI overrides (cliOverrides map)
//
// Empty paths are skipped. Missing global and project files are not an
// error; a missing explicit file is.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	if globalPath != "" {
		m, err := LoadFile(globalPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("global config: %w", err)
			}
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	if projectPath != "" {
		m, err := LoadFile(projectPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("project config: %w", err)
			}
		} else {
			ApplyMapToConfig(cfg, m)
		}
	}

	if explicitPath != "" {
		m, err := LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("explicit config: %w", err)
		}
		ApplyMapToConfig(cfg, m)
	}

	if len(cliOverrides) > 0 {
		ApplyMapToConfig(cfg, cliOverrides)
	}

	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Unknown keys are silently ignored. Numeric fields that fail to parse
// keep their previous value.
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "OUTPUT_DIR":
			cfg.OutputDir = value
		case "ORGANIZE":
			cfg.Organize = parseBool(value)
		case "OVERWRITE":
			cfg.Overwrite = strings.ToLower(value)
		case "RETRIES":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Retries = v
			}
		case "BULK":
			cfg.Bulk = parseBool(value)
		case "COOLDOWN":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.CooldownBase = v
			}
		case "COOLDOWN_JITTER":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.CooldownJitter = v
			}
		case "START_AT":
			cfg.StartAt = value
		case "SPOTDL_BIN":
			cfg.SpotDLBin = value
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		case "LOG_FILE":
			cfg.LogFile = value
		case "REPORT_FILE":
			cfg.ReportFile = value
		case "NOTIFY_WEBHOOK":
			cfg.NotifyWebhook = value
		case "NOTIFY_CHANNEL":
			cfg.NotifyChannel = value
		case "NOTIFY_CHAT_ID":
			cfg.NotifyChatID = value
		}
	}
}

// Validate checks the run-level invariants: at least one attempt per item,
// finite non-negative cooldowns that fit a time.Duration, a known overwrite mode and a parseable start time.
func (c *Config) Validate() error {
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1, got: %d", c.Retries)
	}
	if err := CheckSeconds(c.CooldownBase); err != nil {
		return fmt.Errorf("cooldown %w", err)
	}
	if err := CheckSeconds(c.CooldownJitter); err != nil {
		return fmt.Errorf("cooldown jitter %w", err)
	}
	if c.CooldownBase+c.CooldownJitter > MaxSeconds {
		return fmt.Errorf("cooldown plus jitter must be at most %g seconds", MaxSeconds)
	}
	if !ValidOverwrite(c.Overwrite) {
		return fmt.Errorf("overwrite must be one of %s, got: %s", strings.Join(OverwriteModes, ", "), c.Overwrite)
	}
	if c.SpotDLBin == "" {
		return errors.New("spotdl binary must not be empty")
	}
	if c.StartAt != "" {
		if _, err := schedule.Parse(c.StartAt, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
