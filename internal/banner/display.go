// Package banner provides colored banner display functions for the spotdl-bulk CLI.
//
// All banner functions write formatted output to stdout with color-coded
// headers and separators. They mark the start of a run, each item, and the
// way the run ended.
package banner

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/spotdl-bulk/internal/logging"
	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
	itemColor    = color.New(color.FgMagenta).SprintFunc()
)

const width = 62

// RunInfo is the configuration echoed by the startup banner.
type RunInfo struct {
	Total          int
	OutputDir      string
	Organize       bool
	Overwrite      string
	Retries        int
	Bulk           bool
	CooldownBase   float64
	CooldownJitter float64
}

// PrintStartupBanner displays the run configuration.
//
// Example output:
//
//	══════════════════════════════════════════════════════════════
//	  spotdl-bulk - 3 URLs to download
//	  Output:     /home/me/Music
//	  Organize:   yes
//	  Overwrite:  skip
//	  Retries:    3 per URL
//	  Mode:       BULK (cooldown 20s +/- 2s)
//	══════════════════════════════════════════════════════════════
func PrintStartupBanner(info RunInfo) {
	sep := headerColor(strings.Repeat("═", width))
	fmt.Println(sep)
	fmt.Println(headerColor(fmt.Sprintf("  spotdl-bulk - %d URLs to download", info.Total)))
	fmt.Printf("  Output:     %s\n", info.OutputDir)
	fmt.Printf("  Organize:   %s\n", yesNo(info.Organize))
	fmt.Printf("  Overwrite:  %s\n", info.Overwrite)
	fmt.Printf("  Retries:    %d per URL\n", info.Retries)
	if info.Bulk {
		fmt.Printf("  Mode:       BULK (cooldown %gs +/- %gs)\n", info.CooldownBase, info.CooldownJitter)
	} else {
		fmt.Println("  Mode:       normal (no cooldown)")
	}
	fmt.Println(sep)
}

// PrintItemHeader announces the item about to be downloaded.
//
// Example output:
//
//	[2/5] -> Playlist
//	[2/5]    https://open.spotify.com/playlist/...
//	[2/5]    Command: spotdl download https://... --output ... --overwrite skip
func PrintItemHeader(idx, total int, item model.WorkItem, command []string) {
	pfx := itemColor(ItemPrefix(idx, total))
	fmt.Println()
	fmt.Printf("%s -> %s\n", pfx, model.KindLabel(item.Kind))
	fmt.Printf("%s    %s\n", pfx, item.URL)
	if len(command) > 0 {
		fmt.Printf("%s    Command: %s\n", pfx, strings.Join(command, " "))
	}
}

// ItemPrefix returns the "[idx/total]" progress prefix.
func ItemPrefix(idx, total int) string {
	return fmt.Sprintf("[%d/%d]", idx, total)
}

// PrintSummaryBanner displays the final tally and the failed URLs in the
// order they failed.
//
// Example output:
//
//	══════════════════════════════════════════════════════════════
//	  Summary: 2/3 URLs downloaded successfully.
//	  Duration: 1m 5s
//
//	  Failed URLs (1):
//	    ✗ https://open.spotify.com/album/...
//	══════════════════════════════════════════════════════════════
func PrintSummaryBanner(s *model.RunSummary) {
	paint := successColor
	if len(s.Failed) > 0 || s.Interrupted() {
		paint = warnColor
	}
	sep := paint(strings.Repeat("═", width))

	fmt.Println()
	fmt.Println(sep)
	fmt.Println(paint(fmt.Sprintf("  Summary: %d/%d URLs downloaded successfully.", len(s.Succeeded), s.Total)))
	if s.Interrupted() {
		fmt.Printf("  Processed: %d of %d before interruption\n", s.Processed(), s.Total)
	}
	if !s.StartedAt.IsZero() && !s.FinishedAt.IsZero() {
		secs := int(s.FinishedAt.Sub(s.StartedAt) / time.Second)
		fmt.Printf("  Duration: %s\n", logging.FormatDuration(secs))
	}
	if len(s.Failed) > 0 {
		fmt.Println()
		fmt.Printf("  Failed URLs (%d):\n", len(s.Failed))
		for _, item := range s.Failed {
			fmt.Printf("    ✗ %s\n", item.URL)
		}
	}
	fmt.Println(sep)
}

// PrintInterruptedBanner displays when the run is cancelled by the user.
func PrintInterruptedBanner() {
	fmt.Println()
	fmt.Println(warnColor("  ⚠ [INTERRUPTED] Download cancelled by user."))
}

// PrintFatalBanner displays when the download tool cannot be launched.
//
// Example output:
//
//	══════════════════════════════════════════════════════════════
//	  ✗ FATAL: 'spotdl' not found in PATH
//	  Install it with: pip install spotdl
//	══════════════════════════════════════════════════════════════
func PrintFatalBanner(tool string) {
	sep := errorColor(strings.Repeat("═", width))
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(errorColor(fmt.Sprintf("  ✗ FATAL: '%s' not found in PATH", tool)))
	fmt.Println("  Install it with: pip install spotdl")
	fmt.Println(sep)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
