// Package logging writes the spotdl-bulk console log and the optional
// structured event log.
//
// Console lines carry a colored level tag. Warnings and errors are also
// recorded in the event log so a --log-file run keeps every problem shown
// on screen. Debug lines appear only in verbose mode.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var verbose bool

var (
	infoTag    = color.New(color.FgBlue).SprintFunc()
	successTag = color.New(color.FgGreen).SprintFunc()
	warnTag    = color.New(color.FgYellow).SprintFunc()
	errorTag   = color.New(color.FgRed).SprintFunc()
	debugTag   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

func line(w io.Writer, tag string, msg string) {
	fmt.Fprintln(w, tag+" "+msg)
}

// Info prints a progress message to stdout.
func Info(msg string) {
	line(os.Stdout, infoTag("[INFO]"), msg)
}

// Success prints a completed download or run to stdout.
func Success(msg string) {
	line(os.Stdout, successTag("[SUCCESS]"), msg)
}

// Warn prints a recoverable problem (failed attempt, skipped URL line)
// to stdout and records it in the event log.
func Warn(msg string) {
	line(os.Stdout, warnTag("[WARN]"), msg)
	events.Warn(msg)
}

// Error prints to stderr and records it in the event log.
func Error(msg string) {
	line(os.Stderr, errorTag("[ERROR]"), msg)
	events.Error(msg)
}

// Debug prints only in verbose mode.
func Debug(msg string) {
	if verbose {
		line(os.Stdout, debugTag("[DEBUG]"), msg)
	}
}

// Progress rewrites the current stdout line, for countdowns.
func Progress(msg string) {
	fmt.Print("\r" + msg + "  ")
}

// ProgressDone overwrites the progress line with msg and ends it.
func ProgressDone(msg string, width int) {
	pad := max(width-len(msg), 0)
	fmt.Println("\r" + msg + strings.Repeat(" ", pad))
}

// FormatDuration renders whole seconds as "45s", "1m 30s" or "1h 1m 1s".
func FormatDuration(seconds int) string {
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
