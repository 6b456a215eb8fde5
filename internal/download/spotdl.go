package download

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// SpotDLRunner implements Executor for the spotdl CLI.
type SpotDLRunner struct {
	Bin       string
	OutputDir string
	Organize  bool
	Overwrite string

	// Stdout and Stderr receive the tool's output. nil means the process's own.
	Stdout io.Writer
	Stderr io.Writer
}

// OutputTemplate returns the spotdl --output template: nested
// artist/album folders when Organize is set, flat otherwise.
func (r *SpotDLRunner) OutputTemplate() string {
	if r.Organize {
		return filepath.Join(r.OutputDir, "{artist}", "{album}", "{title}.{output-format}")
	}
	return filepath.Join(r.OutputDir, "{title}.{output-format}")
}

// BuildArgs constructs the argument list for the spotdl command.
func (r *SpotDLRunner) BuildArgs(url string) []string {
	return []string{
		"download", url,
		"--output", r.OutputTemplate(),
		"--overwrite", r.Overwrite,
	}
}

// Command returns the full command line, binary first, for display.
func (r *SpotDLRunner) Command(url string) []string {
	return append([]string{r.bin()}, r.BuildArgs(url)...)
}

// Run executes spotdl once and waits for it to exit.
// The process is killed if ctx is cancelled, in which case ctx.Err() is returned.
func (r *SpotDLRunner) Run(ctx context.Context, item model.WorkItem) (int, error) {
	cmd := exec.CommandContext(ctx, r.bin(), r.BuildArgs(item.URL)...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, &ToolUnavailableError{Tool: r.bin(), Err: err}
}

func (r *SpotDLRunner) bin() string {
	if r.Bin == "" {
		return "spotdl"
	}
	return r.Bin
}
