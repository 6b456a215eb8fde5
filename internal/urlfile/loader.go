// Package urlfile loads the list of Spotify URLs to download from a text file.
package urlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CodexForgeBR/spotdl-bulk/internal/logging"
	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// SupportedDomains are the hosts a line must mention to be accepted.
var SupportedDomains = []string{
	"open.spotify.com",
	"spotify.com",
}

// ErrNoURLs is returned when a file contains no acceptable URL.
var ErrNoURLs = errors.New("no valid Spotify URL found")

// Load reads path and returns one work item per accepted line, in file order.
func Load(path string) ([]model.WorkItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads URLs from r. Blank lines and lines starting with # are
// skipped; lines that mention no supported domain are reported with their
// line number and skipped.
func Parse(r io.Reader) ([]model.WorkItem, error) {
	var items []model.WorkItem
	scanner := bufio.NewScanner(r)
	lineno := 0

	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !supported(line) {
			logging.Warn(fmt.Sprintf("Line %d: ignoring non-Spotify URL: %s", lineno, line))
			continue
		}
		items = append(items, model.NewWorkItem(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoURLs
	}
	return items, nil
}

func supported(line string) bool {
	for _, d := range SupportedDomains {
		if strings.Contains(line, d) {
			return true
		}
	}
	return false
}
