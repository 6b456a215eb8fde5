// Package report appends run summaries to a YAML report file.
//
// Each run adds one YAML document. Appends are serialized with an exclusive
// lock on a sibling ".lock" file so concurrent runs sharing a report do not
// interleave their output.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/CodexForgeBR/spotdl-bulk/internal/model"
)

// Document is the serialized form of one run.
type Document struct {
	RunID      string    `yaml:"run_id"`
	Status     string    `yaml:"status"`
	Total      int       `yaml:"total"`
	Processed  int       `yaml:"processed"`
	Succeeded  []string  `yaml:"succeeded"`
	Failed     []string  `yaml:"failed"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// NewDocument converts a summary into a report document.
func NewDocument(s *model.RunSummary) Document {
	return Document{
		RunID:      s.RunID,
		Status:     s.Status,
		Total:      s.Total,
		Processed:  s.Processed(),
		Succeeded:  urls(s.Succeeded),
		Failed:     urls(s.Failed),
		StartedAt:  s.StartedAt.UTC(),
		FinishedAt: s.FinishedAt.UTC(),
	}
}

// Append writes s as a new YAML document at the end of path.
func Append(path string, s *model.RunSummary) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock report: %w", err)
	}
	defer lock.Unlock()

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// ReadAll decodes every document in the report at path, oldest first.
func ReadAll(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	var docs []Document
	dec := yaml.NewDecoder(f)
	for {
		var d Document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		docs = append(docs, d)
	}
}

func urls(items []model.WorkItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.URL)
	}
	return out
}
