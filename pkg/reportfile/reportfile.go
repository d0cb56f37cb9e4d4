// Package reportfile writes dated daily-report markdown files.
package reportfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Path returns the report file path for a target date inside location.
func Path(location, date string) string {
	return filepath.Join(location, "Daily Report-"+date+".md")
}

type Writer struct {
	location string
}

func NewWriter(location string) *Writer {
	if location == "" {
		location = "."
	}
	return &Writer{location: filepath.Clean(location)}
}

// Write creates the report for date, or appends a timestamped section when
// the file already exists. The append is a full read-then-rewrite of the
// file; concurrent runs against the same report resolve last-write-wins.
// Returns the path written.
func (w *Writer) Write(date, summary string, now time.Time) (string, error) {
	if err := os.MkdirAll(w.location, 0755); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	path := Path(w.location, date)

	var content string
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(existing) + "\n\n---\n\n## " + now.Format("15:04:05") + "\n\n" + summary + "\n"
	case os.IsNotExist(err):
		content = "# Daily Report-" + date + "\n\n" + summary + "\n"
	default:
		return "", fmt.Errorf("writing report: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
