// Package errlog appends diagnostic blocks to a debug-errors.md file.
//
// Entries carry a redacted settings snapshot: presence booleans for the API
// key and endpoint, never the values themselves.
package errlog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/HighPriest/ob-daily-summary/models"
)

// FileName is the error log file created inside the report location.
const FileName = "debug-errors.md"

type Logger struct {
	location string
	diag     *slog.Logger
}

func New(location string, diag *slog.Logger) *Logger {
	if location == "" {
		location = "."
	}
	if diag == nil {
		diag = slog.Default()
	}
	return &Logger{location: filepath.Clean(location), diag: diag}
}

// Log appends one markdown block describing a failure. rawDetail carries the
// raw response body when a summary came back empty; it is omitted when blank.
// Write failures are reported to the diagnostic logger and swallowed; the
// caller has already surfaced the underlying error once.
func (l *Logger) Log(operation, errKind string, cause error, rawDetail string, snap models.SettingsSnapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "context: %s\n", operation)
	fmt.Fprintf(&b, "kind: %s\n", errKind)
	fmt.Fprintf(&b, "error: %v\n", cause)
	fmt.Fprintf(&b, "api key configured: %t\n", snap.APIKeyConfigured)
	fmt.Fprintf(&b, "endpoint configured: %t\n", snap.EndpointConfigured)
	fmt.Fprintf(&b, "report location: %s\n", snap.ReportLocation)
	if rawDetail != "" {
		fmt.Fprintf(&b, "\nresponse body:\n\n```\n%s\n```\n", rawDetail)
	}
	fmt.Fprintf(&b, "\nstack:\n\n```\n%s```\n\n", debug.Stack())

	if err := l.append(b.String()); err != nil {
		l.diag.Error("Failed to write error log", "path", l.path(), "error", err)
	}
}

func (l *Logger) path() string {
	return filepath.Join(l.location, FileName)
}

func (l *Logger) append(block string) error {
	if err := os.MkdirAll(l.location, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(block)
	return err
}
