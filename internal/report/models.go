package report

import (
	"context"
	"time"

	"github.com/HighPriest/ob-daily-summary/models"
	"github.com/HighPriest/ob-daily-summary/pkg/notify"
	"github.com/HighPriest/ob-daily-summary/pkg/summarizer"
)

// NoteStore lists and reads the notes a report is built from.
type NoteStore interface {
	SelectByDate(date string) ([]models.Note, error)
	ReadNote(path string) (string, error)
}

// Summarizer produces the daily summary for an assembled prompt.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (summarizer.Completion, error)
}

// ReportWriter persists the summary and returns the path written.
type ReportWriter interface {
	Write(date, summary string, now time.Time) (string, error)
}

// ErrorLogger records failure diagnostics with a redacted settings snapshot.
type ErrorLogger interface {
	Log(operation, errKind string, cause error, rawDetail string, snap models.SettingsSnapshot)
}

// LanguageDetector reports the dominant language of the selected notes.
type LanguageDetector interface {
	Dominant(texts []string) (string, bool)
}

// RunRecorder persists run history rows.
type RunRecorder interface {
	InsertRun(rec models.RunRecord) (int64, error)
	InsertRunNotes(runID int64, notePaths []string) error
}

// Deps bundles the capabilities a report run needs. Languages and History
// may be nil; the run then skips the language hint and history recording.
type Deps struct {
	Store      NoteStore
	Summarizer Summarizer
	Reports    ReportWriter
	Errors     ErrorLogger
	Notifier   notify.Notifier
	Languages  LanguageDetector
	History    RunRecorder
}

// Options carries the per-run configuration resolved by the CLI layer.
// A zero Now means the wall clock.
type Options struct {
	Settings models.Settings
	Offset   int
	Workers  int
	DryRun   bool
	Now      time.Time
}

type readJob struct {
	index int
	note  models.Note
}

type readResult struct {
	index   int
	content string
	err     error
}
