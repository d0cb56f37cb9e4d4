package models

import "time"

// Run statuses recorded in the history database.
const (
	RunStatusOK     = "ok"
	RunStatusEmpty  = "empty"
	RunStatusFailed = "failed"
)

// Error kinds classify which stage of a run failed.
const (
	ErrKindSelect    = "select_error"
	ErrKindRead      = "read_error"
	ErrKindSummarize = "summarize_error"
	ErrKindEmpty     = "empty_summary"
	ErrKindWrite     = "write_error"
)

// RunRecord is one report generation run as stored in the history database.
type RunRecord struct {
	RunID        int64
	CreatedAt    time.Time
	TargetDate   string
	DayOffset    int
	NoteCount    int
	Status       string
	ErrorKind    string
	ErrorMessage string
	SummaryBytes int64
	DurationMS   int64
	LanguageHint string
}
