package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HighPriest/ob-daily-summary/internal/common"
	"github.com/HighPriest/ob-daily-summary/models"
	"github.com/HighPriest/ob-daily-summary/pkg/prompt"
)

// Run executes one report generation: select the notes for the target date,
// read them concurrently, summarize, and write the daily report. A failure
// in any stage short-circuits to the error log, one console notice, and a
// failed run-history row; the cause is returned to the CLI layer.
func Run(ctx context.Context, logger *slog.Logger, deps Deps, opts Options) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	start := time.Now()

	rec := models.RunRecord{
		TargetDate: common.TargetDate(now, opts.Offset),
		DayOffset:  opts.Offset,
	}

	logger.Info("Starting report run", "target_date", rec.TargetDate, "day_offset", opts.Offset)

	notes, err := deps.Store.SelectByDate(rec.TargetDate)
	if err != nil {
		return fail(logger, deps, opts, rec, models.ErrKindSelect,
			fmt.Errorf("selecting notes for %s: %w", rec.TargetDate, err), "", start)
	}
	rec.NoteCount = len(notes)

	if len(notes) == 0 {
		logger.Info("No notes matched target date", "target_date", rec.TargetDate)
		deps.Notifier.Notify("no notes found for " + rec.TargetDate)
		if !opts.DryRun {
			rec.Status = models.RunStatusEmpty
			rec.DurationMS = time.Since(start).Milliseconds()
			record(logger, deps.History, rec, nil)
		}
		return nil
	}

	contents, err := readNotes(logger, deps.Store, notes, opts.Workers)
	if err != nil {
		return fail(logger, deps, opts, rec, models.ErrKindRead, err, "", start)
	}

	text := prompt.Build(contents)
	if deps.Languages != nil {
		raw := make([]string, len(contents))
		for i, c := range contents {
			raw[i] = c.Content
		}
		if language, ok := deps.Languages.Dominant(raw); ok && language != "English" {
			text = prompt.AppendLanguageHint(text, language)
			rec.LanguageHint = language
			logger.Info("Language hint added", "language", language)
		}
	}

	if opts.DryRun {
		fmt.Println(text)
		return nil
	}

	completion, err := deps.Summarizer.Summarize(ctx, text)
	if err != nil {
		return fail(logger, deps, opts, rec, models.ErrKindSummarize, err, "", start)
	}
	if completion.Content == "" {
		return fail(logger, deps, opts, rec, models.ErrKindEmpty,
			errors.New("failed to generate summary"), completion.RawBody, start)
	}

	path, err := deps.Reports.Write(rec.TargetDate, completion.Content, now)
	if err != nil {
		return fail(logger, deps, opts, rec, models.ErrKindWrite, err, "", start)
	}

	logger.Info("Report written", "path", path, "summary_bytes", len(completion.Content))
	deps.Notifier.Notify("Daily report written to " + path)

	rec.Status = models.RunStatusOK
	rec.SummaryBytes = int64(len(completion.Content))
	rec.DurationMS = time.Since(start).Milliseconds()
	notePaths := make([]string, len(notes))
	for i, n := range notes {
		notePaths[i] = n.Path
	}
	record(logger, deps.History, rec, notePaths)
	return nil
}

// fail routes one failure through the error log, the console notice, and
// run history, then hands the cause back
func fail(logger *slog.Logger, deps Deps, opts Options, rec models.RunRecord, kind string, cause error, rawDetail string, start time.Time) error {
	logger.Error("Report run failed", "target_date", rec.TargetDate, "kind", kind, "error", cause)
	deps.Errors.Log("generating report for "+rec.TargetDate, kind, cause, rawDetail, opts.Settings.Snapshot())
	deps.Notifier.Notify(cause.Error())

	rec.Status = models.RunStatusFailed
	rec.ErrorKind = kind
	rec.ErrorMessage = cause.Error()
	rec.DurationMS = time.Since(start).Milliseconds()
	record(logger, deps.History, rec, nil)
	return cause
}

// record persists the run row; history failures never fail the run
func record(logger *slog.Logger, history RunRecorder, rec models.RunRecord, notePaths []string) {
	if history == nil {
		return
	}
	runID, err := history.InsertRun(rec)
	if err != nil {
		logger.Warn("Failed to record run history", "error", err)
		return
	}
	if len(notePaths) > 0 {
		if err := history.InsertRunNotes(runID, notePaths); err != nil {
			logger.Warn("Failed to record run notes", "error", err)
		}
	}
}
