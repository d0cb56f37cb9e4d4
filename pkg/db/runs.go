package db

import (
	"database/sql"
	"fmt"

	"github.com/HighPriest/ob-daily-summary/models"
)

// InsertRun records one report generation attempt and returns its run ID
func (db *DB) InsertRun(rec models.RunRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (target_date, day_offset, note_count, status,
		                  error_kind, error_message, summary_bytes, duration_ms, language_hint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.TargetDate, rec.DayOffset, rec.NoteCount, rec.Status,
		nullable(rec.ErrorKind), nullable(rec.ErrorMessage),
		rec.SummaryBytes, rec.DurationMS, nullable(rec.LanguageHint))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// nullable maps an empty string to NULL so optional columns stay NULL
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// InsertRunNotes links the selected note paths to a run
func (db *DB) InsertRunNotes(runID int64, notePaths []string) error {
	for _, path := range notePaths {
		_, err := db.Exec(`
			INSERT OR IGNORE INTO run_notes (run_id, note_path)
			VALUES (?, ?)
		`, runID, path)
		if err != nil {
			return fmt.Errorf("failed to insert run note %s: %w", path, err)
		}
	}
	return nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*models.RunRecord, error) {
	var rec models.RunRecord
	var errorKind, errorMessage, languageHint sql.NullString
	err := db.QueryRow(`
		SELECT run_id, created_at, target_date, day_offset, note_count, status,
		       error_kind, error_message, summary_bytes, duration_ms, language_hint
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(
		&rec.RunID,
		&rec.CreatedAt,
		&rec.TargetDate,
		&rec.DayOffset,
		&rec.NoteCount,
		&rec.Status,
		&errorKind,
		&errorMessage,
		&rec.SummaryBytes,
		&rec.DurationMS,
		&languageHint,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if errorKind.Valid {
		rec.ErrorKind = errorKind.String
	}
	if errorMessage.Valid {
		rec.ErrorMessage = errorMessage.String
	}
	if languageHint.Valid {
		rec.LanguageHint = languageHint.String
	}
	return &rec, nil
}

// ListRuns retrieves runs ordered by most recent first.
// The run_id tiebreaker keeps ordering stable for rows inserted within
// the same CURRENT_TIMESTAMP second.
func (db *DB) ListRuns(limit int) ([]models.RunRecord, error) {
	query := `
		SELECT run_id, created_at, target_date, day_offset, note_count, status,
		       error_kind, error_message, summary_bytes, duration_ms, language_hint
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var rec models.RunRecord
		var errorKind, errorMessage, languageHint sql.NullString
		if err := rows.Scan(&rec.RunID, &rec.CreatedAt, &rec.TargetDate, &rec.DayOffset,
			&rec.NoteCount, &rec.Status, &errorKind, &errorMessage,
			&rec.SummaryBytes, &rec.DurationMS, &languageHint); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if errorKind.Valid {
			rec.ErrorKind = errorKind.String
		}
		if errorMessage.Valid {
			rec.ErrorMessage = errorMessage.String
		}
		if languageHint.Valid {
			rec.LanguageHint = languageHint.String
		}
		runs = append(runs, rec)
	}

	return runs, nil
}

// RunNotes retrieves the note paths recorded for a run
func (db *DB) RunNotes(runID int64) ([]string, error) {
	rows, err := db.Query(`
		SELECT note_path FROM run_notes
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run notes: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan note path: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
