package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per report generation attempt
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    target_date TEXT NOT NULL,
    day_offset INTEGER NOT NULL DEFAULT 0,
    note_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,             -- ok, empty, failed

    -- Failure details (NULL for ok and empty runs)
    error_kind TEXT,                  -- select_error, read_error, summarize_error, empty_summary, write_error
    error_message TEXT,

    -- Outcome metrics
    summary_bytes INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    language_hint TEXT                -- detected note language when one was requested
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_target_date ON runs(target_date);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Run notes: junction table mapping runs to the notes that fed them
CREATE TABLE IF NOT EXISTS run_notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    note_path TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, note_path)
);

CREATE INDEX IF NOT EXISTS idx_run_notes_run ON run_notes(run_id);
`
