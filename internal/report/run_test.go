package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HighPriest/ob-daily-summary/models"
	"github.com/HighPriest/ob-daily-summary/pkg/reportfile"
	"github.com/HighPriest/ob-daily-summary/pkg/summarizer"
)

type mockStore struct {
	selectFunc func(date string) ([]models.Note, error)
	readFunc   func(path string) (string, error)
}

func (m *mockStore) SelectByDate(date string) ([]models.Note, error) { return m.selectFunc(date) }

func (m *mockStore) ReadNote(path string) (string, error) { return m.readFunc(path) }

type mockSummarizer struct {
	calls         int
	gotPrompt     string
	summarizeFunc func(ctx context.Context, prompt string) (summarizer.Completion, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, prompt string) (summarizer.Completion, error) {
	m.calls++
	m.gotPrompt = prompt
	return m.summarizeFunc(ctx, prompt)
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Notify(message string) { m.messages = append(m.messages, message) }

type errLogEntry struct {
	operation string
	kind      string
	rawDetail string
}

type mockErrLog struct {
	entries []errLogEntry
}

func (m *mockErrLog) Log(operation, errKind string, cause error, rawDetail string, snap models.SettingsSnapshot) {
	m.entries = append(m.entries, errLogEntry{operation: operation, kind: errKind, rawDetail: rawDetail})
}

type mockRecorder struct {
	runs  []models.RunRecord
	notes map[int64][]string
}

func (m *mockRecorder) InsertRun(rec models.RunRecord) (int64, error) {
	m.runs = append(m.runs, rec)
	return int64(len(m.runs)), nil
}

func (m *mockRecorder) InsertRunNotes(runID int64, notePaths []string) error {
	if m.notes == nil {
		m.notes = map[int64][]string{}
	}
	m.notes[runID] = notePaths
	return nil
}

type mockDetector struct {
	language string
	ok       bool
}

func (m mockDetector) Dominant(texts []string) (string, bool) { return m.language, m.ok }

// testEnv wires a full Deps around mocks, with a real report writer in a
// temp directory.
type testEnv struct {
	deps     Deps
	store    *mockStore
	sum      *mockSummarizer
	notifier *mockNotifier
	errLog   *mockErrLog
	recorder *mockRecorder
	dir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		dir: t.TempDir(),
		store: &mockStore{
			selectFunc: func(date string) ([]models.Note, error) {
				return []models.Note{
					{Name: "standup", Path: "vault/standup.md"},
					{Name: "plan", Path: "vault/projects/plan.md"},
				}, nil
			},
			readFunc: func(path string) (string, error) {
				return "notes from " + path, nil
			},
		},
		sum: &mockSummarizer{
			summarizeFunc: func(ctx context.Context, prompt string) (summarizer.Completion, error) {
				return summarizer.Completion{Content: "A productive day.", RawBody: "{}"}, nil
			},
		},
		notifier: &mockNotifier{},
		errLog:   &mockErrLog{},
		recorder: &mockRecorder{},
	}
	env.deps = Deps{
		Store:      env.store,
		Summarizer: env.sum,
		Reports:    reportfile.NewWriter(env.dir),
		Errors:     env.errLog,
		Notifier:   env.notifier,
		History:    env.recorder,
	}
	return env
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testOptions() Options {
	return Options{
		Settings: models.DefaultSettings(),
		Now:      time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC),
	}
}

func TestRun_WritesReport(t *testing.T) {
	env := newTestEnv(t)

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(env.dir, "Daily Report-2024-06-10.md"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	want := "# Daily Report-2024-06-10\n\nA productive day.\n"
	if string(data) != want {
		t.Errorf("report = %q, want %q", string(data), want)
	}

	if len(env.notifier.messages) != 1 || !strings.HasPrefix(env.notifier.messages[0], "Daily report written to ") {
		t.Errorf("notifications = %v, want single written notice", env.notifier.messages)
	}
	if len(env.errLog.entries) != 0 {
		t.Errorf("error log entries = %v, want none", env.errLog.entries)
	}

	if len(env.recorder.runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(env.recorder.runs))
	}
	rec := env.recorder.runs[0]
	if rec.Status != models.RunStatusOK {
		t.Errorf("Status = %q, want %q", rec.Status, models.RunStatusOK)
	}
	if rec.TargetDate != "2024-06-10" {
		t.Errorf("TargetDate = %q, want %q", rec.TargetDate, "2024-06-10")
	}
	if rec.NoteCount != 2 {
		t.Errorf("NoteCount = %d, want 2", rec.NoteCount)
	}
	if rec.SummaryBytes != int64(len("A productive day.")) {
		t.Errorf("SummaryBytes = %d, want %d", rec.SummaryBytes, len("A productive day."))
	}
	if got := env.recorder.notes[1]; len(got) != 2 || got[0] != "vault/standup.md" {
		t.Errorf("recorded note paths = %v", got)
	}
}

func TestRun_PromptPairsNamesWithContents(t *testing.T) {
	env := newTestEnv(t)

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{
		"standup:\nnotes from vault/standup.md",
		"plan:\nnotes from vault/projects/plan.md",
	} {
		if !strings.Contains(env.sum.gotPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, env.sum.gotPrompt)
		}
	}
}

func TestRun_NoNotes(t *testing.T) {
	env := newTestEnv(t)
	env.store.selectFunc = func(date string) ([]models.Note, error) {
		return nil, nil
	}

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v, want nil for empty day", err)
	}

	if env.sum.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0", env.sum.calls)
	}
	if len(env.notifier.messages) != 1 || env.notifier.messages[0] != "no notes found for 2024-06-10" {
		t.Errorf("notifications = %v, want no-notes notice", env.notifier.messages)
	}
	if len(env.errLog.entries) != 0 {
		t.Errorf("error log entries = %v, want none for empty day", env.errLog.entries)
	}
	if len(env.recorder.runs) != 1 || env.recorder.runs[0].Status != models.RunStatusEmpty {
		t.Errorf("recorded runs = %+v, want single empty run", env.recorder.runs)
	}
}

func TestRun_SelectError(t *testing.T) {
	env := newTestEnv(t)
	env.store.selectFunc = func(date string) ([]models.Note, error) {
		return nil, errors.New("permission denied")
	}

	err := Run(context.Background(), testLogger(), env.deps, testOptions())
	if err == nil {
		t.Fatal("Run() error = nil, want select failure")
	}
	if !strings.Contains(err.Error(), "selecting notes for 2024-06-10") {
		t.Errorf("error = %q, want select wrap", err)
	}

	if len(env.errLog.entries) != 1 || env.errLog.entries[0].kind != models.ErrKindSelect {
		t.Errorf("error log entries = %+v, want single select_error", env.errLog.entries)
	}
	if len(env.recorder.runs) != 1 || env.recorder.runs[0].ErrorKind != models.ErrKindSelect {
		t.Errorf("recorded runs = %+v, want failed select run", env.recorder.runs)
	}
}

func TestRun_ReadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.readFunc = func(path string) (string, error) {
		if path == "vault/projects/plan.md" {
			return "", errors.New("file vanished")
		}
		return "content", nil
	}

	err := Run(context.Background(), testLogger(), env.deps, testOptions())
	if err == nil {
		t.Fatal("Run() error = nil, want read failure")
	}
	if !strings.Contains(err.Error(), "reading note plan") {
		t.Errorf("error = %q, want read wrap with note name", err)
	}

	if env.sum.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0 after read failure", env.sum.calls)
	}
	if len(env.errLog.entries) != 1 || env.errLog.entries[0].kind != models.ErrKindRead {
		t.Errorf("error log entries = %+v, want single read_error", env.errLog.entries)
	}
}

func TestRun_SummarizerError(t *testing.T) {
	env := newTestEnv(t)
	env.sum.summarizeFunc = func(ctx context.Context, prompt string) (summarizer.Completion, error) {
		return summarizer.Completion{}, errors.New("summary endpoint returned status 500")
	}

	err := Run(context.Background(), testLogger(), env.deps, testOptions())
	if err == nil {
		t.Fatal("Run() error = nil, want summarize failure")
	}

	if len(env.errLog.entries) != 1 || env.errLog.entries[0].kind != models.ErrKindSummarize {
		t.Errorf("error log entries = %+v, want single summarize_error", env.errLog.entries)
	}
	if _, statErr := os.Stat(filepath.Join(env.dir, "Daily Report-2024-06-10.md")); !os.IsNotExist(statErr) {
		t.Error("report file written despite summarize failure")
	}
	rec := env.recorder.runs[0]
	if rec.Status != models.RunStatusFailed || rec.ErrorMessage == "" {
		t.Errorf("recorded run = %+v, want failed with message", rec)
	}
}

func TestRun_EmptySummary(t *testing.T) {
	env := newTestEnv(t)
	env.sum.summarizeFunc = func(ctx context.Context, prompt string) (summarizer.Completion, error) {
		return summarizer.Completion{RawBody: `{"choices":[]}`}, nil
	}

	err := Run(context.Background(), testLogger(), env.deps, testOptions())
	if err == nil {
		t.Fatal("Run() error = nil, want empty-summary failure")
	}
	if err.Error() != "failed to generate summary" {
		t.Errorf("error = %q, want %q", err, "failed to generate summary")
	}

	if len(env.errLog.entries) != 1 {
		t.Fatalf("error log entries = %d, want 1", len(env.errLog.entries))
	}
	entry := env.errLog.entries[0]
	if entry.kind != models.ErrKindEmpty {
		t.Errorf("kind = %q, want %q", entry.kind, models.ErrKindEmpty)
	}
	if entry.rawDetail != `{"choices":[]}` {
		t.Errorf("rawDetail = %q, want raw response body", entry.rawDetail)
	}
	if _, statErr := os.Stat(filepath.Join(env.dir, "Daily Report-2024-06-10.md")); !os.IsNotExist(statErr) {
		t.Error("report file written despite empty summary")
	}
}

func TestRun_WriteError(t *testing.T) {
	env := newTestEnv(t)
	blocked := filepath.Join(env.dir, "blocked")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}
	env.deps.Reports = reportfile.NewWriter(filepath.Join(blocked, "reports"))

	err := Run(context.Background(), testLogger(), env.deps, testOptions())
	if err == nil {
		t.Fatal("Run() error = nil, want write failure")
	}
	if len(env.errLog.entries) != 1 || env.errLog.entries[0].kind != models.ErrKindWrite {
		t.Errorf("error log entries = %+v, want single write_error", env.errLog.entries)
	}
}

func TestRun_PreviousDayOffset(t *testing.T) {
	env := newTestEnv(t)
	var gotDate string
	env.store.selectFunc = func(date string) ([]models.Note, error) {
		gotDate = date
		return nil, nil
	}

	opts := testOptions()
	opts.Offset = -1
	if err := Run(context.Background(), testLogger(), env.deps, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if gotDate != "2024-06-09" {
		t.Errorf("selected date = %q, want %q", gotDate, "2024-06-09")
	}
	if env.recorder.runs[0].DayOffset != -1 {
		t.Errorf("DayOffset = %d, want -1", env.recorder.runs[0].DayOffset)
	}
}

func TestRun_DryRun(t *testing.T) {
	env := newTestEnv(t)

	opts := testOptions()
	opts.DryRun = true
	if err := Run(context.Background(), testLogger(), env.deps, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if env.sum.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0 in dry run", env.sum.calls)
	}
	if len(env.recorder.runs) != 0 {
		t.Errorf("recorded runs = %d, want 0 in dry run", len(env.recorder.runs))
	}
	if _, err := os.Stat(filepath.Join(env.dir, "Daily Report-2024-06-10.md")); !os.IsNotExist(err) {
		t.Error("report file written in dry run")
	}
}

func TestRun_DryRunEmptyDay(t *testing.T) {
	env := newTestEnv(t)
	env.store.selectFunc = func(date string) ([]models.Note, error) {
		return nil, nil
	}

	opts := testOptions()
	opts.DryRun = true
	if err := Run(context.Background(), testLogger(), env.deps, opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(env.recorder.runs) != 0 {
		t.Errorf("recorded runs = %d, want 0 in dry run", len(env.recorder.runs))
	}
	if len(env.notifier.messages) != 1 || env.notifier.messages[0] != "no notes found for 2024-06-10" {
		t.Errorf("notifications = %v, want no-notes notice", env.notifier.messages)
	}
}

func TestRun_LanguageHint(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Languages = mockDetector{language: "German", ok: true}

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasSuffix(env.sum.gotPrompt, "Respond in German.") {
		t.Errorf("prompt missing language hint:\n%s", env.sum.gotPrompt)
	}
	if env.recorder.runs[0].LanguageHint != "German" {
		t.Errorf("LanguageHint = %q, want %q", env.recorder.runs[0].LanguageHint, "German")
	}
}

func TestRun_EnglishNeedsNoHint(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Languages = mockDetector{language: "English", ok: true}

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if strings.Contains(env.sum.gotPrompt, "Respond in") {
		t.Errorf("prompt has language hint for English:\n%s", env.sum.gotPrompt)
	}
	if env.recorder.runs[0].LanguageHint != "" {
		t.Errorf("LanguageHint = %q, want empty", env.recorder.runs[0].LanguageHint)
	}
}

func TestRun_HistoryUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.deps.History = nil

	if err := Run(context.Background(), testLogger(), env.deps, testOptions()); err != nil {
		t.Fatalf("Run() error = %v, history must stay optional", err)
	}
}

func TestValidateDays(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		wantErr bool
	}{
		{name: "minimum", days: 1, wantErr: false},
		{name: "maximum", days: 30, wantErr: false},
		{name: "zero", days: 0, wantErr: true},
		{name: "negative", days: -3, wantErr: true},
		{name: "too large", days: 31, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDays(tt.days)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDays(%d) error = %v, wantErr %v", tt.days, err, tt.wantErr)
			}
		})
	}
}
