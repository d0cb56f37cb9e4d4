package report

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/HighPriest/ob-daily-summary/models"
)

const defaultWorkerCount = 4

// readNotes reads note contents concurrently. Results are placed by index
// so every name stays paired with its own content regardless of which
// worker finishes first.
func readNotes(logger *slog.Logger, store NoteStore, notes []models.Note, workerCount int) ([]models.NoteContent, error) {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	if workerCount > len(notes) {
		workerCount = len(notes)
	}

	logger.Info("Starting concurrent read phase", "note_count", len(notes), "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan readJob, len(notes))
	results := make(chan readResult, len(notes))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go readWorker(w, logger, store, &wg, jobs, results)
	}

	for i, note := range notes {
		jobs <- readJob{index: i, note: note}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All read workers finished")

	contents := make([]models.NoteContent, len(notes))
	for i, note := range notes {
		contents[i] = models.NoteContent{Name: note.Name}
	}

	var readErr error
	for result := range results {
		if result.err != nil {
			if readErr == nil {
				readErr = result.err
			}
			continue
		}
		contents[result.index].Content = result.content
	}
	if readErr != nil {
		return nil, readErr
	}

	return contents, nil
}

func readWorker(id int, logger *slog.Logger, store NoteStore, wg *sync.WaitGroup, jobs <-chan readJob, results chan<- readResult) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "note", job.note.Name)
		content, err := store.ReadNote(job.note.Path)
		if err != nil {
			logger.Error("Error reading note", "worker_id", id, "note", job.note.Name, "error", err)
			results <- readResult{index: job.index, err: fmt.Errorf("reading note %s: %w", job.note.Name, err)}
			continue
		}
		results <- readResult{index: job.index, content: content}
		logger.Info("Worker finished job", "worker_id", id, "note", job.note.Name)
	}
}
