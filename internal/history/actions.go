// Package history implements the CLI surface over the run-history database.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/HighPriest/ob-daily-summary/internal/common"
	"github.com/HighPriest/ob-daily-summary/models"
	dbpkg "github.com/HighPriest/ob-daily-summary/pkg/db"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists past runs, or shows one run in detail when a run ID
// argument is given.
func HistoryAction(c *cli.Context) error {
	historyPath, err := common.HistoryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve run history path: %w", err)
	}
	database, err := dbpkg.Open(historyPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.NArg() > 0 {
		runID, err := parseRunID(c.Args().First())
		if err != nil {
			return err
		}
		return showRun(database, runID)
	}

	return listRuns(database, c.Int("limit"))
}

func parseRunID(arg string) (int64, error) {
	var runID int64
	if _, err := fmt.Sscanf(arg, "%d", &runID); err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", arg)
	}
	return runID, nil
}

func listRuns(database *dbpkg.DB, limit int) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-12s %-7s %-6s %-7s %-10s %s\n",
		"ID", "Created", "Date", "Offset", "Notes", "Status", "Duration", "Error")
	fmt.Println(strings.Repeat("-", 100))

	// Print each run
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-12s %-7d %-6d %-7s %-10s %s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.TargetDate,
			r.DayOffset,
			r.NoteCount,
			r.Status,
			formatDuration(r.DurationMS),
			r.ErrorKind,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'ob-daily-summary history <id>' to see details\n")

	return nil
}

func showRun(database *dbpkg.DB, runID int64) error {
	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	notes, err := database.RunNotes(runID)
	if err != nil {
		return fmt.Errorf("failed to get run notes: %w", err)
	}

	// Print run details
	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:      %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Target date:  %s\n", run.TargetDate)
	fmt.Printf("Day offset:   %d\n", run.DayOffset)
	fmt.Printf("Status:       %s\n", run.Status)
	fmt.Printf("Notes:        %d\n", run.NoteCount)
	fmt.Printf("Summary:      %d bytes\n", run.SummaryBytes)
	fmt.Printf("Duration:     %s\n", formatDuration(run.DurationMS))
	if run.LanguageHint != "" {
		fmt.Printf("Language:     %s\n", run.LanguageHint)
	}
	if run.Status == models.RunStatusFailed {
		fmt.Printf("Error:        [%s] %s\n", run.ErrorKind, run.ErrorMessage)
	}

	if len(notes) > 0 {
		fmt.Printf("\nNotes (%d):\n", len(notes))
		fmt.Println(strings.Repeat("-", 60))
		for i, path := range notes {
			fmt.Printf("%2d. %s\n", i+1, path)
		}
	}

	return nil
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
