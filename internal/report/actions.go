package report

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/HighPriest/ob-daily-summary/internal/common"
	"github.com/HighPriest/ob-daily-summary/pkg/db"
	"github.com/HighPriest/ob-daily-summary/pkg/errlog"
	"github.com/HighPriest/ob-daily-summary/pkg/langdetect"
	"github.com/HighPriest/ob-daily-summary/pkg/notify"
	"github.com/HighPriest/ob-daily-summary/pkg/reportfile"
	"github.com/HighPriest/ob-daily-summary/pkg/settings"
	"github.com/HighPriest/ob-daily-summary/pkg/summarizer"
	"github.com/HighPriest/ob-daily-summary/pkg/vault"
	"github.com/urfave/cli/v2"
)

// GenerateAction builds the report for today.
func GenerateAction(c *cli.Context) error {
	return runAction(c, 0)
}

// PreviousAction builds the report for a past day. The --days value counts
// backwards from today and is negated into the day offset.
func PreviousAction(c *cli.Context) error {
	days := c.Int("days")
	if err := validateDays(days); err != nil {
		return err
	}
	return runAction(c, -days)
}

// validateDays accepts 1 through 30 days back
func validateDays(days int) error {
	if days < 1 || days > 30 {
		return fmt.Errorf("days must be between 1 and 30, got %d", days)
	}
	return nil
}

func runAction(c *cli.Context, offset int) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	settingsPath, err := common.SettingsPath()
	if err != nil {
		logger.Error("failed to resolve settings path", "error", err)
		os.Exit(2)
	}
	cfg, err := settings.NewStore(settings.NewFileStore(settingsPath)).LoadWithEnv()
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(2)
	}

	v, err := vault.New(c.String("vault"))
	if err != nil {
		logger.Error("failed to open vault", "error", err)
		os.Exit(2)
	}

	deps := Deps{
		Store:      v,
		Summarizer: summarizer.NewClient(cfg.APIEndpoint, cfg.APIKey, nil),
		Reports:    reportfile.NewWriter(cfg.ReportLocation),
		Errors:     errlog.New(cfg.ReportLocation, logger),
		Notifier:   notify.Console{},
		Languages:  langdetect.New(),
	}

	// Run history is best-effort; a broken database never blocks the report
	historyPath, err := common.HistoryPath()
	if err != nil {
		logger.Warn("Failed to resolve run history path", "error", err)
	} else if database, err := db.Open(historyPath); err != nil {
		logger.Warn("Failed to open run history database", "error", err)
	} else {
		defer database.Close()
		deps.History = database
	}

	opts := Options{
		Settings: cfg,
		Offset:   offset,
		Workers:  c.Int("workers"),
		DryRun:   c.Bool("dry-run"),
	}

	return Run(c.Context, logger, deps, opts)
}
