package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HighPriest/ob-daily-summary/models"
)

// ConfigDirName is the per-user directory holding settings and history.
const ConfigDirName = ".ob-daily-summary"

// TargetDate applies a signed day offset to now and returns the day key.
// Report generation always uses offset <= 0: zero for today, negative for
// previous days.
func TargetDate(now time.Time, offset int) string {
	return now.AddDate(0, 0, offset).Format(models.DateFormat)
}

// ConfigDir returns the per-user directory for settings and history.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// SettingsPath returns the settings file location. OBDS_SETTINGS overrides
// the default under the config directory.
func SettingsPath() (string, error) {
	if p := os.Getenv("OBDS_SETTINGS"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// HistoryPath returns the run-history database location. OBDS_HISTORY_DB
// overrides the default under the config directory.
func HistoryPath() (string, error) {
	if p := os.Getenv("OBDS_HISTORY_DB"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
