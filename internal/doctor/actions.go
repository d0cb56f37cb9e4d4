// Package doctor checks the local setup end to end: settings, vault,
// report location, and run-history database.
package doctor

import (
	"fmt"
	"net/url"
	"os"

	"github.com/HighPriest/ob-daily-summary/internal/common"
	"github.com/HighPriest/ob-daily-summary/pkg/db"
	"github.com/HighPriest/ob-daily-summary/pkg/settings"
	"github.com/HighPriest/ob-daily-summary/pkg/vault"
	"github.com/urfave/cli/v2"
)

// DoctorAction runs every check and prints one line per result. A non-nil
// return means at least one check failed.
func DoctorAction(c *cli.Context) error {
	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Printf("%-24s FAIL: %v\n", name, err)
			return
		}
		fmt.Printf("%-24s ok\n", name)
	}

	settingsPath, err := common.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to resolve settings path: %w", err)
	}
	cfg, err := settings.NewStore(settings.NewFileStore(settingsPath)).LoadWithEnv()
	check("settings", err)
	if err != nil {
		// The remaining checks need the loaded values
		return fmt.Errorf("%d check(s) failed", failed)
	}

	check("api key", checkAPIKey(cfg.APIKey))
	check("api endpoint", checkEndpoint(cfg.APIEndpoint))
	check("vault", checkVault(c.String("vault")))
	check("report location", checkWritable(cfg.ReportLocation))
	check("history database", checkHistory())

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}

	fmt.Println("\nAll checks passed")
	return nil
}

func checkAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("not configured (set with 'ob-daily-summary settings set apiKey <value>')")
	}
	return nil
}

func checkEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", endpoint)
	}
	return nil
}

func checkVault(dir string) error {
	_, err := vault.New(dir)
	return err
}

// checkWritable probes the report location with a throwaway file
func checkWritable(location string) error {
	if location == "" {
		location = "."
	}
	if err := os.MkdirAll(location, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(location, ".doctor-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func checkHistory() error {
	historyPath, err := common.HistoryPath()
	if err != nil {
		return err
	}
	database, err := db.Open(historyPath)
	if err != nil {
		return err
	}
	return database.Close()
}
