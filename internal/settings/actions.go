// Package settings implements the CLI surface over the settings store.
package settings

import (
	"fmt"
	"strings"

	"github.com/HighPriest/ob-daily-summary/internal/common"
	settingspkg "github.com/HighPriest/ob-daily-summary/pkg/settings"
	"github.com/urfave/cli/v2"
)

func openStore() (*settingspkg.Store, error) {
	settingsPath, err := common.SettingsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path: %w", err)
	}
	return settingspkg.NewStore(settingspkg.NewFileStore(settingsPath)), nil
}

// ListAction prints every setting with the API key masked.
func ListAction(c *cli.Context) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fmt.Printf("%-16s %s\n", settingspkg.KeyAPIKey, maskKey(cfg.APIKey))
	fmt.Printf("%-16s %s\n", settingspkg.KeyAPIEndpoint, cfg.APIEndpoint)
	fmt.Printf("%-16s %s\n", settingspkg.KeyReportLocation, cfg.ReportLocation)

	return nil
}

// GetAction prints one setting by key. The API key stays masked here too;
// it never leaves the settings file in clear text.
func GetAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("setting key required\nUsage: ob-daily-summary settings get <key>\nValid keys: %s",
			strings.Join(settingspkg.Keys(), ", "))
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	key := c.Args().First()
	value, err := store.Get(key)
	if err != nil {
		return err
	}

	if key == settingspkg.KeyAPIKey {
		value = maskKey(value)
	}
	fmt.Println(value)

	return nil
}

// SetAction updates one setting and persists it.
func SetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("setting key and value required\nUsage: ob-daily-summary settings set <key> <value>\nValid keys: %s",
			strings.Join(settingspkg.Keys(), ", "))
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)
	if err := store.Set(key, value); err != nil {
		return err
	}

	fmt.Printf("%s updated\n", key)

	return nil
}

// maskKey hides the API key body; only short affixes stay visible
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
