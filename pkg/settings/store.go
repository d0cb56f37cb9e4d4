// Package settings persists the three user-configurable values through a
// generic key-value store, with defaults merged on load and environment
// overrides applied on top.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/HighPriest/ob-daily-summary/models"
)

// Setting keys as persisted. The names match the original plugin's settings
// object, so an existing settings file keeps working.
const (
	KeyAPIKey         = "apiKey"
	KeyAPIEndpoint    = "apiEndpoint"
	KeyReportLocation = "reportLocation"
)

// Keys returns every valid setting key.
func Keys() []string {
	return []string{KeyAPIKey, KeyAPIEndpoint, KeyReportLocation}
}

// KeyValueStore persists string values under string keys.
type KeyValueStore interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

// FileStore is a KeyValueStore backed by a single YAML file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the backing file. A missing file is an empty store, not an
// error.
func (fs *FileStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(filepath.Clean(fs.path))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return values, nil
}

// Save writes the full key set back to the backing file.
func (fs *FileStore) Save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Store reads and writes Settings through a KeyValueStore.
type Store struct {
	kv KeyValueStore
}

func NewStore(kv KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted settings with defaults merged for absent or
// empty optional keys. The API key has no meaningful default and stays empty.
func (s *Store) Load() (models.Settings, error) {
	values, err := s.kv.Load()
	if err != nil {
		return models.Settings{}, err
	}

	cfg := models.DefaultSettings()
	if v, ok := values[KeyAPIKey]; ok {
		cfg.APIKey = v
	}
	if v := values[KeyAPIEndpoint]; v != "" {
		cfg.APIEndpoint = v
	}
	if v := values[KeyReportLocation]; v != "" {
		cfg.ReportLocation = v
	}
	return cfg, nil
}

// LoadWithEnv loads persisted settings, then applies environment overrides.
// A .env file in the working directory is honored when present.
func (s *Store) LoadWithEnv() (models.Settings, error) {
	_ = godotenv.Load()

	cfg, err := s.Load()
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("OBDS_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OBDS_API_ENDPOINT"); v != "" {
		cfg.APIEndpoint = v
	}
	if v := os.Getenv("OBDS_REPORT_LOCATION"); v != "" {
		cfg.ReportLocation = v
	}
	return cfg, nil
}

// Save persists the full settings.
func (s *Store) Save(cfg models.Settings) error {
	return s.kv.Save(map[string]string{
		KeyAPIKey:         cfg.APIKey,
		KeyAPIEndpoint:    cfg.APIEndpoint,
		KeyReportLocation: cfg.ReportLocation,
	})
}

// Get returns one setting by key.
func (s *Store) Get(key string) (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	switch key {
	case KeyAPIKey:
		return cfg.APIKey, nil
	case KeyAPIEndpoint:
		return cfg.APIEndpoint, nil
	case KeyReportLocation:
		return cfg.ReportLocation, nil
	}
	return "", fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
}

// Set updates one setting and persists immediately.
func (s *Store) Set(key, value string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	switch key {
	case KeyAPIKey:
		cfg.APIKey = value
	case KeyAPIEndpoint:
		cfg.APIEndpoint = value
	case KeyReportLocation:
		cfg.ReportLocation = value
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return s.Save(cfg)
}
