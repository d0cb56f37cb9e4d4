// Package models defines data structures shared across the report pipeline.
package models

// DefaultAPIEndpoint is the chat-completions URL used until the user
// configures their own.
const DefaultAPIEndpoint = "https://api.openai.com/v1/chat/completions"

// DefaultReportLocation is the report folder used until the user configures
// their own. Relative locations resolve against the working directory.
const DefaultReportLocation = "reports"

// Settings holds the three persisted configuration values. All other runtime
// knobs come from CLI flags, not the settings store.
type Settings struct {
	APIKey         string
	APIEndpoint    string
	ReportLocation string
}

// DefaultSettings returns the settings in effect before any user
// configuration.
func DefaultSettings() Settings {
	return Settings{
		APIKey:         "",
		APIEndpoint:    DefaultAPIEndpoint,
		ReportLocation: DefaultReportLocation,
	}
}

// SettingsSnapshot reports configuration presence for diagnostics. Secret
// values never appear in a snapshot.
type SettingsSnapshot struct {
	APIKeyConfigured   bool
	EndpointConfigured bool
	ReportLocation     string
}

// Snapshot redacts the settings down to presence booleans plus the report
// location.
func (s Settings) Snapshot() SettingsSnapshot {
	return SettingsSnapshot{
		APIKeyConfigured:   s.APIKey != "",
		EndpointConfigured: s.APIEndpoint != "",
		ReportLocation:     s.ReportLocation,
	}
}
