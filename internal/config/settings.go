package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Output formats understood by the CLI.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatURI    = "uri"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General GeneralSettings `json:"general"`
	Output  OutputSettings  `json:"output"`
	Encode  EncodeSettings  `json:"encode"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	Debug bool `json:"debug"`
}

// OutputSettings controls how decoded magnets are printed.
type OutputSettings struct {
	Format string `json:"format"`
	Color  bool   `json:"color"`
}

// EncodeSettings contains defaults applied by the encode command.
type EncodeSettings struct {
	DefaultTrackers []string `json:"default_trackers"`
}

// UnmarshalJSON accepts the legacy top-level "format" key and moves it into Output.
func (s *Settings) UnmarshalJSON(data []byte) error {
	// Use an alias to avoid infinite recursion (alias has no methods)
	type Alias Settings
	if err := json.Unmarshal(data, (*Alias)(s)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil // Already parsed above, ignore raw parse errors
	}
	if _, hasOutput := raw["output"]; !hasOutput {
		if format, ok := raw["format"]; ok {
			_ = json.Unmarshal(format, &s.Output.Format)
		}
	}
	return nil
}

// Validate reports settings the CLI cannot honour.
func (s *Settings) Validate() error {
	if !slices.Contains([]string{FormatPretty, FormatJSON, FormatURI}, s.Output.Format) {
		return fmt.Errorf("unknown output format %q", s.Output.Format)
	}
	return nil
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			Debug: false,
		},
		Output: OutputSettings{
			Format: FormatPretty,
			Color:  true,
		},
		Encode: EncodeSettings{
			DefaultTrackers: []string{},
		},
	}
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetMagnetDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes settings to disk, creating the config directory if needed.
func SaveSettings(s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(GetMagnetDir(), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(GetSettingsPath(), data, 0o644)
}
