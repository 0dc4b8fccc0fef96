package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("settings path is only isolated on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadSettings_DefaultsWhenMissing(t *testing.T) {
	isolate(t)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSaveLoadSettings(t *testing.T) {
	isolate(t)

	s := DefaultSettings()
	s.Output.Format = FormatJSON
	s.Output.Color = false
	s.Encode.DefaultTrackers = []string{"udp://tracker.example:1337"}
	require.NoError(t, SaveSettings(s))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(GetMagnetDir(), 0o755))
	require.NoError(t, os.WriteFile(GetSettingsPath(), []byte(`{"general":{"debug":true}}`), 0o644))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.General.Debug)
	assert.Equal(t, FormatPretty, s.Output.Format)
	assert.True(t, s.Output.Color)
}

func TestLoadSettings_LegacyFormatKey(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(GetMagnetDir(), 0o755))
	require.NoError(t, os.WriteFile(GetSettingsPath(), []byte(`{"format":"uri"}`), 0o644))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, FormatURI, s.Output.Format)
}

func TestLoadSettings_Invalid(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(GetMagnetDir(), 0o755))

	require.NoError(t, os.WriteFile(GetSettingsPath(), []byte(`{"output":{"format":"xml"}}`), 0o644))
	_, err := LoadSettings()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(GetMagnetDir(), "settings.json"), []byte(`{`), 0o644))
	_, err = LoadSettings()
	assert.Error(t, err)
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	isolate(t)
	s := DefaultSettings()
	s.Output.Format = "yaml"
	assert.Error(t, SaveSettings(s))
}
