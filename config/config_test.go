package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileGivesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, s.Appearance.DarkMode)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	require.NoError(t, SaveSettings(path, Settings{Appearance: Appearance{DarkMode: true}}))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.True(t, s.Appearance.DarkMode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dark_mode: true")
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("appearance: [oops"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestNewPaths_CreatesDirectories(t *testing.T) {
	t.Setenv("DB_PATH", "")
	dir := filepath.Join(t.TempDir(), "data")

	p, err := NewPaths(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "avon_hello.db"), p.DBPath)
	assert.DirExists(t, p.InvoiceDir)
}

func TestSettingsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	store, err := OpenSettings(path)
	require.NoError(t, err)
	assert.False(t, store.Get().Appearance.DarkMode)

	require.NoError(t, store.Save(Settings{Appearance: Appearance{DarkMode: true}}))
	assert.True(t, store.Get().Appearance.DarkMode)

	reopened, err := OpenSettings(path)
	require.NoError(t, err)
	assert.True(t, reopened.Get().Appearance.DarkMode)
}
