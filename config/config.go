// Package config resolves where the application keeps its files and loads the
// user settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the user's config directory
const AppName = "AvonHello"

// Paths holds every file location the application uses
type Paths struct {
	DataDir      string
	DBPath       string
	SettingsFile string
	ErrorLogFile string
	InvoiceDir   string
}

// ResolvePaths builds Paths from APP_DATA_DIR (or the OS user config dir)
// and creates the directories that must exist.
func ResolvePaths() (Paths, error) {
	dataDir := os.Getenv("APP_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dataDir = filepath.Join(base, AppName)
	}
	return NewPaths(dataDir)
}

// NewPaths lays out the application files under dataDir
func NewPaths(dataDir string) (Paths, error) {
	p := Paths{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "avon_hello.db"),
		SettingsFile: filepath.Join(dataDir, "settings.yaml"),
		ErrorLogFile: filepath.Join(dataDir, "error_log.txt"),
		InvoiceDir:   filepath.Join(dataDir, "invoices"),
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		p.DBPath = v
	}
	for _, dir := range []string{p.DataDir, p.InvoiceDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Paths{}, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return p, nil
}

// Settings is the user-editable settings file
type Settings struct {
	Appearance Appearance `yaml:"appearance" json:"appearance"`
}

// Appearance controls the display theme
type Appearance struct {
	DarkMode bool `yaml:"dark_mode" json:"darkMode"`
}

// LoadSettings reads the settings file. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes the settings file, replacing it atomically
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return os.Rename(tmp, path)
}

// SettingsStore keeps the settings file in memory and serializes writes
type SettingsStore struct {
	path    string
	mu      sync.RWMutex
	current Settings
}

// OpenSettings loads the settings file at path into a store
func OpenSettings(path string) (*SettingsStore, error) {
	s, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return &SettingsStore{path: path, current: s}, nil
}

// Get returns the current settings
func (st *SettingsStore) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Save writes s to disk and makes it current
func (st *SettingsStore) Save(s Settings) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := SaveSettings(st.path, s); err != nil {
		return err
	}
	st.current = s
	return nil
}
