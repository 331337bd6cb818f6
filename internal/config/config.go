// Package config handles settings and the .shiftboard directory
// structure. Every store that runs shiftboard gets a .shiftboard/ folder
// created next to wherever the binary was launched.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/shiftboard/internal/shifttime"
)

// ShiftboardDir is the name of the directory created in each store root.
const ShiftboardDir = ".shiftboard"

const defaultSaveDelayMS = 1200

const defaultSettingsYAML = `# shiftboard settings
version: 1

# Milliseconds to wait after an edit before auto-saving state to disk.
save_delay_ms: 1200

# Catalog rule ids distributed before everything else.
pinned_rules: [110, 216, 215, 218, 213, 307, 309]

# Shift parsing tuning. Hours are 24-hour values; bare schedule numbers
# are resolved against these windows and the early-role keyword list.
heuristics:
  overnight_start: 20
  overnight_end: 3
  open_start: 4
  open_end: 6
  close_start: 16
  close_end: 19
`

// Settings models .shiftboard/config.yaml.
type Settings struct {
	Version     int                  `yaml:"version"`
	SaveDelayMS int                  `yaml:"save_delay_ms"`
	PinnedRules []int                `yaml:"pinned_rules"`
	Heuristics  shifttime.Heuristics `yaml:"heuristics"`
}

// Config holds the runtime configuration for shiftboard.
type Config struct {
	// StoreDir is the directory the user ran shiftboard from.
	StoreDir string

	// HomeDir is StoreDir/.shiftboard.
	HomeDir string

	Settings Settings
}

// InitShiftboardDir creates the .shiftboard directory structure in the
// given store directory. Called on startup before anything touches disk.
//
// Structure created:
// .shiftboard/
// ├── logs/      <- activity logbook
// ├── state/     <- schedule, catalog, assignments, team (JSON)
// └── exports/   <- written backup bundles
func InitShiftboardDir(storeDir string) error {
	home := filepath.Join(storeDir, ShiftboardDir)
	dirs := []string{
		filepath.Join(home, "logs"),
		filepath.Join(home, "state"),
		filepath.Join(home, "exports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ensureSettingsFile(filepath.Join(home, "config.yaml"))
}

// New creates a Config for the given store directory, reading
// .shiftboard/config.yaml when present and falling back to defaults.
//
// SHIFTBOARD_HOME overrides the store directory entirely, which lets one
// machine carry several stores' data side by side.
func New(storeDir string) (*Config, error) {
	if env := strings.TrimSpace(os.Getenv("SHIFTBOARD_HOME")); env != "" {
		storeDir = env
	}
	cfg := &Config{
		StoreDir: storeDir,
		HomeDir:  filepath.Join(storeDir, ShiftboardDir),
		Settings: defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logbook directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.HomeDir, "logs")
}

// StateDir returns the path to the persisted-state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.HomeDir, "state")
}

// ExportsDir returns the directory backup bundles are written to.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.HomeDir, "exports")
}

// SettingsPath returns the on-disk location of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.HomeDir, "config.yaml")
}

// SaveDelay returns how long edits are debounced before auto-saving.
func (c *Config) SaveDelay() time.Duration {
	return time.Duration(c.Settings.SaveDelayMS) * time.Millisecond
}

// PinnedRules returns the catalog ids distributed ahead of the rest.
func (c *Config) PinnedRules() []int {
	return c.Settings.PinnedRules
}

// Heuristics returns the shift-parsing tuning.
func (c *Config) Heuristics() shifttime.Heuristics {
	return c.Settings.Heuristics
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Settings = parsed
	return nil
}

// Save persists the current settings back to .shiftboard/config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Settings.applyDefaults()
	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.HomeDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure home dir: %w", err)
	}
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write settings: %w", err)
	}
	return nil
}

func defaultSettings() Settings {
	s := Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.SaveDelayMS <= 0 {
		s.SaveDelayMS = defaultSaveDelayMS
	}
	if s.PinnedRules == nil {
		s.PinnedRules = defaultPinnedRules()
	}
	s.Heuristics = s.Heuristics.Normalize()
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	h := s.Heuristics
	hourFields := map[string]int{
		"overnight_start": h.OvernightStart,
		"overnight_end":   h.OvernightEnd,
		"open_start":      h.OpenStart,
		"open_end":        h.OpenEnd,
		"close_start":     h.CloseStart,
		"close_end":       h.CloseEnd,
	}
	for name, v := range hourFields {
		if v < 0 || v > 23 {
			return fmt.Errorf("heuristics.%s must be a 0-23 hour, got %d", name, v)
		}
	}
	for _, id := range s.PinnedRules {
		if id <= 0 {
			return fmt.Errorf("pinned_rules entries must be positive, got %d", id)
		}
	}
	return nil
}

func defaultPinnedRules() []int {
	return []int{110, 216, 215, 218, 213, 307, 309}
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsYAML), 0644)
}
