// Package config handles loading and saving coursedeck configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/coursedeck/config.yaml
//   - State:   ~/.local/state/coursedeck/ (progress database)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme        string `yaml:"theme,omitempty"`         // dark, light, auto
	SidebarWidth int    `yaml:"sidebar_width,omitempty"` // columns, 20-60
	WordWrap     int    `yaml:"word_wrap,omitempty"`     // markdown wrap width
}

// Config is the top-level configuration for coursedeck.
type Config struct {
	// DefaultTopic is the topic shown on startup when --topic is not given.
	DefaultTopic string `yaml:"default_topic,omitempty"`
	// ContentDir is a default overlay directory, overridable by --content-dir.
	ContentDir string `yaml:"content_dir,omitempty"`
	// Persist controls whether progress is saved between sessions.
	Persist *bool    `yaml:"persist,omitempty"`
	UI      UIConfig `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme:        "auto",
			SidebarWidth: 34,
			WordWrap:     80,
		},
	}
}

// PersistEnabled reports the persistence setting, defaulting to on.
func (c Config) PersistEnabled() bool {
	return c.Persist == nil || *c.Persist
}

// ConfigDir returns the XDG config directory for coursedeck.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "coursedeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "coursedeck")
}

// StateDir returns the XDG state directory for coursedeck.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "coursedeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "coursedeck")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ContentDir = expandHome(cfg.ContentDir)
	if cfg.UI.SidebarWidth < 20 || cfg.UI.SidebarWidth > 60 {
		cfg.UI.SidebarWidth = DefaultConfig().UI.SidebarWidth
	}
	if cfg.UI.WordWrap < 40 {
		cfg.UI.WordWrap = DefaultConfig().UI.WordWrap
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
