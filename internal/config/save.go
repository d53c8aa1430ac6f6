package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePath is where Save writes: the --config path when given, otherwise
// config.yaml in the user's config directory.
func SavePath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to SavePath.
func (c *Config) Save() error {
	return c.SaveTo(SavePath())
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
