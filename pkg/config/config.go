// Package config adapts AndrewNeudegg-calc's pkg/settings (a JSON-backed
// Default()/Load()/Save() settings shape) to the editor's runtime
// configuration surface, persisted as YAML the way bmf-san-ggc/config does
// for its Config struct.
package config

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config holds the editor's runtime configuration surface: everything the
// spec's non-goals still allow as configurable behavior (vi mode, the
// autosuggestion feature toggle, the prompt, and the theme selection) —
// never syntax rules or a bespoke file format.
type Config struct {
	ViMode              bool   `yaml:"vi-mode"`
	ShowAutosuggestions bool   `yaml:"show-autosuggestions"`
	Prompt              string `yaml:"prompt"`
	ThemeName           string `yaml:"theme"`

	path string
}

// Default returns the out-of-the-box configuration: Vi mode and
// autosuggestions on, a plain "> " prompt, the default theme.
func Default() *Config {
	return &Config{
		ViMode:              true,
		ShowAutosuggestions: true,
		Prompt:              "> ",
		ThemeName:           "default",
	}
}

// Load reads a YAML config file at path, falling back to Default if the
// file does not exist.
func Load(path string) (*Config, error) {
	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

// Save writes the config back to its Load path as YAML, creating parent
// directories as needed.
func (c *Config) Save() error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
