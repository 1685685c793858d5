// Package config handles global hazcube configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global hazcube configuration from config.toml.
type Config struct {
	// OutputDir is the default destination directory for generated cube
	// stores, used when the cubify command is not given one explicitly.
	OutputDir string `toml:"output_dir"`

	// RegistryFiles lists extra indicator descriptor YAML files loaded on
	// top of the built-in registry.
	RegistryFiles []string `toml:"registry_files"`

	// RenderExtension controls whether generated collections include the
	// render extension block. Defaults to true.
	RenderExtension *bool `toml:"render_extension"`

	// LogLevel sets the logging level: debug, info, warn, or error.
	LogLevel string `toml:"log_level"`
}

// RenderEnabled reports whether the render extension should be emitted.
func (c *Config) RenderEnabled() bool {
	if c.RenderExtension == nil {
		return true
	}
	return *c.RenderExtension
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/hazcube/config.toml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hazcube", "config.toml")
}

// Load reads the configuration from path (or the default location when
// path is empty). A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
