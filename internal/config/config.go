// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/scaffold"
)

// DefaultGroup is the group given to new projects when none is configured.
const DefaultGroup = "com.example"

// DefaultsConfig holds defaults for project creation.
type DefaultsConfig struct {
	// Group is the group used by `fyg new` and `fyg init` without --group.
	// Env: FYG_GROUP, Default: com.example
	Group string `mapstructure:"group" yaml:"group,omitempty" json:"group,omitempty"`

	// Template is the starter template used without --template.
	// Env: FYG_TEMPLATE, Default: minimal
	Template string `mapstructure:"template" yaml:"template,omitempty" json:"template,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Env: FYG_LOG_TIMESTAMPS, Default: true. Override with --timestamps.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the fyg CLI configuration, loaded from
// ~/.fyg/config.yaml.
type Config struct {
	// Defaults contains project creation defaults.
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults" json:"defaults"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `fyg config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Defaults: DefaultsConfig{
			Group:    DefaultGroup,
			Template: scaffold.DefaultTemplateName,
		},
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// WithDefaults returns a copy of c with unset values filled from
// DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Defaults.Group == "" {
		out.Defaults.Group = def.Defaults.Group
	}
	if out.Defaults.Template == "" {
		out.Defaults.Template = def.Defaults.Template
	}
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = def.Log.Timestamps
	}
	return &out
}

// WriteFile writes c as YAML to path, creating parent directories. The file
// is replaced atomically, and an existing file only when force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return oerrors.NewExistsError("config file", path, "Use --force to overwrite.")
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &manifest.IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	header := []byte("# fyg CLI configuration\n")
	return manifest.WriteFileAtomic(path, append(header, data...), 0o644)
}
