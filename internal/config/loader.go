package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/fygbuild/fyg/internal/errors"
)

// Environment variables read by the CLI.
const (
	envPrefix = "FYG"

	EnvConfig     = "FYG_CONFIG"
	EnvGroup      = "FYG_GROUP"
	EnvTemplate   = "FYG_TEMPLATE"
	EnvTimestamps = "FYG_LOG_TIMESTAMPS"
)

// Config keys.
const (
	KeyGroup      = "defaults.group"
	KeyTemplate   = "defaults.template"
	KeyTimestamps = "log.timestamps"
)

// envKeys maps config keys to their environment variables.
var envKeys = map[string]string{
	KeyGroup:      EnvGroup,
	KeyTemplate:   EnvTemplate,
	KeyTimestamps: EnvTimestamps,
}

// Loader loads configuration from the config file and the environment.
type Loader struct {
	// v merges file and environment, environment first.
	v *viper.Viper

	// file holds only what the config file set.
	file *viper.Viper

	path string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}

	return &Loader{v: v, file: viper.New()}
}

// Load loads configuration from configFile, or the default path when empty.
// A missing file is not an error. Environment variables take precedence
// over file values. The result is validated but not defaulted.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = ConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	l.file.SetConfigFile(expandedPath)
	l.file.SetConfigType("yaml")
	if err := l.file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, &oerrors.DetailError{
				Type:     "invalid configuration",
				Message:  err.Error(),
				Location: expandedPath,
				Hint:     "Fix the YAML syntax or regenerate the file with 'fyg config init --force'.",
				Cause:    oerrors.ErrValidation,
			}
		}
	}

	if err := l.v.MergeConfigMap(l.file.AllSettings()); err != nil {
		return nil, fmt.Errorf("merging config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  err.Error(),
			Location: expandedPath,
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  err.Error(),
			Location: expandedPath,
			Cause:    oerrors.ErrValidation,
		}
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// Path returns the config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// FileValue returns the value the config file set for key, if any.
func (l *Loader) FileValue(key string) (string, bool) {
	if !l.file.IsSet(key) {
		return "", false
	}
	return l.file.GetString(key), true
}
