package config

import (
	"os"
	"strconv"

	"github.com/fygbuild/fyg/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ValueOptions describes the candidates for one value.
type ValueOptions struct {
	Key string

	// Flag is the flag value; nil when the flag was not given.
	Flag *string

	// Env is the environment variable consulted.
	Env string

	// Config is the file value; nil when the file does not set it.
	Config *string

	Default string
}

// ResolveValue picks a value using precedence flag > env > config > default
// and records every lower-precedence candidate that was present.
func ResolveValue(opts ValueOptions) ResolvedValue {
	type candidate struct {
		source ConfigSource
		value  *string
	}

	var env *string
	if opts.Env != "" {
		if v, ok := os.LookupEnv(opts.Env); ok && v != "" {
			env = &v
		}
	}

	candidates := []candidate{
		{SourceFlag, opts.Flag},
		{SourceEnv, env},
		{SourceConfig, opts.Config},
		{SourceDefault, &opts.Default},
	}

	result := ResolvedValue{Key: opts.Key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == nil {
			continue
		}
		if result.Source == "" {
			result.Value = *c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = *c.value
	}
	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) FYG_CONFIG env, (3) ~/.fyg/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	defaultPath, err := DefaultConfigFile()
	if err != nil {
		return ResolvedValue{}, err
	}

	var flag *string
	if opts.FlagValue != "" {
		flag = &opts.FlagValue
	}
	return ResolveValue(ValueOptions{
		Key:     "config",
		Flag:    flag,
		Env:     EnvConfig,
		Default: defaultPath,
	}), nil
}

// Settings are the effective settings for one invocation.
type Settings struct {
	ConfigPath ResolvedValue
	Group      ResolvedValue
	Template   ResolvedValue
	Timestamps ResolvedValue
}

// Values returns every resolved value in display order.
func (s *Settings) Values() []ResolvedValue {
	return []ResolvedValue{s.ConfigPath, s.Group, s.Template, s.Timestamps}
}

// TimestampsEnabled parses the resolved timestamps value; unparsable values
// count as enabled.
func (s *Settings) TimestampsEnabled() bool {
	b, err := strconv.ParseBool(s.Timestamps.Value)
	if err != nil {
		return true
	}
	return b
}

// SettingsOptions carries flag values; nil means the flag was not given.
type SettingsOptions struct {
	ConfigFlag     string
	GroupFlag      *string
	TemplateFlag   *string
	TimestampsFlag *bool
}

// ResolveSettings loads the config file named by the resolved config path
// and resolves each setting. When the file cannot be loaded the returned
// settings ignore it and the load error is returned alongside them.
func ResolveSettings(opts SettingsOptions) (*Settings, error) {
	configPath, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, err
	}

	loader := NewLoader()
	_, loadErr := loader.Load(configPath.Value)
	fileValue := func(key string) *string {
		if loadErr != nil {
			return nil
		}
		if v, ok := loader.FileValue(key); ok {
			return &v
		}
		return nil
	}

	def := DefaultConfig()
	var timestampsFlag *string
	if opts.TimestampsFlag != nil {
		s := strconv.FormatBool(*opts.TimestampsFlag)
		timestampsFlag = &s
	}

	return &Settings{
		ConfigPath: configPath,
		Group: ResolveValue(ValueOptions{
			Key:     KeyGroup,
			Flag:    opts.GroupFlag,
			Env:     EnvGroup,
			Config:  fileValue(KeyGroup),
			Default: def.Defaults.Group,
		}),
		Template: ResolveValue(ValueOptions{
			Key:     KeyTemplate,
			Flag:    opts.TemplateFlag,
			Env:     EnvTemplate,
			Config:  fileValue(KeyTemplate),
			Default: def.Defaults.Template,
		}),
		Timestamps: ResolveValue(ValueOptions{
			Key:     KeyTimestamps,
			Flag:    timestampsFlag,
			Env:     EnvTimestamps,
			Config:  fileValue(KeyTimestamps),
			Default: strconv.FormatBool(*def.Log.Timestamps),
		}),
	}, loadErr
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
