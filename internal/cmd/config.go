package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/config"
	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long: `Commands for managing the fyg CLI configuration file
(~/.fyg/config.yaml by default).`,
	}

	c.AddCommand(
		newConfigInitCmd(cfg),
		newConfigShowCmd(cfg),
	)

	return c
}

func newConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a configuration file with default values.

The file is created at ~/.fyg/config.yaml unless --config or FYG_CONFIG
names another location.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.ExpandPath(cfg.ConfigPath)
			if err != nil {
				return fmt.Errorf("expanding config path: %w", err)
			}

			if err := config.DefaultConfig().WriteFile(path, forceFlag); err != nil {
				return err
			}

			output.Println(output.FormatCheckmark("Created configuration file " + output.StyleNoun.Render(path)))
			return nil
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing config file")

	return c
}

func newConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	var formatFlag string

	c := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show every configuration value, where it came from (flag, env, config
or default), and any lower-precedence values it shadows.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(formatFlag)
			if err != nil || format == output.FormatTOML {
				return oerrors.NewValidationError(
					fmt.Sprintf("invalid output format %q", formatFlag), "", "",
					"Valid formats: text, yaml, json.")
			}
			return runConfigShow(cfg, format)
		},
	}

	c.Flags().StringVarP(&formatFlag, "output", "o", "text", "Output format: text, yaml, json")

	return c
}

// shownValue is the structured form of one resolved value.
type shownValue struct {
	Value    string            `json:"value" yaml:"value"`
	Source   string            `json:"source" yaml:"source"`
	Shadowed map[string]string `json:"shadowed,omitempty" yaml:"shadowed,omitempty"`
}

func runConfigShow(cfg *config.GlobalConfig, format output.Format) error {
	values := cfg.Settings.Values()

	if format != output.FormatText {
		shown := make(map[string]shownValue, len(values))
		for _, v := range values {
			sv := shownValue{Value: v.Value, Source: string(v.Source)}
			if len(v.Shadowed) > 0 {
				sv.Shadowed = make(map[string]string, len(v.Shadowed))
				for src, val := range v.Shadowed {
					sv.Shadowed[string(src)] = val
				}
			}
			shown[v.Key] = sv
		}
		return output.WriteStructured(output.Writer(), format, shown)
	}

	tbl := output.NewTable("KEY", "VALUE", "SOURCE", "SHADOWED")
	for _, v := range values {
		tbl.Row(v.Key, v.Value, string(v.Source), shadowedString(v.Shadowed))
	}
	output.Println(tbl.String())
	return nil
}

// shadowedString renders shadowed values in precedence order.
func shadowedString(shadowed map[config.ConfigSource]string) string {
	var parts []string
	for _, src := range []config.ConfigSource{config.SourceEnv, config.SourceConfig, config.SourceDefault} {
		if v, ok := shadowed[src]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", src, v))
		}
	}
	return strings.Join(parts, ", ")
}
