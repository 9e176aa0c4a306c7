// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	"github.com/fygbuild/fyg/internal/output"
)

// annotationConfigOptional marks commands that still run when the config file
// cannot be loaded.
const annotationConfigOptional = "fyg/config-optional"

// NewRootCmd creates the root command for the fyg CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		dirFlag        string
		verboseFlag    bool
		timestampsFlag bool
	)

	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "fyg",
		Short: "A build tool for Kotlin based projects",
		Long: `fyg manages Kotlin projects described by a fyg.toml manifest.

It creates new projects, reads and validates their manifests, and drives
builds for the JVM and native targets the manifest enables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			opts := config.SettingsOptions{
				ConfigFlag:   configFlag,
				GroupFlag:    cmdutil.ChangedString(c, "group"),
				TemplateFlag: cmdutil.ChangedString(c, "template"),
			}
			if c.Flags().Changed("timestamps") {
				opts.TimestampsFlag = output.BoolPtr(timestampsFlag)
			}
			return initializeGlobals(cfg, opts, dirFlag, verboseFlag, c.Annotations[annotationConfigOptional] == "true")
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: FYG_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Project directory (default: working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output (env: FYG_LOG_TIMESTAMPS)")

	rootCmd.AddCommand(
		NewNewCmd(cfg),
		NewInitCmd(cfg),
		NewInfoCmd(cfg),
		NewBuildCmd(cfg),
		NewRunCmd(cfg),
		NewTestCmd(cfg),
		NewCleanCmd(cfg),
		NewConfigCmd(cfg),
		NewVersionCmd(),
	)

	return rootCmd
}

// initializeGlobals resolves configuration into cfg and sets up logging.
func initializeGlobals(cfg *config.GlobalConfig, opts config.SettingsOptions, dir string, verbose, configOptional bool) error {
	settings, err := config.ResolveSettings(opts)
	if settings == nil || (err != nil && !configOptional) {
		return err
	}

	cfg.Settings = settings
	cfg.ConfigPath = settings.ConfigPath.Value
	cfg.ProjectDir = dir
	cfg.Verbose = verbose

	output.SetupLogging(output.LogConfig{
		Verbose:    verbose,
		Timestamps: output.BoolPtr(settings.TimestampsEnabled()),
	})

	if err != nil {
		output.Warn("ignoring unreadable config file", "path", cfg.ConfigPath)
		output.Debug("config load error", "error", err)
	}

	if verbose {
		output.Debug("initializing CLI", "config", cfg.ConfigPath, "dir", dir)
		config.LogResolvedValues(settings.Values())
	}

	return nil
}
