package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/output"
)

// notAvailable is logged after a placeholder command has reported its plan.
const notAvailable = "execution is not available yet; nothing was compiled or run"

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		releaseFlag bool
		targetFlag  string
	)

	c := &cobra.Command{
		Use:   "build",
		Short: "Build the project",
		Long: `Load fyg.toml and build the project.

--target restricts the build to one enabled target, named by its manifest
key (jvm, linux-x64, macos-arm64, native, ...).`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			p, err := cmdutil.LoadProject(c.Context(), cfg.ProjectDir)
			if err != nil {
				return err
			}
			return runBuild(p, releaseFlag, targetFlag)
		},
	}

	c.Flags().BoolVarP(&releaseFlag, "release", "r", false, "Build in release mode")
	c.Flags().StringVarP(&targetFlag, "target", "t", "", "Build only this target")

	return c
}

func runBuild(p *cmdutil.Project, release bool, target string) error {
	doc := p.Manifest
	enabled := doc.EnabledTargets()

	if target != "" && !slices.Contains(enabled, target) {
		valid := "none"
		if len(enabled) > 0 {
			valid = strings.Join(enabled, ", ")
		}
		return oerrors.NewValidationError(
			fmt.Sprintf("target %q is not enabled in %s", target, p.Path),
			p.Path, "targets."+target,
			"Enabled targets: "+valid+".")
	}

	mode := "debug"
	if release {
		mode = "release"
	}

	output.Println(fmt.Sprintf("Building %s (%s mode)...", output.StyleNoun.Render(doc.Project.Name), mode))
	if target != "" {
		output.Println("  Target: " + target)
	}

	plog := output.ProjectLogger(doc.Project.Name)
	plog.Debug("build plan", "mode", mode, "targets", enabled)
	plog.Warn(notAvailable)

	return nil
}

// NewRunCmd creates the run command.
func NewRunCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Run the project",
		Long: `Load fyg.toml and run the project's entry point.

Arguments after -- are passed to the program.`,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := cmdutil.LoadProject(c.Context(), cfg.ProjectDir)
			if err != nil {
				return err
			}

			name := p.Manifest.Project.Name
			output.Println(fmt.Sprintf("Running %s...", output.StyleNoun.Render(name)))
			if len(args) > 0 {
				output.Println(fmt.Sprintf("  Args: %q", args))
			}
			output.ProjectLogger(name).Warn(notAvailable)
			return nil
		},
	}
}

// NewTestCmd creates the test command.
func NewTestCmd(cfg *config.GlobalConfig) *cobra.Command {
	var filterFlag string

	c := &cobra.Command{
		Use:   "test",
		Short: "Run the project's tests",
		Long: `Load fyg.toml and run the project's tests with the framework named
in the [test] section.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			p, err := cmdutil.LoadProject(c.Context(), cfg.ProjectDir)
			if err != nil {
				return err
			}

			doc := p.Manifest
			output.Println(fmt.Sprintf("Running tests for %s...", output.StyleNoun.Render(doc.Project.Name)))
			if doc.Test != nil && doc.Test.Framework != nil {
				output.Println("  Framework: " + *doc.Test.Framework)
			}
			if filterFlag != "" {
				output.Println("  Filter: " + filterFlag)
			}
			output.ProjectLogger(doc.Project.Name).Warn(notAvailable)
			return nil
		},
	}

	c.Flags().StringVarP(&filterFlag, "filter", "f", "", "Only run tests matching this pattern")

	return c
}
