package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
)

// buildDirName is the build output directory inside a project.
const buildDirName = "build"

// NewCleanCmd creates the clean command.
func NewCleanCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the build directory",
		Long:  `Remove the project's build directory if it exists.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runClean(c.Context(), cfg)
		},
	}
}

func runClean(ctx context.Context, cfg *config.GlobalConfig) error {
	projectDir, err := cmdutil.ResolveProjectDir(cfg.ProjectDir)
	if err != nil {
		return err
	}
	buildDir := filepath.Join(projectDir, buildDirName)

	if _, err := os.Stat(buildDir); errors.Is(err, fs.ErrNotExist) {
		output.Println(output.StyleDim.Render("Nothing to clean - build directory does not exist"))
		return nil
	} else if err != nil {
		return cmdutil.ManifestError(&manifest.IOError{Op: "stat", Path: buildDir, Err: err})
	}

	err = output.RunWithSpinner(ctx, func(context.Context) error {
		if err := os.RemoveAll(buildDir); err != nil {
			return &manifest.IOError{Op: "remove", Path: buildDir, Err: err}
		}
		return nil
	}, output.WithTitle("Cleaning build directory..."))
	if err != nil {
		output.Println(output.FormatPathLine(buildDirName+"/", output.StatusFailed))
		return cmdutil.PrintedError(cmdutil.ManifestError(err))
	}

	output.Debug("removed build directory", "path", buildDir)
	output.Println(output.FormatCheckmark("Removed build directory"))
	output.Println(output.StyleSummary.Render("Done!") + " Clean complete")
	return nil
}
