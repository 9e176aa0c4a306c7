package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
	"github.com/fygbuild/fyg/internal/scaffold"
)

// NewInitCmd creates the init command.
func NewInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		sf       cmdutil.ScaffoldFlags
		nameFlag string
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize a project in an existing directory",
		Long: `Initialize a project in the current directory (or --dir).

Writes fyg.toml and creates the source layout. Fails if the directory
already contains a fyg.toml.

` + cmdutil.TemplateHelp() + `
Examples:
  # Use the directory name as the project name
  fyg init

  # Choose the name and group
  fyg init --name hello --group org.acme`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(cfg, nameFlag)
		},
	}

	sf.AddTo(c)
	c.Flags().StringVarP(&nameFlag, "name", "n", "",
		"Project name (default: derived from the directory name)")

	return c
}

func runInit(cfg *config.GlobalConfig, name string) error {
	projectDir, err := cmdutil.ResolveProjectDir(cfg.ProjectDir)
	if err != nil {
		return err
	}

	if err := manifest.EnsureNotInitialized(projectDir); err != nil {
		return cmdutil.ManifestError(err)
	}

	if name == "" {
		name = scaffold.SanitizeName(filepath.Base(projectDir))
		output.Debug("derived project name", "dir", projectDir, "name", name)
	}

	doc, err := newDocument(name, cfg.Group())
	if err != nil {
		return err
	}

	res, err := scaffold.New(scaffold.Options{Template: cfg.Template()}).Initialize(projectDir, doc)
	if err != nil {
		return cmdutil.ManifestError(err)
	}

	output.Println(fmt.Sprintf("Initialized project %s in %s\n",
		output.StyleNoun.Render(name), res.ProjectDir))
	output.Print(output.RenderFileTree(filepath.Base(projectDir), resultTree(res)))

	return nil
}

// newDocument validates name and group and returns a fresh manifest.
func newDocument(name, group string) (*manifest.Document, error) {
	if err := scaffold.ValidateProjectName(name); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "", "project.name",
			"Project names start with a letter and contain letters, digits, '-' or '_'.")
	}
	if err := scaffold.ValidateGroup(group); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "", "project.group",
			"Pass --group with a dotted identifier such as com.example.")
	}
	return manifest.New(name, group), nil
}
