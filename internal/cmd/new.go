package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
	"github.com/fygbuild/fyg/internal/scaffold"
)

// NewNewCmd creates the new command.
func NewNewCmd(cfg *config.GlobalConfig) *cobra.Command {
	var (
		sf       cmdutil.ScaffoldFlags
		pathFlag string
	)

	c := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new project",
		Long: `Create a new project directory containing a fyg.toml manifest and the
source layout derived from the project group.

` + cmdutil.TemplateHelp() + `
Examples:
  # Create ./hello with group com.example
  fyg new hello

  # Create ../projects/hello with a custom group and the app template
  fyg new hello --group org.acme --path ../projects --template app`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(cfg, args[0], pathFlag)
		},
	}

	sf.AddTo(c)
	c.Flags().StringVarP(&pathFlag, "path", "p", "",
		"Directory to create the project in (default: --dir or the working directory)")

	return c
}

func runNew(cfg *config.GlobalConfig, name, path string) error {
	base := path
	if base == "" {
		base = cfg.ProjectDir
	}
	baseDir, err := cmdutil.ResolveProjectDir(base)
	if err != nil {
		return err
	}

	doc, err := newDocument(name, cfg.Group())
	if err != nil {
		return err
	}

	res, err := scaffold.New(scaffold.Options{Template: cfg.Template()}).Create(baseDir, doc)
	if err != nil {
		return cmdutil.ManifestError(err)
	}

	output.Println(fmt.Sprintf("Created project %s in %s\n",
		output.StyleNoun.Render(name), res.ProjectDir))
	output.Print(output.RenderFileTree(name, resultTree(res)))
	output.Println("")
	output.Println("To get started:")
	output.Println("  cd " + name)
	output.Println("  fyg build")

	return nil
}

// resultTree maps a scaffold result to file tree entries.
func resultTree(res *scaffold.Result) map[string]string {
	files := map[string]string{
		manifest.FileName: output.StatusCreated,
	}
	if rel, err := filepath.Rel(res.ProjectDir, res.SourceRoot); err == nil {
		files[filepath.ToSlash(rel)+"/"] = "source root"
	}
	for _, f := range res.Created {
		files[f] = output.StatusCreated
	}
	for _, f := range res.Skipped {
		files[f] = output.StatusKept
	}
	return files
}
