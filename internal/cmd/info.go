package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/cmdutil"
	"github.com/fygbuild/fyg/internal/config"
	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
)

// NewInfoCmd creates the info command.
func NewInfoCmd(cfg *config.GlobalConfig) *cobra.Command {
	var formatFlag string

	c := &cobra.Command{
		Use:   "info",
		Short: "Show project information",
		Long: `Load fyg.toml and show the project it describes.

Output formats:
  text  Styled summary with target, dependency and repository tables (default)
  toml  Canonical manifest text
  yaml  Manifest as YAML
  json  Manifest as JSON`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return oerrors.NewValidationError(err.Error(), "", "", "")
			}

			p, err := cmdutil.LoadProject(c.Context(), cfg.ProjectDir)
			if err != nil {
				return err
			}
			return runInfo(p, format)
		},
	}

	c.Flags().StringVarP(&formatFlag, "output", "o", "text",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))

	return c
}

func runInfo(p *cmdutil.Project, format output.Format) error {
	doc := p.Manifest

	switch format {
	case output.FormatTOML:
		data, err := doc.Marshal()
		if err != nil {
			return cmdutil.ManifestError(err)
		}
		output.Print(string(data))
		return nil
	case output.FormatYAML, output.FormatJSON:
		return output.WriteStructured(output.Writer(), format, doc)
	}

	styles := output.GetStyles()
	field := func(label, value string) {
		output.Println(fmt.Sprintf("  %s %s", styles.Muted.Render(label+":"), value))
	}

	output.Println(styles.Header.Render("Project Information"))
	output.Println("")
	field("Name", styles.Noun.Render(doc.Project.Name))
	field("Group", doc.Project.Group)
	field("Version", doc.Project.Version)
	if doc.Project.Description != nil {
		field("Description", *doc.Project.Description)
	}
	if doc.Project.Authors != nil {
		field("Authors", strings.Join(doc.Project.Authors, ", "))
	}
	if rel, err := filepath.Rel(p.Dir, doc.SourceRoot(p.Dir)); err == nil {
		field("Sources", filepath.ToSlash(rel))
	}

	if b := doc.Build; b != nil {
		output.Println("")
		output.Println(styles.Header.Render("Build"))
		if b.Multiplatform != nil {
			field("Multiplatform", yesNo(*b.Multiplatform))
		}
		if b.Languages != nil {
			field("Languages", strings.Join(b.Languages, ", "))
		}
	}

	if doc.Targets != nil {
		output.Println("")
		output.Println(styles.Header.Render("Targets"))
		output.Println(targetTable(doc.Targets).String())
	}

	if doc.Dependencies != nil {
		if tbl := dependencyTable(doc.Dependencies); tbl.Len() > 0 {
			output.Println("")
			output.Println(styles.Header.Render("Dependencies"))
			output.Println(tbl.String())
		}
	}

	if len(doc.Repositories) > 0 {
		tbl := output.NewTable("REPOSITORY", "DECLARATION")
		for _, name := range sortedKeys(doc.Repositories) {
			tbl.Row(name, doc.Repositories[name].String())
		}
		output.Println("")
		output.Println(styles.Header.Render("Repositories"))
		output.Println(tbl.String())
	}

	if doc.Test != nil && doc.Test.Framework != nil {
		output.Println("")
		output.Println(styles.Header.Render("Test"))
		field("Framework", *doc.Test.Framework)
	}

	return nil
}

func targetTable(t *manifest.Targets) *output.Table {
	tbl := output.NewTable("TARGET", "STATUS", "DETAIL").StatusColumn(1)

	if t.JVM != nil {
		detail := "target: default"
		if t.JVM.Target != nil {
			detail = "target: " + *t.JVM.Target
		}
		tbl.Row("JVM", status(t.JVM.Enabled), detail)
	}
	for _, slot := range t.Slots() {
		if slot.Toggle != nil {
			tbl.Row(slot.Label, status(slot.Toggle.Enabled), "")
		}
	}
	if t.Native != nil {
		detail := "no binary"
		if bin := t.Native.Binary; bin != nil {
			detail = bin.Type.String()
			if bin.BaseName != nil {
				detail += " (" + *bin.BaseName + ")"
			}
		}
		tbl.Row("Native", status(t.Native.Binary != nil), detail)
	}

	return tbl
}

func dependencyTable(d *manifest.Dependencies) *output.Table {
	tbl := output.NewTable("SCOPE", "NAME", "REQUIREMENT")
	scopes := []struct {
		name string
		deps map[string]manifest.Dependency
	}{
		{"common", d.Common},
		{"jvm", d.JVM},
		{"test", d.Test},
	}
	for _, scope := range scopes {
		for _, name := range sortedKeys(scope.deps) {
			tbl.Row(scope.name, name, scope.deps[name].String())
		}
	}
	return tbl
}

func status(enabled bool) string {
	if enabled {
		return output.StatusEnabled
	}
	return output.StatusDisabled
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
