// Package cmdutil provides shared command utilities: flag groups, project
// directory resolution, manifest loading, and error presentation.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/scaffold"
)

// ScaffoldFlags holds flags common to commands that lay out a project
// (new, init).
type ScaffoldFlags struct {
	Group    string
	Template string
}

// AddTo registers the scaffold flags on the given cobra command.
func (f *ScaffoldFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Group, "group", "g", "",
		"Project group, e.g. com.example (env: FYG_GROUP)")
	cmd.Flags().StringVarP(&f.Template, "template", "t", "",
		fmt.Sprintf("Starter template: %s (env: FYG_TEMPLATE)", strings.Join(scaffold.TemplateNames(), ", ")))
}

// TemplateHelp lists the starter templates for command help text.
func TemplateHelp() string {
	var b strings.Builder
	b.WriteString("Templates:\n")
	for _, t := range scaffold.Templates() {
		desc := t.Description
		if t.Default {
			desc += " (default)"
		}
		fmt.Fprintf(&b, "  %-9s%s\n", t.Name, desc)
	}
	return b.String()
}

// ChangedString returns the value of the named flag when the user set it.
func ChangedString(cmd *cobra.Command, name string) *string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v := f.Value.String()
	return &v
}

// ResolveProjectDir returns the absolute project directory: dir when set,
// otherwise the working directory.
func ResolveProjectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}
