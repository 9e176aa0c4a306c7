package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fygbuild/fyg/internal/output"
	"github.com/fygbuild/fyg/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show fyg version information.

Displays:
  - fyg version, commit, and build date
  - Go version and platform`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			output.Println(version.Get().String())
			return nil
		},
	}
}
