package cmdutil

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
)

// loadTimeout bounds how long LoadProject waits on the filesystem.
const loadTimeout = 30 * time.Second

// Project is a loaded manifest together with where it came from.
type Project struct {
	// Dir is the absolute project directory.
	Dir string

	// Path is the manifest path.
	Path string

	Manifest *manifest.Document
}

// LoadProject resolves dir and loads its manifest, showing a spinner on a
// terminal. Errors are converted with ManifestError, logged, and returned as
// printed ExitErrors. Lint warnings are logged.
func LoadProject(ctx context.Context, dir string) (*Project, error) {
	projectDir, err := ResolveProjectDir(dir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(projectDir, manifest.FileName)

	output.Debug("loading manifest", "path", path)

	var doc *manifest.Document
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var loadErr error
		doc, loadErr = manifest.Load(path)
		return loadErr
	}, output.WithTitle("Loading "+manifest.FileName+"..."), output.WithTimeout(loadTimeout))
	if err != nil {
		return nil, PrintedError(ManifestError(err))
	}

	plog := output.ProjectLogger(doc.Project.Name)
	for _, w := range doc.Lint() {
		plog.Warn(w.Message, "key", w.Path)
	}

	return &Project{Dir: projectDir, Path: path, Manifest: doc}, nil
}
