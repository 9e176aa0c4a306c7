// Package scaffold creates the on-disk layout of a new project from a
// manifest document.
package scaffold

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
	"github.com/fygbuild/fyg/internal/output"
)

// Options configures a Scaffolder.
type Options struct {
	// Template is the starter layout to render. Empty selects the default.
	Template string
}

// Result describes what a scaffold run produced.
type Result struct {
	// ProjectDir is the project directory.
	ProjectDir string

	// SourceRoot is the derived source directory.
	SourceRoot string

	// Manifest is the path of the written manifest.
	Manifest string

	// Template is the template that was used.
	Template string

	// Created lists template files written, relative to ProjectDir.
	Created []string

	// Skipped lists template files left alone because they already existed.
	Skipped []string
}

// Scaffolder lays out projects.
type Scaffolder struct {
	opts Options
}

// New creates a scaffolder with the given options.
func New(opts Options) *Scaffolder {
	if opts.Template == "" {
		opts.Template = DefaultTemplateName
	}
	return &Scaffolder{opts: opts}
}

// Create makes baseDir/<project name> if absent and initializes it. The name
// must be a single path element.
func (s *Scaffolder) Create(baseDir string, doc *manifest.Document) (*Result, error) {
	name := doc.Project.Name
	projectDir := filepath.Join(baseDir, name)
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return nil, &manifest.IOError{Op: "mkdir", Path: projectDir, Err: fs.ErrInvalid}
	}

	if err := mkdirAll(projectDir); err != nil {
		return nil, err
	}
	return s.Initialize(projectDir, doc)
}

// Initialize lays out projectDir: the source root first, then any template
// files, and the manifest last so that a failure never leaves a manifest
// without its directories. Existing directories and template files are kept;
// the manifest is always rewritten.
func (s *Scaffolder) Initialize(projectDir string, doc *manifest.Document) (*Result, error) {
	tmpl, err := GetTemplate(s.opts.Template)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrValidation, err.Error())
	}

	res := &Result{
		ProjectDir: projectDir,
		SourceRoot: doc.SourceRoot(projectDir),
		Manifest:   filepath.Join(projectDir, manifest.FileName),
		Template:   tmpl.Name,
	}

	output.Debug("scaffolding project",
		"name", doc.Project.Name,
		"group", doc.Project.Group,
		"template", tmpl.Name,
		"dir", projectDir)

	if err := mkdirAll(res.SourceRoot); err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(projectDir, res.SourceRoot)
	if err != nil {
		return nil, &manifest.IOError{Op: "resolve", Path: res.SourceRoot, Err: err}
	}

	data := TemplateData{
		Name:    doc.Project.Name,
		Group:   doc.Project.Group,
		Version: doc.Project.Version,
	}
	if doc.Project.Description != nil {
		data.Description = *doc.Project.Description
	}

	files, err := renderTemplate(tmpl.Name, filepath.ToSlash(rel), data)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		target := filepath.Join(projectDir, filepath.FromSlash(f.TargetPath))
		written, err := writeIfAbsent(target, f.Content)
		if err != nil {
			return nil, err
		}
		if written {
			output.Debug("created file", "path", f.TargetPath)
			res.Created = append(res.Created, f.TargetPath)
		} else {
			output.Debug("kept existing file", "path", f.TargetPath)
			res.Skipped = append(res.Skipped, f.TargetPath)
		}
	}

	if err := doc.Write(res.Manifest); err != nil {
		return nil, err
	}
	output.Debug("wrote manifest", "path", res.Manifest)

	return res, nil
}

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &manifest.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// writeIfAbsent creates path with content unless it already exists.
func writeIfAbsent(path string, content []byte) (bool, error) {
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, &manifest.IOError{Op: "create", Path: path, Err: err}
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return false, &manifest.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return false, &manifest.IOError{Op: "close", Path: path, Err: err}
	}
	return true, nil
}
