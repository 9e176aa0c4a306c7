package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the manifest file name inside a project directory.
	FileName = "fyg.toml"

	// DefaultVersion is the version given to freshly created projects.
	DefaultVersion = "1.0.0-SNAPSHOT"
)

// sourceSegments is the fixed language-source prefix of every source root.
var sourceSegments = []string{"src", "kotlin"}

// New returns a document with the required project fields set, the default
// version, and every optional section absent.
func New(name, group string) *Document {
	return &Document{
		Project: Project{
			Name:    name,
			Group:   group,
			Version: DefaultVersion,
		},
	}
}

// Parse decodes manifest text. Defaults are never filled in: a section that
// is absent from data is absent from the result.
func Parse(data []byte) (*Document, error) {
	return decode(data)
}

// Load reads and parses the manifest at path. An unreadable file yields an
// *IOError; malformed content yields a *FormatError carrying the path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.File = path
		}
		return nil, err
	}
	return doc, nil
}

// LoadDir loads the manifest inside a project directory.
func LoadDir(dir string) (*Document, error) {
	return Load(filepath.Join(dir, FileName))
}

// Marshal encodes the document as canonical TOML. Sections appear in
// declaration order: project, build, targets, dependencies, test,
// repositories.
func (d *Document) Marshal() ([]byte, error) {
	w, err := d.wire()
	if err != nil {
		return nil, err
	}
	data, err := toml.Marshal(w)
	if err != nil {
		return nil, &FormatError{Message: err.Error(), Err: err}
	}
	return data, nil
}

// Write serializes the document and atomically replaces the file at path.
// An existing file is left untouched if any step fails.
func (d *Document) Write(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data, 0o644)
}

// MarshalJSON renders the document with manifest key names.
func (d *Document) MarshalJSON() ([]byte, error) {
	w, err := d.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalYAML implements yaml.Marshaler with manifest key names.
func (d *Document) MarshalYAML() (any, error) {
	return d.wire()
}

// Exists reports whether dir already contains a manifest.
func Exists(dir string) (bool, error) {
	path := filepath.Join(dir, FileName)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, &IOError{Op: "stat", Path: path, Err: err}
	}
}

// EnsureNotInitialized fails with ErrAlreadyInitialized when dir already
// contains a manifest, so callers never overwrite one by accident.
func EnsureNotInitialized(dir string) error {
	exists, err := Exists(dir)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", filepath.Join(dir, FileName), ErrAlreadyInitialized)
	}
	return nil
}

// SourceRoot derives the source directory of the project rooted at
// projectDir: the language-source prefix followed by the group with every
// '.' treated as a path separator.
func (d *Document) SourceRoot(projectDir string) string {
	parts := append([]string{projectDir}, sourceSegments...)
	for _, seg := range strings.Split(d.Project.Group, ".") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return filepath.Join(parts...)
}

// EnabledTargets returns the manifest keys of every enabled target slot in
// declaration order. The native slot counts as enabled when it declares a
// binary.
func (d *Document) EnabledTargets() []string {
	if d.Targets == nil {
		return nil
	}
	var keys []string
	if d.Targets.JVM != nil && d.Targets.JVM.Enabled {
		keys = append(keys, "jvm")
	}
	for _, s := range d.Targets.Slots() {
		if s.Toggle != nil && s.Toggle.Enabled {
			keys = append(keys, s.Key)
		}
	}
	if d.Targets.Native != nil && d.Targets.Native.Binary != nil {
		keys = append(keys, "native")
	}
	return keys
}

func (d *Document) wire() (*wireDocument, error) {
	w := &wireDocument{
		Project: &wireProject{
			Name:        d.Project.Name,
			Group:       d.Project.Group,
			Version:     d.Project.Version,
			Authors:     slicePtr(d.Project.Authors),
			Description: d.Project.Description,
		},
	}

	if d.Build != nil {
		w.Build = &wireBuild{
			Multiplatform: d.Build.Multiplatform,
			Languages:     slicePtr(d.Build.Languages),
		}
	}

	if d.Targets != nil {
		t, err := wireTargetsFrom(d.Targets)
		if err != nil {
			return nil, err
		}
		w.Targets = t
	}

	if d.Dependencies != nil {
		w.Dependencies = &wireDependencies{
			Common: rawDependencies(d.Dependencies.Common),
			JVM:    rawDependencies(d.Dependencies.JVM),
			Test:   rawDependencies(d.Dependencies.Test),
		}
	}

	if d.Test != nil {
		w.Test = &wireTest{Framework: d.Test.Framework}
	}

	if d.Repositories != nil {
		w.Repositories = make(map[string]any, len(d.Repositories))
		for name, repo := range d.Repositories {
			w.Repositories[name] = repo.raw()
		}
	}

	return w, nil
}

func wireTargetsFrom(t *Targets) (*wireTargets, error) {
	w := &wireTargets{
		IOSArm64:          wireToggleFrom(t.IOSArm64),
		IOSX64:            wireToggleFrom(t.IOSX64),
		IOSSimulatorArm64: wireToggleFrom(t.IOSSimulatorArm64),
		LinuxX64:          wireToggleFrom(t.LinuxX64),
		MacOSArm64:        wireToggleFrom(t.MacOSArm64),
		WindowsX64:        wireToggleFrom(t.WindowsX64),
	}
	if t.JVM != nil {
		w.JVM = &wireJVM{Enabled: t.JVM.Enabled, Target: t.JVM.Target}
	}
	if t.Native != nil {
		w.Native = &wireNative{}
		if b := t.Native.Binary; b != nil {
			name, err := b.Type.MarshalText()
			if err != nil {
				return nil, &FormatError{Path: "targets.native.binary.type", Message: err.Error(), Err: err}
			}
			w.Native.Binary = &wireBinary{Type: string(name), BaseName: b.BaseName}
		}
	}
	return w, nil
}

func wireToggleFrom(t *TargetToggle) *wireToggle {
	if t == nil {
		return nil
	}
	return &wireToggle{Enabled: t.Enabled}
}

func rawDependencies(deps map[string]Dependency) map[string]any {
	if deps == nil {
		return nil
	}
	out := make(map[string]any, len(deps))
	for name, dep := range deps {
		out[name] = dep.raw()
	}
	return out
}

func slicePtr(s []string) *[]string {
	if s == nil {
		return nil
	}
	c := append([]string{}, s...)
	return &c
}

// WriteFileAtomic writes data to a temporary file in the target directory
// and renames it over path, so readers see either the old or the new file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmpName, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return &IOError{Op: "chmod", Path: tmpName, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
