package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// Dependency is a dependency value. In the manifest it is written either as
// a bare version string or as a table with path, workspace and version keys;
// the two forms are told apart by shape, not by a tag.
type Dependency struct {
	version string
	spec    *DependencySpec
}

// DependencySpec is the structured form of a dependency.
type DependencySpec struct {
	// Path points at a local filesystem dependency.
	Path *string

	// Workspace marks an in-workspace reference.
	Workspace *bool

	Version *string
}

// VersionDependency returns the shorthand form.
func VersionDependency(version string) Dependency {
	return Dependency{version: version}
}

// SpecDependency returns the structured form.
func SpecDependency(spec DependencySpec) Dependency {
	return Dependency{spec: &spec}
}

// IsShorthand reports whether d was written as a bare version string.
func (d Dependency) IsShorthand() bool {
	return d.spec == nil
}

// Shorthand returns the version string of the shorthand form.
func (d Dependency) Shorthand() (string, bool) {
	if d.spec != nil {
		return "", false
	}
	return d.version, true
}

// Spec returns the structured form.
func (d Dependency) Spec() (DependencySpec, bool) {
	if d.spec == nil {
		return DependencySpec{}, false
	}
	return *d.spec, true
}

// Version returns the requested version regardless of form, or "" when the
// structured form carries none.
func (d Dependency) Version() string {
	if d.spec == nil {
		return d.version
	}
	if d.spec.Version != nil {
		return *d.spec.Version
	}
	return ""
}

// String renders d for display.
func (d Dependency) String() string {
	if d.spec == nil {
		return d.version
	}
	var parts []string
	if d.spec.Version != nil {
		parts = append(parts, "version "+*d.spec.Version)
	}
	if d.spec.Path != nil {
		parts = append(parts, "path "+*d.spec.Path)
	}
	if d.spec.Workspace != nil && *d.spec.Workspace {
		parts = append(parts, "workspace")
	}
	if len(parts) == 0 {
		return "{}"
	}
	return strings.Join(parts, ", ")
}

// Repository is a repository declaration: either a flag enabling or
// disabling a well-known repository, or a custom repository.
type Repository struct {
	enabled bool
	custom  *CustomRepository
}

// CustomRepository is the structured form of a repository declaration.
type CustomRepository struct {
	Type string
	URL  string
}

// RepositoryFlag returns the boolean form.
func RepositoryFlag(enabled bool) Repository {
	return Repository{enabled: enabled}
}

// CustomRepositoryDeclaration returns the structured form.
func CustomRepositoryDeclaration(repo CustomRepository) Repository {
	return Repository{custom: &repo}
}

// Flag returns the value of the boolean form.
func (r Repository) Flag() (bool, bool) {
	if r.custom != nil {
		return false, false
	}
	return r.enabled, true
}

// Custom returns the structured form.
func (r Repository) Custom() (CustomRepository, bool) {
	if r.custom == nil {
		return CustomRepository{}, false
	}
	return *r.custom, true
}

// String renders r for display.
func (r Repository) String() string {
	if r.custom != nil {
		return fmt.Sprintf("%s %s", r.custom.Type, r.custom.URL)
	}
	if r.enabled {
		return "enabled"
	}
	return "disabled"
}

// ResolveDependency converts a raw decoded value into a Dependency by
// inspecting its shape. path is the dotted key path used in errors.
func ResolveDependency(path string, raw any) (Dependency, error) {
	switch v := raw.(type) {
	case string:
		return VersionDependency(v), nil
	case map[string]any:
		var w wireDependencySpec
		if err := decodeStrict(path, v, &w, nil); err != nil {
			return Dependency{}, err
		}
		return SpecDependency(DependencySpec{
			Path:      w.Path,
			Workspace: w.Workspace,
			Version:   w.Version,
		}), nil
	default:
		return Dependency{}, formatErrorf(path,
			"dependency must be a version string or a table with path, workspace or version, got %s", kindOf(raw))
	}
}

// ResolveRepository converts a raw decoded value into a Repository by
// inspecting its shape. path is the dotted key path used in errors.
func ResolveRepository(path string, raw any) (Repository, error) {
	switch v := raw.(type) {
	case bool:
		return RepositoryFlag(v), nil
	case map[string]any:
		var w wireCustomRepository
		if err := decodeStrict(path, v, &w, requiredRepositoryKeys); err != nil {
			return Repository{}, err
		}
		return CustomRepositoryDeclaration(CustomRepository{Type: w.Type, URL: w.URL}), nil
	default:
		return Repository{}, formatErrorf(path,
			"repository must be a boolean or a table with type and url, got %s", kindOf(raw))
	}
}

func resolveDependencyScope(path string, raw map[string]any) (map[string]Dependency, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]Dependency, len(raw))
	for _, name := range sortedKeys(raw) {
		dep, err := ResolveDependency(joinPath(path, name), raw[name])
		if err != nil {
			return nil, err
		}
		out[name] = dep
	}
	return out, nil
}

func resolveRepositories(raw map[string]any) (map[string]Repository, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]Repository, len(raw))
	for _, name := range sortedKeys(raw) {
		repo, err := ResolveRepository(joinPath("repositories", name), raw[name])
		if err != nil {
			return nil, err
		}
		out[name] = repo
	}
	return out, nil
}

func (d Dependency) raw() any {
	if d.spec == nil {
		return d.version
	}
	return &wireDependencySpec{
		Path:      d.spec.Path,
		Workspace: d.spec.Workspace,
		Version:   d.spec.Version,
	}
}

func (r Repository) raw() any {
	if r.custom == nil {
		return r.enabled
	}
	return &wireCustomRepository{Type: r.custom.Type, URL: r.custom.URL}
}

// kindOf names the shape of a decoded TOML value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int64, int, float64:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "a table"
	default:
		return fmt.Sprintf("a %T", v)
	}
}

// sortedKeys keeps error reporting deterministic across map iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
