package manifest

import (
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
)

// decode turns manifest text into a Document: TOML syntax first, then a
// strict structural decode of the generic tree, then variant resolution.
func decode(data []byte) (*Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, syntaxError(err)
	}

	var w wireDocument
	if err := decodeStrict("", raw, &w, requiredKeys); err != nil {
		return nil, err
	}
	if w.Project == nil {
		return nil, formatErrorf("project", "missing required section [project]")
	}
	return w.document()
}

// decodeStrict decodes raw into result. Unknown keys are rejected, key
// matching is case-sensitive, and any key listed in required that was not
// present is reported as missing. path prefixes every reported key.
func decodeStrict(path string, raw map[string]any, result any, required []string) error {
	md := &mapstructure.Metadata{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "toml",
		ErrorUnused: true,
		Metadata:    md,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		Result: result,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(raw); err != nil {
		key, msg := decodeFailure(err)
		for _, seg := range key {
			path = joinPath(path, seg)
		}
		return &FormatError{Path: path, Message: msg, Err: err}
	}

	unset := make(map[string]bool, len(md.Unset))
	for _, k := range md.Unset {
		unset[k] = true
	}
	for _, k := range required {
		if unset[k] {
			return formatErrorf(joinPath(path, k), "missing required field")
		}
	}
	return nil
}

// decodeFailure locates the first field-level failure in a mapstructure
// error. It returns the offending key as path segments, relative to the
// decoded value, and a message without mapstructure's quoted prefix.
func decodeFailure(err error) ([]string, string) {
	var de *mapstructure.DecodeError
	if !errors.As(err, &de) {
		return nil, err.Error()
	}

	key := fieldSegments(de.Name())
	msg := de.Unwrap().Error()
	if list, ok := strings.CutPrefix(msg, "has invalid keys: "); ok {
		unknown := strings.Split(list, ", ")
		key = append(key, unknown[0])
		msg = "unknown key"
		if len(unknown) > 1 {
			msg = "unknown keys: " + list
		}
	}
	return key, msg
}

// fieldSegments splits a mapstructure field name such as
// "targets.jvm.enabled" or "common[kotlinx.coroutines]" into key segments.
func fieldSegments(name string) []string {
	var segs []string
	for name != "" {
		if name[0] == '[' {
			end := strings.IndexByte(name, ']')
			if end < 0 {
				return append(segs, name[1:])
			}
			segs = append(segs, name[1:end])
			name = strings.TrimPrefix(name[end+1:], ".")
			continue
		}
		i := strings.IndexAny(name, ".[")
		if i < 0 {
			return append(segs, name)
		}
		segs = append(segs, name[:i])
		name = strings.TrimPrefix(name[i:], ".")
	}
	return segs
}

func syntaxError(err error) error {
	fe := &FormatError{Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		fe.Line, fe.Column = derr.Position()
		fe.Path = strings.Join(derr.Key(), ".")
	}
	return fe
}

func joinPath(prefix, key string) string {
	if strings.ContainsAny(key, ". ") {
		key = `"` + key + `"`
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (w *wireDocument) document() (*Document, error) {
	doc := &Document{Project: w.Project.project()}
	if doc.Project.Name == "" {
		return nil, formatErrorf("project.name", "must not be empty")
	}

	if w.Build != nil {
		doc.Build = &Build{
			Multiplatform: w.Build.Multiplatform,
			Languages:     cloneSlice(w.Build.Languages),
		}
	}

	if w.Targets != nil {
		targets, err := w.Targets.targets()
		if err != nil {
			return nil, err
		}
		doc.Targets = targets
	}

	if w.Dependencies != nil {
		deps, err := w.Dependencies.dependencies()
		if err != nil {
			return nil, err
		}
		doc.Dependencies = deps
	}

	if w.Test != nil {
		doc.Test = &TestSettings{Framework: w.Test.Framework}
	}

	repos, err := resolveRepositories(w.Repositories)
	if err != nil {
		return nil, err
	}
	doc.Repositories = repos

	return doc, nil
}

func (w *wireProject) project() Project {
	return Project{
		Name:        w.Name,
		Group:       w.Group,
		Version:     w.Version,
		Authors:     cloneSlice(w.Authors),
		Description: w.Description,
	}
}

func (w *wireTargets) targets() (*Targets, error) {
	t := &Targets{
		IOSArm64:          w.IOSArm64.toggle(),
		IOSX64:            w.IOSX64.toggle(),
		IOSSimulatorArm64: w.IOSSimulatorArm64.toggle(),
		LinuxX64:          w.LinuxX64.toggle(),
		MacOSArm64:        w.MacOSArm64.toggle(),
		WindowsX64:        w.WindowsX64.toggle(),
	}
	if w.JVM != nil {
		t.JVM = &JVMTarget{Enabled: w.JVM.Enabled, Target: w.JVM.Target}
	}
	if w.Native != nil {
		t.Native = &NativeTarget{}
		if b := w.Native.Binary; b != nil {
			kind, err := ParseBinaryKind(b.Type)
			if err != nil {
				return nil, &FormatError{Path: "targets.native.binary.type", Message: err.Error(), Err: err}
			}
			t.Native.Binary = &NativeBinary{Type: kind, BaseName: b.BaseName}
		}
	}
	return t, nil
}

func (w *wireToggle) toggle() *TargetToggle {
	if w == nil {
		return nil
	}
	return &TargetToggle{Enabled: w.Enabled}
}

func (w *wireDependencies) dependencies() (*Dependencies, error) {
	var (
		deps Dependencies
		err  error
	)
	if deps.Common, err = resolveDependencyScope("dependencies.common", w.Common); err != nil {
		return nil, err
	}
	if deps.JVM, err = resolveDependencyScope("dependencies.jvm", w.JVM); err != nil {
		return nil, err
	}
	if deps.Test, err = resolveDependencyScope("dependencies.test", w.Test); err != nil {
		return nil, err
	}
	return &deps, nil
}

// cloneSlice keeps the nil/empty distinction: nil means the key was absent.
func cloneSlice(s *[]string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, (*s)...)
}
