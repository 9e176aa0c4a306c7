package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/fygbuild/fyg/internal/errors"
)

const minimalManifest = `
[project]
name = "my-app"
group = "com.example"
version = "1.0.0-SNAPSHOT"
`

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// fullDocument exercises every section and both shapes of each variant.
func fullDocument() *Document {
	doc := New("my-app", "com.example")
	doc.Project.Authors = []string{"Ada", "Grace"}
	doc.Project.Description = strPtr("A sample project")
	doc.Build = &Build{
		Multiplatform: boolPtr(true),
		Languages:     []string{"kotlin", "java"},
	}
	doc.Targets = &Targets{
		JVM:        &JVMTarget{Enabled: true, Target: strPtr("17")},
		IOSArm64:   &TargetToggle{Enabled: true},
		LinuxX64:   &TargetToggle{Enabled: false},
		WindowsX64: &TargetToggle{Enabled: true},
		Native: &NativeTarget{Binary: &NativeBinary{
			Type:     SharedLib,
			BaseName: strPtr("mylib"),
		}},
	}
	doc.Dependencies = &Dependencies{
		Common: map[string]Dependency{
			"kotlinx-coroutines": VersionDependency("1.8.0"),
			"core":               SpecDependency(DependencySpec{Path: strPtr("../core")}),
		},
		Test: map[string]Dependency{
			"shared": SpecDependency(DependencySpec{Workspace: boolPtr(true), Version: strPtr("2.0")}),
		},
	}
	doc.Test = &TestSettings{Framework: strPtr("kotest")}
	doc.Repositories = map[string]Repository{
		"central":  RepositoryFlag(true),
		"google":   RepositoryFlag(false),
		"internal": CustomRepositoryDeclaration(CustomRepository{Type: "maven", URL: "https://repo.example.com/maven"}),
	}
	return doc
}

func TestNew_Defaults(t *testing.T) {
	doc := New("my-app", "com.example")

	assert.Equal(t, "my-app", doc.Project.Name)
	assert.Equal(t, "com.example", doc.Project.Group)
	assert.Equal(t, DefaultVersion, doc.Project.Version)
	assert.Equal(t, "1.0.0-SNAPSHOT", doc.Project.Version)
	assert.Nil(t, doc.Project.Authors)
	assert.Nil(t, doc.Project.Description)
	assert.Nil(t, doc.Build)
	assert.Nil(t, doc.Targets)
	assert.Nil(t, doc.Dependencies)
	assert.Nil(t, doc.Test)
	assert.Nil(t, doc.Repositories)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{"fresh document", New("my-app", "com.example")},
		{"full document", fullDocument()},
		{"present but empty sections", &Document{
			Project:      Project{Name: "x", Group: "g", Version: "1", Authors: []string{}},
			Build:        &Build{},
			Targets:      &Targets{Native: &NativeTarget{}},
			Dependencies: &Dependencies{Common: map[string]Dependency{}},
			Test:         &TestSettings{},
			Repositories: map[string]Repository{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := tt.doc.Marshal()
			require.NoError(t, err)

			got, err := Parse(text)
			require.NoError(t, err, string(text))
			assert.Equal(t, tt.doc, got)
		})
	}
}

func TestMarshal_AbsentSectionsOmitted(t *testing.T) {
	text, err := New("my-app", "com.example").Marshal()
	require.NoError(t, err)

	s := string(text)
	assert.Contains(t, s, "[project]")
	for _, section := range []string{"[build]", "[targets", "[dependencies", "[test]", "[repositories"} {
		assert.NotContains(t, s, section)
	}
	assert.NotContains(t, s, "authors")
	assert.NotContains(t, s, "description")
}

func TestMarshal_DeclarationOrder(t *testing.T) {
	text, err := fullDocument().Marshal()
	require.NoError(t, err)

	s := string(text)
	order := []string{"[project]", "[build]", "[targets.jvm]", "[targets.ios-arm64]", "[targets.linux-x64]",
		"[targets.windows-x64]", "[targets.native.binary]", "[dependencies", "[test]", "[repositories"}
	last := -1
	for _, marker := range order {
		idx := indexOf(s, marker)
		require.GreaterOrEqual(t, idx, 0, "missing %s in\n%s", marker, s)
		assert.Greater(t, idx, last, "%s out of order in\n%s", marker, s)
		last = idx
	}
	assert.Contains(t, s, `type = 'sharedLib'`)
	assert.Contains(t, s, `base-name = 'mylib'`)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestMarshal_InvalidBinaryKind(t *testing.T) {
	doc := New("my-app", "com.example")
	doc.Targets = &Targets{Native: &NativeTarget{Binary: &NativeBinary{}}}

	_, err := doc.Marshal()
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.Contains(t, err.Error(), "targets.native.binary.type")
}

func TestParse_Minimal(t *testing.T) {
	doc, err := Parse([]byte(minimalManifest))
	require.NoError(t, err)
	assert.Equal(t, New("my-app", "com.example"), doc)
}

func TestParse_DoesNotInjectDefaults(t *testing.T) {
	doc, err := Parse([]byte(minimalManifest + `
[build]
[targets]
`))
	require.NoError(t, err)

	require.NotNil(t, doc.Build)
	assert.Nil(t, doc.Build.Multiplatform)
	assert.Nil(t, doc.Build.Languages)
	require.NotNil(t, doc.Targets)
	assert.Nil(t, doc.Targets.JVM)
	for _, s := range doc.Targets.Slots() {
		assert.Nil(t, s.Toggle, s.Key)
	}
	assert.Nil(t, doc.Dependencies)
}

func TestParse_Variants(t *testing.T) {
	doc, err := Parse([]byte(minimalManifest + `
[dependencies.common]
kotlinx = "1.2.3"
lib = { path = "../lib" }

[repositories]
central = true
internal = { type = "maven", url = "https://repo.example.com/maven" }
`))
	require.NoError(t, err)

	v, ok := doc.Dependencies.Common["kotlinx"].Shorthand()
	require.True(t, ok)
	assert.Equal(t, "1.2.3", v)

	spec, ok := doc.Dependencies.Common["lib"].Spec()
	require.True(t, ok)
	assert.Equal(t, "../lib", *spec.Path)
	assert.Nil(t, spec.Version)
	assert.Nil(t, spec.Workspace)

	assert.Nil(t, doc.Dependencies.JVM)
	assert.Nil(t, doc.Dependencies.Test)

	enabled, ok := doc.Repositories["central"].Flag()
	require.True(t, ok)
	assert.True(t, enabled)

	custom, ok := doc.Repositories["internal"].Custom()
	require.True(t, ok)
	assert.Equal(t, "maven", custom.Type)
	assert.Equal(t, "https://repo.example.com/maven", custom.URL)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantPath string
	}{
		{
			name:     "missing name",
			text:     "[project]\ngroup = \"com.example\"\nversion = \"1.0\"\n",
			wantPath: "project.name",
		},
		{
			name:     "missing group",
			text:     "[project]\nname = \"a\"\nversion = \"1.0\"\n",
			wantPath: "project.group",
		},
		{
			name:     "missing version",
			text:     "[project]\nname = \"a\"\ngroup = \"com.example\"\n",
			wantPath: "project.version",
		},
		{
			name:     "missing project section",
			text:     "[build]\nmultiplatform = true\n",
			wantPath: "project",
		},
		{
			name:     "empty name",
			text:     "[project]\nname = \"\"\ngroup = \"g\"\nversion = \"1\"\n",
			wantPath: "project.name",
		},
		{
			name:     "dependency as array",
			text:     minimalManifest + "[dependencies.jvm]\nbad = [\"1.0\"]\n",
			wantPath: "dependencies.jvm.bad",
		},
		{
			name:     "repository as string",
			text:     minimalManifest + "[repositories]\ncentral = \"yes\"\n",
			wantPath: "repositories.central",
		},
		{
			name:     "unknown binary type",
			text:     minimalManifest + "[targets.native.binary]\ntype = \"dll\"\n",
			wantPath: "targets.native.binary.type",
		},
		{
			name:     "missing binary type",
			text:     minimalManifest + "[targets.native.binary]\nbase-name = \"x\"\n",
			wantPath: "targets.native.binary.type",
		},
		{
			name:     "jvm without enabled",
			text:     minimalManifest + "[targets.jvm]\ntarget = \"17\"\n",
			wantPath: "targets.jvm.enabled",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrValidation)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantPath, fe.Path)
			assert.Contains(t, err.Error(), tt.wantPath)
		})
	}
}

func TestParse_SyntaxErrorHasPosition(t *testing.T) {
	_, err := Parse([]byte("[project]\nname = \n"))
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
	assert.Positive(t, fe.Column)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestParse_UnknownKeysRejected(t *testing.T) {
	tests := []struct {
		name string
		text string
		path string
	}{
		{"top level", minimalManifest + "[plugins]\nx = 1\n", "plugins"},
		{"project", "[project]\nname = \"a\"\ngroup = \"g\"\nversion = \"1\"\nlicense = \"MIT\"\n", "project.license"},
		{"build", minimalManifest + "[build]\nparallel = true\n", "build.parallel"},
		{"targets", minimalManifest + "[targets.wasm]\nenabled = true\n", "targets.wasm"},
		{"jvm slot", minimalManifest + "[targets.jvm]\nenabled = true\nvendor = \"x\"\n", "targets.jvm.vendor"},
		{"native slot", minimalManifest + "[targets.native]\nlinker = \"lld\"\n", "targets.native.linker"},
		{"test", minimalManifest + "[test]\nframework = \"junit\"\nparallel = true\n", "test.parallel"},
		{"dependency scope", minimalManifest + "[dependencies.runtime]\nx = \"1\"\n", "dependencies.runtime"},
		{"dependency object", minimalManifest + "[dependencies.common]\nx = { git = \"url\" }\n", "dependencies.common.x.git"},
		{"repository object", minimalManifest + "[repositories]\nr = { type = \"maven\", url = \"u\", extra = 1 }\n", "repositories.r.extra"},
		{"key case differs", "[Project]\nname = \"a\"\ngroup = \"g\"\nversion = \"1\"\n", "Project"},
	}
	for _, p := range Platforms {
		tests = append(tests, struct {
			name string
			text string
			path string
		}{
			name: p.Key,
			text: minimalManifest + "[targets." + p.Key + "]\nenabled = true\narch = \"x\"\n",
			path: "targets." + p.Key + ".arch",
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrValidation)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.path, fe.Path)
			assert.Equal(t, "unknown key", fe.Message)
		})
	}
}

func TestParse_UnknownKeysListed(t *testing.T) {
	_, err := Parse([]byte(minimalManifest + "[targets.jvm]\nenabled = true\nvendor = \"x\"\narch = \"y\"\n"))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "targets.jvm.arch", fe.Path)
	assert.Equal(t, "unknown keys: arch, vendor", fe.Message)
}

func TestParse_WrongTypeHasPath(t *testing.T) {
	tests := []struct {
		name string
		text string
		path string
		want string
	}{
		{
			name: "target toggle",
			text: minimalManifest + "[targets.linux-x64]\nenabled = \"yes\"\n",
			path: "targets.linux-x64.enabled",
			want: "expected type 'bool'",
		},
		{
			name: "project name",
			text: "[project]\nname = 1\ngroup = \"g\"\nversion = \"1\"\n",
			path: "project.name",
			want: "expected type 'string'",
		},
		{
			name: "dependency version",
			text: minimalManifest + "[dependencies.jvm]\nx = { version = 2 }\n",
			path: "dependencies.jvm.x.version",
			want: "expected type 'string'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.path, fe.Path)
			assert.Contains(t, fe.Message, tt.want)
			assert.NotContains(t, fe.Message, "''")
		})
	}
}

func TestFieldSegments(t *testing.T) {
	assert.Equal(t, []string{"targets", "jvm", "enabled"}, fieldSegments("targets.jvm.enabled"))
	assert.Equal(t, []string{"common", "kotlinx.coroutines", "version"}, fieldSegments("common[kotlinx.coroutines].version"))
	assert.Equal(t, []string{"project", "authors", "0"}, fieldSegments("project.authors[0]"))
	assert.Nil(t, fieldSegments(""))
}

func TestParse_PlatformSlotsIndependent(t *testing.T) {
	for _, p := range Platforms {
		t.Run(p.Key, func(t *testing.T) {
			doc, err := Parse([]byte(minimalManifest + "[targets." + p.Key + "]\nenabled = true\n"))
			require.NoError(t, err)

			for _, s := range doc.Targets.Slots() {
				if s.Key == p.Key {
					require.NotNil(t, s.Toggle)
					assert.True(t, s.Toggle.Enabled)
				} else {
					assert.Nil(t, s.Toggle, s.Key)
				}
			}
			assert.Equal(t, []string{p.Key}, doc.EnabledTargets())
		})
	}
}

func TestSetSlot(t *testing.T) {
	var targets Targets
	for _, p := range Platforms {
		assert.True(t, targets.SetSlot(p.Key, &TargetToggle{Enabled: true}))
	}
	for _, s := range targets.Slots() {
		require.NotNil(t, s.Toggle, s.Key)
	}
	assert.False(t, targets.SetSlot("jvm", &TargetToggle{}))
	assert.False(t, targets.SetSlot("IOS-ARM64", &TargetToggle{}))
}

func TestSourceRoot(t *testing.T) {
	doc := New("my-app", "com.example")
	got := doc.SourceRoot("proj")
	assert.Equal(t, filepath.Join("proj", "src", "kotlin", "com", "example"), got)
	assert.NotContains(t, filepath.Base(got), ".")

	doc.Project.Group = "single"
	assert.Equal(t, filepath.Join("proj", "src", "kotlin", "single"), doc.SourceRoot("proj"))
}

func TestEnabledTargets(t *testing.T) {
	assert.Nil(t, New("a", "b").EnabledTargets())
	assert.Equal(t, []string{"jvm", "ios-arm64", "windows-x64", "native"}, fullDocument().EnabledTargets())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, fullDocument().Write(path))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, fullDocument(), doc)

	doc, err = LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-app", doc.Project.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	_, err := Load(path)
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.NotErrorIs(t, err, oerrors.ErrValidation)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[project]\nname = \"a\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, path, fe.File)
	assert.False(t, errors.As(err, new(*IOError)))
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "project.group")
}

func TestLoad_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(minimalManifest), 0o000))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrPermission)
}

func TestWrite_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, New("my-app", "com.example").Write(path))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, New("my-app", "com.example"), doc)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWrite_FailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, New("keep", "com.example").Write(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	bad := New("my-app", "com.example")
	bad.Targets = &Targets{Native: &NativeTarget{Binary: &NativeBinary{}}}
	require.Error(t, bad.Write(path))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWrite_RenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o755))

	err := New("my-app", "com.example").Write(path)
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "rename", ioErr.Op)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be removed")
	assert.True(t, entries[0].IsDir())
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", FileName)

	err := New("a", "b").Write(path)
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestExistsAndEnsureNotInitialized(t *testing.T) {
	dir := t.TempDir()

	exists, err := Exists(dir)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, EnsureNotInitialized(dir))

	require.NoError(t, New("a", "b").Write(filepath.Join(dir, FileName)))

	exists, err = Exists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	err = EnsureNotInitialized(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.ErrorIs(t, err, oerrors.ErrExists)
}

func TestDocument_JSONAndYAML(t *testing.T) {
	doc := fullDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Contains(t, generic, "project")
	targets := generic["targets"].(map[string]any)
	assert.Contains(t, targets, "ios-arm64")
	assert.NotContains(t, targets, "macos-arm64")

	data, err = json.Marshal(New("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"project":{"name":"a","group":"b","version":"1.0.0-SNAPSHOT"}}`, string(data))

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "base-name: mylib")
	assert.Contains(t, string(out), "type: sharedLib")
}
