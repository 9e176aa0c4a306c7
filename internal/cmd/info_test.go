package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/fygbuild/fyg/internal/errors"
	"github.com/fygbuild/fyg/internal/manifest"
)

const infoManifest = `[project]
name = "demo"
group = "com.example"
version = "0.3.0"
authors = ["Ada", "Linus"]
description = "A demo"

[build]
multiplatform = true
languages = ["kotlin", "java"]

[targets.jvm]
enabled = true
target = "17"

[targets.linux-x64]
enabled = false

[targets.native.binary]
type = "executable"
base-name = "demo"

[dependencies.common]
kotlinx-coroutines = "1.8.0"

[dependencies.jvm]
local-lib = { path = "../lib" }

[test]
framework = "kotest"

[repositories]
maven-central = true
internal = { type = "maven", url = "https://repo.example.com" }
`

func writeInfoProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(infoManifest), 0o644))
	return dir
}

func TestInfoCmd_Text(t *testing.T) {
	isolateConfig(t)
	dir := writeInfoProject(t)

	out, err := execute(t, "info", "-C", dir)
	require.NoError(t, err)

	for _, want := range []string{
		"Project Information",
		"demo",
		"0.3.0",
		"Ada, Linus",
		"A demo",
		"src/kotlin/com/example",
		"kotlin, java",
		"JVM",
		"target: 17",
		"Linux x64",
		"executable (demo)",
		"kotlinx-coroutines",
		"1.8.0",
		"path ../lib",
		"maven-central",
		"https://repo.example.com",
		"kotest",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "macOS ARM64", "absent slots are not listed")
}

func TestInfoCmd_Minimal(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	writeManifest(t, dir, manifest.New("tiny", "com.example"))

	out, err := execute(t, "info", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "tiny")
	assert.NotContains(t, out, "Targets")
	assert.NotContains(t, out, "Dependencies")
}

func TestInfoCmd_TOML(t *testing.T) {
	isolateConfig(t)
	dir := writeInfoProject(t)

	out, err := execute(t, "info", "-C", dir, "-o", "toml")
	require.NoError(t, err)

	doc, err := manifest.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "demo", doc.Project.Name)
	assert.Equal(t, []string{"jvm", "native"}, doc.EnabledTargets())
}

func TestInfoCmd_Structured(t *testing.T) {
	isolateConfig(t)
	dir := writeInfoProject(t)

	out, err := execute(t, "info", "-C", dir, "-o", "json")
	require.NoError(t, err)
	var asJSON map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &asJSON))
	assert.Contains(t, asJSON, "project")
	assert.Contains(t, asJSON, "repositories")

	out, err = execute(t, "info", "-C", dir, "-o", "yaml")
	require.NoError(t, err)
	var asYAML map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &asYAML))
	assert.Contains(t, asYAML, "targets")
}

func TestInfoCmd_Errors(t *testing.T) {
	isolateConfig(t)

	_, err := execute(t, "info", "-C", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "info", "-C", writeInfoProject(t), "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, manifest.FileName),
		[]byte("[project]\nname = \"x\"\ngroup = \"g\"\nversion = \"1\"\ncolour = \"red\"\n"), 0o644))
	_, err = execute(t, "info", "-C", bad)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}
