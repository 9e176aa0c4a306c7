package manifest

// The wire types mirror the on-disk layout of fyg.toml. Optional values are
// pointers so that absence survives decoding and encoding, and the two
// shape-discriminated maps hold raw values until the variant resolver turns
// them into Dependency and Repository. Field order is the canonical
// serialization order.

type wireDocument struct {
	Project      *wireProject      `toml:"project" json:"project" yaml:"project"`
	Build        *wireBuild        `toml:"build" json:"build,omitempty" yaml:"build,omitempty"`
	Targets      *wireTargets      `toml:"targets" json:"targets,omitempty" yaml:"targets,omitempty"`
	Dependencies *wireDependencies `toml:"dependencies" json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Test         *wireTest         `toml:"test" json:"test,omitempty" yaml:"test,omitempty"`
	Repositories map[string]any    `toml:"repositories" json:"repositories,omitempty" yaml:"repositories,omitempty"`
}

type wireProject struct {
	Name        string    `toml:"name" json:"name" yaml:"name"`
	Group       string    `toml:"group" json:"group" yaml:"group"`
	Version     string    `toml:"version" json:"version" yaml:"version"`
	Authors     *[]string `toml:"authors" json:"authors,omitempty" yaml:"authors,omitempty"`
	Description *string   `toml:"description" json:"description,omitempty" yaml:"description,omitempty"`
}

type wireBuild struct {
	Multiplatform *bool     `toml:"multiplatform" json:"multiplatform,omitempty" yaml:"multiplatform,omitempty"`
	Languages     *[]string `toml:"languages" json:"languages,omitempty" yaml:"languages,omitempty"`
}

type wireTargets struct {
	JVM               *wireJVM    `toml:"jvm" json:"jvm,omitempty" yaml:"jvm,omitempty"`
	IOSArm64          *wireToggle `toml:"ios-arm64" json:"ios-arm64,omitempty" yaml:"ios-arm64,omitempty"`
	IOSX64            *wireToggle `toml:"ios-x64" json:"ios-x64,omitempty" yaml:"ios-x64,omitempty"`
	IOSSimulatorArm64 *wireToggle `toml:"ios-simulator-arm64" json:"ios-simulator-arm64,omitempty" yaml:"ios-simulator-arm64,omitempty"`
	LinuxX64          *wireToggle `toml:"linux-x64" json:"linux-x64,omitempty" yaml:"linux-x64,omitempty"`
	MacOSArm64        *wireToggle `toml:"macos-arm64" json:"macos-arm64,omitempty" yaml:"macos-arm64,omitempty"`
	WindowsX64        *wireToggle `toml:"windows-x64" json:"windows-x64,omitempty" yaml:"windows-x64,omitempty"`
	Native            *wireNative `toml:"native" json:"native,omitempty" yaml:"native,omitempty"`
}

type wireJVM struct {
	Enabled bool    `toml:"enabled" json:"enabled" yaml:"enabled"`
	Target  *string `toml:"target" json:"target,omitempty" yaml:"target,omitempty"`
}

type wireToggle struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
}

type wireNative struct {
	Binary *wireBinary `toml:"binary" json:"binary,omitempty" yaml:"binary,omitempty"`
}

type wireBinary struct {
	Type     string  `toml:"type" json:"type" yaml:"type"`
	BaseName *string `toml:"base-name" json:"base-name,omitempty" yaml:"base-name,omitempty"`
}

type wireDependencies struct {
	Common map[string]any `toml:"common" json:"common,omitempty" yaml:"common,omitempty"`
	JVM    map[string]any `toml:"jvm" json:"jvm,omitempty" yaml:"jvm,omitempty"`
	Test   map[string]any `toml:"test" json:"test,omitempty" yaml:"test,omitempty"`
}

type wireTest struct {
	Framework *string `toml:"framework" json:"framework,omitempty" yaml:"framework,omitempty"`
}

type wireDependencySpec struct {
	Path      *string `toml:"path" json:"path,omitempty" yaml:"path,omitempty"`
	Workspace *bool   `toml:"workspace" json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Version   *string `toml:"version" json:"version,omitempty" yaml:"version,omitempty"`
}

type wireCustomRepository struct {
	Type string `toml:"type" json:"type" yaml:"type"`
	URL  string `toml:"url" json:"url" yaml:"url"`
}

// requiredKeys lists every key whose absence is a format error, in the order
// they are reported. Paths are relative to the value being decoded.
var requiredKeys = []string{
	"project.name",
	"project.group",
	"project.version",
	"targets.jvm.enabled",
	"targets.ios-arm64.enabled",
	"targets.ios-x64.enabled",
	"targets.ios-simulator-arm64.enabled",
	"targets.linux-x64.enabled",
	"targets.macos-arm64.enabled",
	"targets.windows-x64.enabled",
	"targets.native.binary.type",
}

var requiredRepositoryKeys = []string{"type", "url"}
