// Package manifest provides the fyg.toml project manifest model: schema types,
// shape-based variant resolution, parsing, serialization, and file I/O.
package manifest

// Document is the in-memory representation of a project's fyg.toml.
//
// Project is always present. Every other section is optional: a nil pointer
// or nil map means the section is absent from the source text, which is
// distinct from a section that is present but empty.
type Document struct {
	Project      Project
	Build        *Build
	Targets      *Targets
	Dependencies *Dependencies
	Test         *TestSettings
	Repositories map[string]Repository
}

// Project holds the [project] metadata.
type Project struct {
	// Name is the project identifier. Required, non-empty.
	Name string

	// Group is a reverse-domain namespace such as "com.example". Source
	// directories are derived from it by treating '.' as a path separator.
	Group string

	// Version is free-form. New defaults it to DefaultVersion.
	Version string

	// Authors is nil when the key is absent.
	Authors []string

	Description *string
}

// Build holds the [build] section.
type Build struct {
	Multiplatform *bool

	// Languages keeps declaration order; it reflects inclusion priority.
	Languages []string
}

// Targets holds the [targets] section: a fixed set of independently
// optional platform slots.
type Targets struct {
	JVM               *JVMTarget
	IOSArm64          *TargetToggle
	IOSX64            *TargetToggle
	IOSSimulatorArm64 *TargetToggle
	LinuxX64          *TargetToggle
	MacOSArm64        *TargetToggle
	WindowsX64        *TargetToggle
	Native            *NativeTarget
}

// JVMTarget configures the JVM slot.
type JVMTarget struct {
	Enabled bool

	// Target is the JVM bytecode target, e.g. "17".
	Target *string
}

// TargetToggle is the shape of every simple platform slot.
type TargetToggle struct {
	Enabled bool
}

// NativeTarget configures native binary output.
type NativeTarget struct {
	Binary *NativeBinary
}

// NativeBinary describes the kind and base name of a native artifact.
type NativeBinary struct {
	Type     BinaryKind
	BaseName *string
}

// Dependencies holds the three dependency scopes. A nil map means the scope
// is absent.
type Dependencies struct {
	Common map[string]Dependency
	JVM    map[string]Dependency
	Test   map[string]Dependency
}

// TestSettings holds the [test] section.
type TestSettings struct {
	Framework *string
}

// Platform names one simple target slot by its manifest key and display label.
type Platform struct {
	Key   string
	Label string
}

// Platforms lists the simple target slots in declaration order.
var Platforms = []Platform{
	{Key: "ios-arm64", Label: "iOS ARM64"},
	{Key: "ios-x64", Label: "iOS x64"},
	{Key: "ios-simulator-arm64", Label: "iOS Simulator ARM64"},
	{Key: "linux-x64", Label: "Linux x64"},
	{Key: "macos-arm64", Label: "macOS ARM64"},
	{Key: "windows-x64", Label: "Windows x64"},
}

// Slot pairs a simple platform with its configured toggle (nil when absent).
type Slot struct {
	Platform
	Toggle *TargetToggle
}

// Slots returns the six simple platform slots in declaration order.
func (t *Targets) Slots() []Slot {
	toggles := []*TargetToggle{
		t.IOSArm64,
		t.IOSX64,
		t.IOSSimulatorArm64,
		t.LinuxX64,
		t.MacOSArm64,
		t.WindowsX64,
	}
	slots := make([]Slot, len(Platforms))
	for i, p := range Platforms {
		slots[i] = Slot{Platform: p, Toggle: toggles[i]}
	}
	return slots
}

// SetSlot assigns the toggle for the platform with the given manifest key.
// It reports false for an unknown key.
func (t *Targets) SetSlot(key string, toggle *TargetToggle) bool {
	switch key {
	case "ios-arm64":
		t.IOSArm64 = toggle
	case "ios-x64":
		t.IOSX64 = toggle
	case "ios-simulator-arm64":
		t.IOSSimulatorArm64 = toggle
	case "linux-x64":
		t.LinuxX64 = toggle
	case "macos-arm64":
		t.MacOSArm64 = toggle
	case "windows-x64":
		t.WindowsX64 = toggle
	default:
		return false
	}
	return true
}
