package manifest

import (
	"fmt"
	"regexp"

	"github.com/blang/semver/v4"
)

// Warning is a non-fatal finding about a well-formed manifest.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Message
}

var groupSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Lint reports questionable but valid settings. Findings are ordered by
// section.
func (d *Document) Lint() []Warning {
	var out []Warning
	add := func(path, format string, args ...any) {
		out = append(out, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := semver.ParseTolerant(d.Project.Version); err != nil {
		add("project.version", "%q is not a semantic version: %v", d.Project.Version, err)
	}
	if !validGroup(d.Project.Group) {
		add("project.group", "%q is not a dotted identifier", d.Project.Group)
	}

	if d.Targets != nil {
		if len(d.EnabledTargets()) == 0 {
			add("targets", "no target is enabled")
		}
		if d.Targets.Native != nil && d.Targets.Native.Binary == nil {
			add("targets.native", "native target declares no binary")
		}
	}

	if d.Dependencies != nil {
		scopes := []struct {
			path string
			deps map[string]Dependency
		}{
			{"dependencies.common", d.Dependencies.Common},
			{"dependencies.jvm", d.Dependencies.JVM},
			{"dependencies.test", d.Dependencies.Test},
		}
		for _, s := range scopes {
			for _, name := range sortedKeys(s.deps) {
				spec, ok := s.deps[name].Spec()
				if ok && spec.Path == nil && spec.Workspace == nil && spec.Version == nil {
					add(joinPath(s.path, name), "dependency declares neither path, workspace nor version")
				}
			}
		}
	}

	return out
}

func validGroup(group string) bool {
	if group == "" {
		return false
	}
	start := 0
	for i := 0; i <= len(group); i++ {
		if i == len(group) || group[i] == '.' {
			if !groupSegment.MatchString(group[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}
