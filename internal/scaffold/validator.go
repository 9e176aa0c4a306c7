package scaffold

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// groupRegex matches a reverse-domain namespace such as com.example.app.
var groupRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateProjectName checks that name can serve as a project and directory
// name.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid project name %q: contains invalid character %q", name, r)
		}
	}

	if !unicode.IsLetter([]rune(name)[0]) {
		return fmt.Errorf("invalid project name %q: must start with a letter", name)
	}

	return nil
}

// ValidateGroup checks that group is a dotted identifier.
func ValidateGroup(group string) error {
	if group == "" {
		return fmt.Errorf("group cannot be empty")
	}
	if !groupRegex.MatchString(group) {
		return fmt.Errorf("invalid group %q: must be dot-separated identifiers such as com.example", group)
	}
	return nil
}

// SanitizeName derives a project name from a directory name: characters
// that are not letters, digits, '-' or '_' become '-', and the result is
// lowercased.
func SanitizeName(dirname string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(dirname) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		return "project"
	}
	return name
}
