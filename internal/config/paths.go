package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Directory and file names under the user's home directory.
const (
	homeDirName    = ".fyg"
	configFileName = "config.yaml"
)

// DefaultConfigFile returns ~/.fyg/config.yaml.
func DefaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeDirName, configFileName), nil
}

// ConfigFile returns FYG_CONFIG when set, otherwise DefaultConfigFile.
func ConfigFile() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	return DefaultConfigFile()
}

// ExpandPath replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}
