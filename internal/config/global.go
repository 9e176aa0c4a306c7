package config

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Settings are the resolved settings with their sources.
	Settings *Settings

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ProjectDir is the raw --dir flag value; empty means the working directory.
	ProjectDir string

	Verbose bool
}

// Group returns the resolved default group.
func (g *GlobalConfig) Group() string {
	if g.Settings == nil {
		return DefaultGroup
	}
	return g.Settings.Group.Value
}

// Template returns the resolved default template.
func (g *GlobalConfig) Template() string {
	if g.Settings == nil {
		return ""
	}
	return g.Settings.Template.Value
}
