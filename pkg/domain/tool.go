package domain

// Tool describes a named executable Spade knows how to check and install.
// Entries come from the built-in registry or from tools.yaml.
type Tool struct {
	Name        string            `yaml:"name" json:"name" mapstructure:"name"`
	Command     string            `yaml:"command,omitempty" json:"command,omitempty" mapstructure:"command"` // Executable to resolve; defaults to Name
	Description string            `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	Install     map[string]Recipe `yaml:"install,omitempty" json:"install,omitempty" mapstructure:"install"` // Keyed by GOOS, or "default"
}

// Recipe is the single install command executed when the tool is missing.
// There is intentionally no retry or multi-step sequence here: one clean
// attempt, then verification.
type Recipe struct {
	Command string   `yaml:"command" json:"command" mapstructure:"command"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty" mapstructure:"args"`
}

// Executable returns the name used for path resolution.
func (t Tool) Executable() string {
	if t.Command != "" {
		return t.Command
	}
	return t.Name
}

// RecipeFor returns the install recipe for the given GOOS, falling back to
// the "default" entry when no platform-specific one exists.
func (t Tool) RecipeFor(goos string) (Recipe, bool) {
	if r, ok := t.Install[goos]; ok {
		return r, true
	}
	r, ok := t.Install["default"]
	return r, ok
}

// Spec builds the CommandSpec for this recipe, attached to the current
// console and waiting for completion, which is what installers need.
func (r Recipe) Spec() CommandSpec {
	return CommandSpec{Name: r.Command, Args: r.Args, Wait: true}
}
