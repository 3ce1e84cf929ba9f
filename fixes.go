package spade

import "github.com/aretw0/spade/pkg/domain"

// FixAction describes a one-shot maintenance action: a prerequisite that
// must be present, and the command that performs the repair.
type FixAction struct {
	Name        string
	Description string
	Requires    string // Prerequisite tool ensured before Spec runs; empty skips the guard
	Spec        domain.CommandSpec
}

// Fixes returns the built-in maintenance actions.
// "winget" is the original one: when the Windows Package Manager client is
// broken, Chocolatey reinstalls it.
func Fixes() map[string]FixAction {
	return map[string]FixAction{
		"winget": {
			Name:        "winget",
			Description: "Reinstall the winget client via Chocolatey",
			Requires:    "choco",
			Spec: domain.CommandSpec{
				Name: "choco",
				Args: []string{"install", "winget", "-y", "--force"},
				Wait: true,
			},
		},
	}
}
