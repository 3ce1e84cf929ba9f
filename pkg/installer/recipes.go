package installer

import "github.com/aretw0/spade/pkg/domain"

// chocoBootstrap is the official one-line Chocolatey install command.
const chocoBootstrap = `Set-ExecutionPolicy Bypass -Scope Process -Force; ` +
	`[System.Net.ServicePointManager]::SecurityProtocol = [System.Net.ServicePointManager]::SecurityProtocol -bor 3072; ` +
	`iex ((New-Object System.Net.WebClient).DownloadString('https://community.chocolatey.org/install.ps1'))`

// Builtins returns the install recipes Spade ships with.
// Entries loaded from tools.yaml override these by name.
func Builtins() map[string]domain.Tool {
	return map[string]domain.Tool{
		"choco": {
			Name:        "choco",
			Description: "Chocolatey package manager",
			Install: map[string]domain.Recipe{
				"windows": {
					Command: "powershell",
					Args:    []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", chocoBootstrap},
				},
			},
		},
		"winget": {
			Name:        "winget",
			Description: "Windows Package Manager client",
			Install: map[string]domain.Recipe{
				// Chocolatey is the bootstrap path when winget itself is broken.
				"windows": {
					Command: "choco",
					Args:    []string{"install", "winget", "-y", "--force"},
				},
			},
		},
		"brew": {
			Name:        "brew",
			Description: "Homebrew package manager",
			Install: map[string]domain.Recipe{
				"darwin": {
					Command: "/bin/bash",
					Args:    []string{"-c", `curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | bash`},
				},
			},
		},
	}
}
