package process

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempTools(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTools(t *testing.T) {
	t.Run("Structured Recipe", func(t *testing.T) {
		path := writeTempTools(t, "tools.yaml", `
tools:
  - name: winget
    description: Windows Package Manager client
    install:
      windows:
        command: choco
        args: ["install", "winget", "-y", "--force"]
`)
		tools, err := LoadTools(path)
		require.NoError(t, err)
		require.Contains(t, tools, "winget")

		r, ok := tools["winget"].RecipeFor("windows")
		require.True(t, ok)
		assert.Equal(t, "choco", r.Command)
		assert.Equal(t, []string{"install", "winget", "-y", "--force"}, r.Args)
	})

	t.Run("String Recipe Shorthand", func(t *testing.T) {
		path := writeTempTools(t, "tools.yaml", `
tools:
  - name: rg
    install:
      default: apt-get install -y ripgrep
`)
		tools, err := LoadTools(path)
		require.NoError(t, err)

		r, ok := tools["rg"].RecipeFor("linux")
		require.True(t, ok)
		assert.Equal(t, "apt-get", r.Command)
		assert.Equal(t, []string{"install", "-y", "ripgrep"}, r.Args)
	})

	t.Run("Custom Executable Name", func(t *testing.T) {
		path := writeTempTools(t, "tools.yaml", `
tools:
  - name: winget
    command: winget.exe
`)
		tools, err := LoadTools(path)
		require.NoError(t, err)
		assert.Equal(t, "winget.exe", tools["winget"].Executable())
	})

	t.Run("JSON Variant", func(t *testing.T) {
		path := writeTempTools(t, "tools.json", `{"tools":[{"name":"jq"}]}`)
		tools, err := LoadTools(path)
		require.NoError(t, err)
		assert.Contains(t, tools, "jq")
	})

	t.Run("Skips Nameless Entries", func(t *testing.T) {
		path := writeTempTools(t, "tools.yaml", `
tools:
  - description: orphan entry
  - name: jq
`)
		tools, err := LoadTools(path)
		require.NoError(t, err)
		assert.Len(t, tools, 1)
	})

	t.Run("Missing File Is Empty Registry", func(t *testing.T) {
		tools, err := LoadTools(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Empty(t, tools)
	})

	t.Run("Invalid YAML Errors", func(t *testing.T) {
		path := writeTempTools(t, "tools.yaml", "tools: [unclosed")
		_, err := LoadTools(path)
		assert.Error(t, err)
	})
}
