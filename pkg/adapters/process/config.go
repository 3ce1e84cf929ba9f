package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/spade/pkg/domain"
)

// ToolsFile represents the structure of tools.yaml.
type ToolsFile struct {
	Tools []map[string]any `yaml:"tools" json:"tools"`
}

// LoadTools reads a tool registry file (YAML or JSON) and returns tools
// keyed by name. A missing file is treated as an empty registry so the
// built-in recipes still apply.
func LoadTools(path string) (map[string]domain.Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.Tool{}, nil
		}
		return nil, fmt.Errorf("failed to read tools config: %w", err)
	}

	var raw ToolsFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	tools := make(map[string]domain.Tool, len(raw.Tools))
	for _, entry := range raw.Tools {
		var tool domain.Tool
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: recipeFromStringHook,
			Result:     &tool,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(entry); err != nil {
			return nil, fmt.Errorf("invalid tool entry: %w", err)
		}
		if tool.Name == "" {
			continue
		}
		tools[tool.Name] = tool
	}
	return tools, nil
}

// recipeFromStringHook lets tools.yaml spell an install recipe as a single
// command line ("choco install winget -y --force") instead of the structured
// {command, args} form. Splitting is whitespace-based, so quoted arguments
// need the structured form.
func recipeFromStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(domain.Recipe{}) {
		return data, nil
	}
	fields := strings.Fields(data.(string))
	if len(fields) == 0 {
		return domain.Recipe{}, nil
	}
	return domain.Recipe{Command: fields[0], Args: fields[1:]}, nil
}
