// Package cli holds the command logic behind the cobra surface, so each
// command stays a thin flag-parsing wrapper.
package cli

import (
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/spade"
	"github.com/aretw0/spade/internal/logging"
	"github.com/aretw0/spade/pkg/adapters/process"
	redisadapter "github.com/aretw0/spade/pkg/adapters/redis"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/installer"
)

// Options carries the root-level configuration shared by all commands.
type Options struct {
	ToolsPath string // Tool registry file; missing files mean "builtins only"
	LogLevel  string
	RedisURL  string // Enables the distributed install lock when set
}

// NewToolkit builds a Toolkit and its logger from CLI options.
func NewToolkit(opts Options, extra ...spade.Option) (*spade.Toolkit, *slog.Logger, error) {
	logger := logging.New(logging.ParseLevel(opts.LogLevel))

	tools, err := loadTools(opts.ToolsPath)
	if err != nil {
		return nil, nil, err
	}

	tkOpts := []spade.Option{
		spade.WithLogger(logger),
		spade.WithTools(tools),
	}

	if opts.RedisURL != "" {
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)
		tkOpts = append(tkOpts, spade.WithLocker(redisadapter.NewLocker(client, "spade:")))
	}

	tkOpts = append(tkOpts, extra...)
	return spade.New(tkOpts...), logger, nil
}

// loadTools layers tools.yaml entries over the builtins.
func loadTools(path string) (map[string]domain.Tool, error) {
	tools := installer.Builtins()
	if path == "" {
		return tools, nil
	}
	loaded, err := process.LoadTools(path)
	if err != nil {
		return nil, err
	}
	for name, tool := range loaded {
		tools[name] = tool
	}
	return tools, nil
}
