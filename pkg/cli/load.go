package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/cli/internal/flags"
	"github.com/getmockd/automock/pkg/config"
	"github.com/getmockd/automock/pkg/graphql"
)

// sourceFlags name where a command gets its schema and configuration from.
type sourceFlags struct {
	configPath  string
	schemaPaths flags.StringSlice
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	cmd.Flags().VarP(&s.schemaPaths, "schema", "s", "Schema SDL file (repeatable, replaces the configured schema)")
}

// load returns the schema and provider options the flags describe. Schema
// paths given on the command line replace the configured schema.
func (s *sourceFlags) load() (*graphql.Schema, []automock.Option, error) {
	if s.configPath == "" && len(s.schemaPaths) == 0 {
		return nil, nil, fmt.Errorf("either --config or --schema is required")
	}

	cfg := &config.Config{}
	if s.configPath != "" {
		loaded, err := config.LoadFile(s.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	if len(s.schemaPaths) > 0 {
		cfg.Schema = ""
		cfg.SchemaFiles = cfg.SchemaFiles[:0]
		for _, p := range s.schemaPaths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, nil, fmt.Errorf("schema %q: %w", p, err)
			}
			cfg.SchemaFiles = append(cfg.SchemaFiles, abs)
		}
	}

	return config.Build(cfg)
}
