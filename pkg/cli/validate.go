package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/config"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate [config]",
		Short: "Check a configuration file and the schema it names",
		Long: `Validate an automock configuration file without resolving anything.

This command checks:
  - YAML or JSON syntax
  - The configuration schema (known keys, value types)
  - That every schema file exists and the schema is usable
  - That every mock file is valid and every expression mock compiles
  - That copy rules are well formed`,
		Example: `  automock validate automock.yaml
  automock validate --config ./mocks/automock.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if configPath != "" && configPath != args[0] {
					return fmt.Errorf("config given both as argument and --config")
				}
				configPath = args[0]
			}
			if configPath == "" {
				return fmt.Errorf("a configuration file is required")
			}
			return runValidate(cmd, g, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML or JSON)")
	return cmd
}

func runValidate(cmd *cobra.Command, g *globalFlags, path string) error {
	logger := g.logger(cmd)

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	schemaPaths, err := config.SchemaPaths(cfg)
	if err != nil {
		return err
	}
	schema, opts, err := config.Build(cfg)
	if err != nil {
		return err
	}
	if _, err := automock.New(schema, append(opts, automock.WithLogger(logger))...); err != nil {
		return err
	}
	mocks, err := config.Mocks(cfg)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "path", path, "options", len(opts))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s is valid\n", path)
	fmt.Fprintf(out, "  schema files:  %d\n", len(schemaPaths))
	fmt.Fprintf(out, "  queries:       %d\n", len(schema.ListQueries()))
	fmt.Fprintf(out, "  mutations:     %d\n", len(schema.ListMutations()))
	fmt.Fprintf(out, "  mocks:         %d\n", len(mocks))
	fmt.Fprintf(out, "  copy rules:    %d\n", len(cfg.CopyFieldsFromVariables))
	return nil
}
