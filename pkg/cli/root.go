package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/automock/pkg/logging"
)

// Version information, set by main from ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// errSilent marks failures whose details were already written to the
// command's output.
var errSilent = errors.New("silent failure")

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	logLevel  string
	logFormat string
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	cfg := logging.DefaultConfig()
	if g.logLevel != "" {
		cfg.Level = logging.ParseLevel(g.logLevel)
	}
	cfg.Format = logging.ParseFormat(g.logFormat)
	cfg.Output = cmd.ErrOrStderr()
	return logging.New(cfg)
}

// NewRootCmd builds the automock command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "automock",
		Short: "automock synthesizes deterministic mock responses for GraphQL operations",
		Long: `automock resolves GraphQL operations against a schema without a server.

Responses are synthesized from the schema: every field gets a value derived
from the operation name, its variables and the field's path, so the same
operation always yields the same data. Mocks, copy rules and list lengths
come from a configuration file.

Quick start:
  automock resolve --schema schema.graphql --query 'query GetUser { user { id name } }'
  automock resolve --config automock.yaml --query ./getUser.graphql --var id=42
  automock validate --config automock.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true, // Errors are printed by Run
	}

	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(
		newResolveCmd(g),
		newValidateCmd(g),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Execute runs the root command with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
