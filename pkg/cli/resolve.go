package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/cli/internal/flags"
	"github.com/getmockd/automock/pkg/cli/internal/output"
	"github.com/getmockd/automock/pkg/cli/internal/parse"
	"github.com/getmockd/automock/pkg/graphql"
)

type resolveFlags struct {
	sourceFlags
	query         string
	operationName string
	variables     string
	variablesFile string
	vars          flags.StringSlice
	noTypename    bool
	listLength    int
}

func newResolveCmd(g *globalFlags) *cobra.Command {
	f := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Synthesize the mocked response for a GraphQL operation",
		Long: `Resolve a GraphQL operation against a schema and print the mocked response.

The query is read from a file when --query names one, from stdin when it is
"-", and is otherwise taken literally. Variables may be given as a JSON
object, a JSON file, individual name=value pairs, or any combination; later
sources win.

The response is printed as JSON. The command exits 1 when the response
carries errors.`,
		Example: `  # Resolve an inline query
  automock resolve -s schema.graphql -q 'query GetUser($id: ID!) { user(id: $id) { id name } }' --var id=42

  # Resolve with mocks and copy rules from a config file
  automock resolve -c automock.yaml -q ./queries/getUser.graphql --variables '{"id": "42"}'

  # Pick one operation of a multi-operation document
  automock resolve -c automock.yaml -q ./queries.graphql -o GetUser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, g, f)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Query document: a file path, - for stdin, or inline text")
	cmd.Flags().StringVarP(&f.operationName, "operation", "o", "", "Operation name to execute")
	cmd.Flags().StringVar(&f.variables, "variables", "", "Variables as a JSON object")
	cmd.Flags().StringVar(&f.variablesFile, "variables-file", "", "File containing the variables JSON object")
	cmd.Flags().Var(&f.vars, "var", "Variable as name=value, JSON values are decoded (repeatable)")
	cmd.Flags().BoolVar(&f.noTypename, "no-typename", false, "Do not add __typename to objects")
	cmd.Flags().IntVar(&f.listLength, "list-length", automock.DefaultListLength, "Items per list when no mock fixes the length")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runResolve(cmd *cobra.Command, g *globalFlags, f *resolveFlags) error {
	query, err := readQuery(cmd, f.query)
	if err != nil {
		return err
	}
	vars, err := f.readVariables()
	if err != nil {
		return err
	}

	schema, opts, err := f.load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("list-length") {
		opts = append(opts, automock.WithListLength(f.listLength))
	}
	if f.noTypename {
		opts = append(opts, automock.WithAddTypename(false))
	}
	opts = append(opts, automock.WithLogger(g.logger(cmd)))

	provider, err := automock.New(schema, opts...)
	if err != nil {
		return err
	}

	resp := provider.Execute(cmd.Context(), &graphql.GraphQLRequest{
		Query:         query,
		OperationName: f.operationName,
		Variables:     vars,
	})
	if err := output.JSON(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	if resp.HasErrors() {
		return errSilent
	}
	return nil
}

// readQuery resolves the --query value to document text.
func readQuery(cmd *cobra.Command, value string) (string, error) {
	switch {
	case value == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading query from stdin: %w", err)
		}
		return string(data), nil
	case strings.TrimSpace(value) == "":
		return "", fmt.Errorf("query must not be empty")
	}

	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		data, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("reading query: %w", err)
		}
		return string(data), nil
	}
	return value, nil
}

func (f *resolveFlags) readVariables() (map[string]interface{}, error) {
	var vars map[string]interface{}

	if f.variablesFile != "" {
		data, err := os.ReadFile(f.variablesFile)
		if err != nil {
			return nil, fmt.Errorf("reading variables: %w", err)
		}
		if vars, err = parse.Variables(data); err != nil {
			return nil, fmt.Errorf("%s: %w", f.variablesFile, err)
		}
	}

	if f.variables != "" {
		inline, err := parse.Variables([]byte(f.variables))
		if err != nil {
			return nil, err
		}
		if vars == nil {
			vars = inline
		} else {
			for k, v := range inline {
				vars[k] = v
			}
		}
	}

	return parse.VariableAssignments(vars, f.vars)
}
