package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/automock/pkg/cli/internal/output"
	"github.com/getmockd/automock/pkg/graphql"
)

// SchemaOutput is the JSON form of the schema command.
type SchemaOutput struct {
	Queries       []string            `json:"queries"`
	Mutations     []string            `json:"mutations"`
	Subscriptions []string            `json:"subscriptions"`
	Types         map[string][]string `json:"types"`
	// Members holds enum values and the possible types of interfaces and unions.
	Members map[string][]string `json:"members,omitempty"`
}

// schemaKinds are the definition kinds listed, in display order.
var schemaKinds = []ast.DefinitionKind{ast.Object, ast.Interface, ast.Union, ast.Enum, ast.InputObject, ast.Scalar}

func newSchemaCmd() *cobra.Command {
	var (
		src        sourceFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the operations and types of a schema",
		Example: `  automock schema -s schema.graphql
  automock schema -c automock.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _, err := src.load()
			if err != nil {
				return err
			}
			out := describeSchema(schema)
			if jsonOutput {
				return output.JSON(cmd.OutOrStdout(), out)
			}
			return printSchema(cmd, out)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func describeSchema(schema *graphql.Schema) SchemaOutput {
	out := SchemaOutput{
		Queries:       schema.ListQueries(),
		Mutations:     schema.ListMutations(),
		Subscriptions: schema.ListSubscriptions(),
		Types:         make(map[string][]string),
		Members:       make(map[string][]string),
	}
	for _, kind := range schemaKinds {
		for _, name := range schema.ListTypes(kind) {
			def := schema.GetType(name)
			if def == nil || def.BuiltIn {
				continue
			}
			out.Types[string(kind)] = append(out.Types[string(kind)], name)
			if members := typeMembers(schema, def); len(members) > 0 {
				out.Members[name] = members
			}
		}
	}
	return out
}

func typeMembers(schema *graphql.Schema, def *ast.Definition) []string {
	switch def.Kind {
	case ast.Enum:
		return schema.GetEnumValues(def.Name)
	case ast.Union:
		return schema.GetUnionMembers(def.Name)
	case ast.Interface:
		return schema.GetInterfaceImplementors(def.Name)
	}
	return nil
}

func printSchema(cmd *cobra.Command, out SchemaOutput) error {
	w := output.Table(cmd.OutOrStdout())
	fmt.Fprintln(w, "KIND\tNAME\tMEMBERS")
	for _, name := range out.Queries {
		fmt.Fprintf(w, "query\t%s\t\n", name)
	}
	for _, name := range out.Mutations {
		fmt.Fprintf(w, "mutation\t%s\t\n", name)
	}
	for _, name := range out.Subscriptions {
		fmt.Fprintf(w, "subscription\t%s\t\n", name)
	}
	for _, kind := range schemaKinds {
		for _, name := range out.Types[string(kind)] {
			fmt.Fprintf(w, "%s\t%s\t%s\n", kind, name, strings.Join(out.Members[name], ", "))
		}
	}
	return w.Flush()
}
