package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
)

const buildSchema = `
type Query {
	queryShape(id: ID, shapeId: ID): Shape
}

type Shape {
	id: ID!
	returnString: String
	returnInt: Int!
}
`

const buildQuery = `query OperationA($id: ID, $shapeId: ID) {
	queryShape(id: $id, shapeId: $shapeId) { id returnString returnInt }
}`

func buildProvider(t *testing.T, path string) *automock.Provider {
	t.Helper()
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	schema, opts, err := Build(cfg)
	require.NoError(t, err)
	p, err := automock.New(schema, opts...)
	require.NoError(t, err)
	return p
}

func queryShape(t *testing.T, p *automock.Provider, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp := p.Execute(context.Background(), &graphql.GraphQLRequest{Query: buildQuery, Variables: vars})
	require.Empty(t, resp.Errors)
	shape, ok := resp.Data["queryShape"].(map[string]interface{})
	require.True(t, ok)
	return shape
}

func TestBuild_EndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "schema.graphql", buildSchema)
	path := writeFile(t, tmpDir, "automock.yaml", `
schema: schema.graphql
addTypename: false
mocks:
  OperationA:
    queryShape:
      returnString: John Doe
      returnInt: 7
copyFieldsFromVariables:
  OperationA:
    queryShape.id: id
`)

	shape := queryShape(t, buildProvider(t, path), map[string]interface{}{"id": "111"})
	assert.Equal(t, "111", shape["id"])
	assert.Equal(t, "John Doe", shape["returnString"])
	assert.Equal(t, 7, shape["returnInt"])
	assert.NotContains(t, shape, "__typename")
}

func TestBuild_ExprMock(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "schema.graphql", buildSchema)
	path := writeFile(t, tmpDir, "automock.yaml", `
schema: schema.graphql
mocks:
  OperationA:
    expr: '{"queryShape": {"returnString": "Shape " + variables.shapeId}}'
`)

	p := buildProvider(t, path)
	assert.Equal(t, "Shape 123", queryShape(t, p, map[string]interface{}{"shapeId": "123"})["returnString"])
	assert.Equal(t, "Shape 124", queryShape(t, p, map[string]interface{}{"shapeId": "124"})["returnString"])
}

func TestBuild_SchemaFilesAndMockFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "schema/query.graphql", "type Query { queryShape(id: ID, shapeId: ID): Shape }")
	writeFile(t, tmpDir, "schema/types/shape.graphql", "type Shape { id: ID! returnString: String returnInt: Int! }")
	writeFile(t, tmpDir, "mocks/a.yaml", "mocks:\n  OperationA:\n    queryShape:\n      returnString: from a\n")
	writeFile(t, tmpDir, "mocks/b/b.json", `{"mocks": {"OperationA": {"queryShape": {"returnString": "from b"}}}}`)
	path := writeFile(t, tmpDir, "automock.yaml", `
schemaFiles: ["schema/**/*.graphql"]
mockFiles: ["mocks/**/*.{yaml,json}"]
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	paths, err := SchemaPaths(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(cfg.BaseDir, "schema", "query.graphql"),
		filepath.Join(cfg.BaseDir, "schema", "types", "shape.graphql"),
	}, paths)

	// mocks/a.yaml sorts before mocks/b/b.json, so b wins.
	shape := queryShape(t, buildProvider(t, path), nil)
	assert.Equal(t, "from b", shape["returnString"])
}

func TestBuild_InlineMocksWinOverMockFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "schema.graphql", buildSchema)
	writeFile(t, tmpDir, "mocks.yaml", "mocks:\n  OperationA:\n    queryShape:\n      returnString: from file\n")
	path := writeFile(t, tmpDir, "automock.yaml", `
schema: schema.graphql
mockFiles: [mocks.yaml]
mocks:
  OperationA:
    queryShape:
      returnString: inline
`)

	assert.Equal(t, "inline", queryShape(t, buildProvider(t, path), nil)["returnString"])
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		config  string
		wantErr error
	}{
		{
			name:    "schema glob matches nothing",
			config:  "schemaFiles: [\"none/*.graphql\"]\n",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "schema file missing",
			config:  "schema: missing.graphql\n",
			wantErr: nil,
		},
		{
			name:    "bad expression",
			files:   map[string]string{"schema.graphql": buildSchema},
			config:  "schema: schema.graphql\nmocks:\n  OperationA:\n    expr: '\"not a map\"'\n",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "bad mock file",
			files:   map[string]string{"schema.graphql": buildSchema, "m.yaml": "other: 1\n"},
			config:  "schema: schema.graphql\nmockFiles: [m.yaml]\n",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "missing mock file",
			files:   map[string]string{"schema.graphql": buildSchema},
			config:  "schema: schema.graphql\nmockFiles: [m.yaml]\n",
			wantErr: ErrFileNotFound,
		},
		{
			name:    "abstract type without members",
			files:   map[string]string{"schema.graphql": "type Query { n: Node }\ninterface Node { id: ID! }\n"},
			config:  "schema: schema.graphql\n",
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, tmpDir, name, content)
			}
			cfg, err := LoadFile(writeFile(t, tmpDir, "automock.yaml", tt.config))
			require.NoError(t, err)

			_, _, err = Build(cfg)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBuild_NilConfig(t *testing.T) {
	_, _, err := Build(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
