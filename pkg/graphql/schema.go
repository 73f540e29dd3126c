package graphql

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema represents a parsed GraphQL schema with convenient accessors
// for types, root operation fields and abstract type membership.
type Schema struct {
	ast           *ast.Schema
	source        string
	types         map[string]*ast.Definition
	queries       map[string]*ast.FieldDefinition
	mutations     map[string]*ast.FieldDefinition
	subscriptions map[string]*ast.FieldDefinition
	possible      map[string][]*ast.Definition
}

// ParseSchema parses a GraphQL SDL string and returns a Schema.
func ParseSchema(sdl string) (*Schema, error) {
	source := &ast.Source{
		Name:  "schema",
		Input: sdl,
	}

	schema, err := gqlparser.LoadSchema(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	return newSchema(schema, sdl), nil
}

// ParseSchemaFile parses a GraphQL schema from a file and returns a Schema.
func ParseSchemaFile(path string) (*Schema, error) {
	return ParseSchemaFiles(path)
}

// ParseSchemaFiles parses a GraphQL schema split across several files.
// Type extensions in later files apply to types declared in earlier ones.
func ParseSchemaFiles(paths ...string) (*Schema, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files given")
	}

	sources := make([]*ast.Source, 0, len(paths))
	inputs := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
		}
		sources = append(sources, &ast.Source{Name: path, Input: string(data)})
		inputs = append(inputs, string(data))
	}

	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema from %s: %w", strings.Join(paths, ", "), err)
	}

	return newSchema(schema, strings.Join(inputs, "\n")), nil
}

// newSchema creates a new Schema from a parsed ast.Schema.
func newSchema(schema *ast.Schema, source string) *Schema {
	s := &Schema{
		ast:           schema,
		source:        source,
		types:         make(map[string]*ast.Definition),
		queries:       make(map[string]*ast.FieldDefinition),
		mutations:     make(map[string]*ast.FieldDefinition),
		subscriptions: make(map[string]*ast.FieldDefinition),
		possible:      make(map[string][]*ast.Definition),
	}

	for name, def := range schema.Types {
		s.types[name] = def
		if def.IsAbstractType() {
			var members []*ast.Definition
			for _, member := range schema.GetPossibleTypes(def) {
				if member.Kind == ast.Object {
					members = append(members, member)
				}
			}
			sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
			s.possible[name] = members
		}
	}

	indexFields(s.queries, schema.Query)
	indexFields(s.mutations, schema.Mutation)
	indexFields(s.subscriptions, schema.Subscription)

	return s
}

func indexFields(into map[string]*ast.FieldDefinition, def *ast.Definition) {
	if def == nil {
		return
	}
	for _, field := range def.Fields {
		if !isIntrospectionField(field.Name) {
			into[field.Name] = field
		}
	}
}

// isIntrospectionField returns true if the field name is a built-in introspection field.
func isIntrospectionField(name string) bool {
	return len(name) >= 2 && name[0] == '_' && name[1] == '_'
}

// AST returns the underlying gqlparser AST schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Source returns the original SDL source string.
func (s *Schema) Source() string {
	return s.source
}

// GetType returns a type definition by name, or nil if not found.
func (s *Schema) GetType(name string) *ast.Definition {
	return s.types[name]
}

// RootType returns the root object type for an operation kind, or nil when
// the schema does not declare one.
func (s *Schema) RootType(op ast.Operation) *ast.Definition {
	switch op {
	case ast.Query, "":
		return s.ast.Query
	case ast.Mutation:
		return s.ast.Mutation
	case ast.Subscription:
		return s.ast.Subscription
	}
	return nil
}

// ListQueries returns all query field names in sorted order.
func (s *Schema) ListQueries() []string {
	return sortedKeys(s.queries)
}

// ListMutations returns all mutation field names in sorted order.
func (s *Schema) ListMutations() []string {
	return sortedKeys(s.mutations)
}

// ListSubscriptions returns all subscription field names in sorted order.
func (s *Schema) ListSubscriptions() []string {
	return sortedKeys(s.subscriptions)
}

func sortedKeys(m map[string]*ast.FieldDefinition) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListTypes returns all type names in sorted order, optionally filtering by kind.
// If kinds is empty, all types are returned.
func (s *Schema) ListTypes(kinds ...ast.DefinitionKind) []string {
	kindSet := make(map[ast.DefinitionKind]bool)
	for _, k := range kinds {
		kindSet[k] = true
	}

	names := make([]string, 0)
	for name, def := range s.types {
		if len(kindSet) == 0 || kindSet[def.Kind] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasQuery returns true if the schema has a query type with fields.
func (s *Schema) HasQuery() bool {
	return s.ast.Query != nil && len(s.ast.Query.Fields) > 0
}

// Validate performs checks gqlparser does not do while loading.
func (s *Schema) Validate() error {
	if !s.HasQuery() {
		return fmt.Errorf("schema must define a Query type with at least one field")
	}
	for _, name := range s.ListTypes(ast.Interface, ast.Union) {
		if len(s.possible[name]) == 0 {
			return fmt.Errorf("abstract type %s has no possible object types", name)
		}
	}
	return nil
}

// GetField returns a field definition by type and field name.
func (s *Schema) GetField(typeName, fieldName string) *ast.FieldDefinition {
	def := s.GetType(typeName)
	if def == nil {
		return nil
	}
	return def.Fields.ForName(fieldName)
}

// IsBuiltinScalar reports whether name is one of the five scalars every schema has.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

// IsScalarType returns true if the given type name is a scalar type.
func (s *Schema) IsScalarType(name string) bool {
	if IsBuiltinScalar(name) {
		return true
	}
	def := s.GetType(name)
	return def != nil && def.Kind == ast.Scalar
}

// IsEnumType returns true if the given type name is an enum type.
func (s *Schema) IsEnumType(name string) bool {
	def := s.GetType(name)
	return def != nil && def.Kind == ast.Enum
}

// IsObjectType returns true if the given type name is an object type.
func (s *Schema) IsObjectType(name string) bool {
	def := s.GetType(name)
	return def != nil && def.Kind == ast.Object
}

// IsAbstractType returns true for interfaces and unions.
func (s *Schema) IsAbstractType(name string) bool {
	def := s.GetType(name)
	return def != nil && def.IsAbstractType()
}

// GetEnumValues returns the enum values for an enum type in declaration
// order, or nil if not an enum.
func (s *Schema) GetEnumValues(name string) []string {
	def := s.GetType(name)
	if def == nil || def.Kind != ast.Enum {
		return nil
	}

	values := make([]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		values = append(values, v.Name)
	}
	return values
}

// PossibleTypes returns the object types an interface or union can resolve
// to, sorted by name. It returns nil for any other type.
func (s *Schema) PossibleTypes(name string) []*ast.Definition {
	return s.possible[name]
}

// IsPossibleType reports whether object type objectName can stand in for
// the (possibly abstract) type abstractName.
func (s *Schema) IsPossibleType(abstractName, objectName string) bool {
	if abstractName == objectName {
		return true
	}
	for _, def := range s.possible[abstractName] {
		if def.Name == objectName {
			return true
		}
	}
	return false
}

// GetInterfaceImplementors returns all types that implement the given interface.
func (s *Schema) GetInterfaceImplementors(interfaceName string) []string {
	def := s.GetType(interfaceName)
	if def == nil || def.Kind != ast.Interface {
		return nil
	}
	return definitionNames(s.possible[interfaceName])
}

// GetUnionMembers returns the member types of a union, or nil if not a union.
func (s *Schema) GetUnionMembers(name string) []string {
	def := s.GetType(name)
	if def == nil || def.Kind != ast.Union {
		return nil
	}
	return definitionNames(s.possible[name])
}

func definitionNames(defs []*ast.Definition) []string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}
