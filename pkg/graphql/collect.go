package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypenameField is the meta field every composite type answers.
const TypenameField = "__typename"

// CollectedField is one response key of a selection set. Fields holds every
// selection merged under that key, in document order.
type CollectedField struct {
	ResponseKey string
	Name        string
	Fields      []*ast.Field
	Definition  *ast.FieldDefinition
}

// Arguments returns the field's argument values with variables substituted
// and schema defaults applied. Only arguments the schema declares are
// returned.
func (f *CollectedField) Arguments(vars map[string]interface{}) map[string]interface{} {
	if f.Definition == nil || len(f.Definition.Arguments) == 0 {
		return nil
	}
	field := f.Fields[0]
	args := make(map[string]interface{}, len(f.Definition.Arguments))
	for _, def := range f.Definition.Arguments {
		var value *ast.Value
		if arg := field.Arguments.ForName(def.Name); arg != nil {
			value = arg.Value
		} else if def.DefaultValue != nil {
			value = def.DefaultValue
		}
		if value == nil {
			continue
		}
		v, err := value.Value(vars)
		if err != nil {
			continue
		}
		args[def.Name] = v
	}
	return args
}

// SelectionSet returns the merged sub-selections of all occurrences.
func (f *CollectedField) SelectionSet() ast.SelectionSet {
	if len(f.Fields) == 1 {
		return f.Fields[0].SelectionSet
	}
	var merged ast.SelectionSet
	for _, field := range f.Fields {
		merged = append(merged, field.SelectionSet...)
	}
	return merged
}

// Position returns the location of the first occurrence.
func (f *CollectedField) Position() *ast.Position {
	return f.Fields[0].Position
}

// FieldError is returned by CollectFields when a selection names a field the
// object type does not declare.
type FieldError struct {
	TypeName string
	Field    string
	Position *ast.Position
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("type %s has no field %q", e.TypeName, e.Field)
}

// Unwrap matches ErrSchemaMismatch.
func (e *FieldError) Unwrap() error {
	return ErrSchemaMismatch
}

// CollectFields flattens selections for a concrete object type into ordered
// response keys. Fragments whose type condition does not apply to
// objectType are dropped, as are selections excluded by @skip or @include.
func (s *Schema) CollectFields(doc *ast.QueryDocument, objectType *ast.Definition, selections ast.SelectionSet, vars map[string]interface{}) ([]*CollectedField, error) {
	c := &collector{
		schema:  s,
		doc:     doc,
		object:  objectType,
		vars:    vars,
		byKey:   make(map[string]*CollectedField),
		visited: make(map[string]bool),
	}
	if err := c.collect(selections); err != nil {
		return nil, err
	}
	return c.fields, nil
}

type collector struct {
	schema  *Schema
	doc     *ast.QueryDocument
	object  *ast.Definition
	vars    map[string]interface{}
	fields  []*CollectedField
	byKey   map[string]*CollectedField
	visited map[string]bool
}

func (c *collector) collect(selections ast.SelectionSet) error {
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			if !c.shouldInclude(s.Directives) {
				continue
			}
			if err := c.addField(s); err != nil {
				return err
			}

		case *ast.InlineFragment:
			if !c.shouldInclude(s.Directives) || !c.conditionMatches(s.TypeCondition) {
				continue
			}
			if err := c.collect(s.SelectionSet); err != nil {
				return err
			}

		case *ast.FragmentSpread:
			if !c.shouldInclude(s.Directives) || c.visited[s.Name] {
				continue
			}
			c.visited[s.Name] = true

			frag := s.Definition
			if frag == nil && c.doc != nil {
				frag = c.doc.Fragments.ForName(s.Name)
			}
			if frag == nil {
				return fmt.Errorf("%w: unknown fragment %q", ErrSchemaMismatch, s.Name)
			}
			if !c.conditionMatches(frag.TypeCondition) {
				continue
			}
			if err := c.collect(frag.SelectionSet); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *collector) addField(field *ast.Field) error {
	key := field.Alias
	if key == "" {
		key = field.Name
	}

	if existing, ok := c.byKey[key]; ok {
		existing.Fields = append(existing.Fields, field)
		return nil
	}

	var def *ast.FieldDefinition
	if field.Name != TypenameField {
		def = c.object.Fields.ForName(field.Name)
		if def == nil {
			return &FieldError{TypeName: c.object.Name, Field: field.Name, Position: field.Position}
		}
	}

	cf := &CollectedField{
		ResponseKey: key,
		Name:        field.Name,
		Fields:      []*ast.Field{field},
		Definition:  def,
	}
	c.byKey[key] = cf
	c.fields = append(c.fields, cf)
	return nil
}

// conditionMatches reports whether a fragment with the given type condition
// applies to the object being collected.
func (c *collector) conditionMatches(typeCondition string) bool {
	if typeCondition == "" || typeCondition == c.object.Name {
		return true
	}
	return c.schema.IsPossibleType(typeCondition, c.object.Name)
}

func (c *collector) shouldInclude(directives ast.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil && c.directiveIf(d) {
		return false
	}
	if d := directives.ForName("include"); d != nil && !c.directiveIf(d) {
		return false
	}
	return true
}

// directiveIf evaluates the "if" argument of @skip or @include.
func (c *collector) directiveIf(d *ast.Directive) bool {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false
	}
	v, err := arg.Value.Value(c.vars)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}
