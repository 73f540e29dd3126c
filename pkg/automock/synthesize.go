package automock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/automock/pkg/faker"
	"github.com/getmockd/automock/pkg/graphql"
	"github.com/getmockd/automock/pkg/seed"
)

// resolution holds the state of one Resolve call. It is never shared
// between calls.
type resolution struct {
	p      *Provider
	ctx    context.Context
	op     *graphql.Operation
	seeder seed.Seeder
	vars   map[string]interface{}
	logger *slog.Logger
}

// layers are the override subtrees that apply at one response position.
type layers struct {
	// mock is the operation mock at this position.
	mock interface{}
	// copy is the compiled copy rule at this position: nested rules or a *copyLeaf.
	copy interface{}
	// null is set when the mock holds an explicit null at this position.
	null bool
}

func (l layers) field(cf *graphql.CollectedField) layers {
	mock, present := childNode(l.mock, cf)
	rules, _ := childNode(l.copy, cf)
	return layers{mock: mock, copy: rules, null: present && mock == nil}
}

// item returns the layers for list item i. Copy rules have no indices and
// apply to every item.
func (l layers) item(i int) layers {
	next := layers{copy: l.copy}
	if items, ok := l.mock.([]interface{}); ok && i < len(items) {
		next.mock = items[i]
		next.null = items[i] == nil
	}
	return next
}

// childNode returns the subtree node holds for cf and whether the key is present.
func childNode(node interface{}, cf *graphql.CollectedField) (interface{}, bool) {
	m, ok := node.(map[string]interface{})
	if !ok {
		return nil, false
	}
	if v, ok := m[cf.ResponseKey]; ok {
		return v, true
	}
	v, ok := m[cf.Name]
	return v, ok
}

func (r *resolution) run(mock, rules map[string]interface{}) (map[string]interface{}, error) {
	root := r.op.RootType(r.p.schema)
	if root == nil {
		return nil, fmt.Errorf("%w: schema does not define a %s type", ErrSchemaMismatch, r.op.TypeName())
	}

	l := layers{}
	if mock != nil {
		l.mock = mock
	}
	if rules != nil {
		l.copy = rules
	}
	return r.object(nil, root, r.op.Definition.SelectionSet, nil, "", l)
}

// object builds one composite value: defaults for every selected field,
// then the type resolver, the copy rules and the mock, each overriding the
// previous.
func (r *resolution) object(path ast.Path, def *ast.Definition, selections ast.SelectionSet, args map[string]interface{}, fieldName string, l layers) (map[string]interface{}, error) {
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}

	fields, err := r.collect(def, selections, path)
	if err != nil {
		return nil, err
	}

	obj := make(map[string]interface{}, len(fields)+1)
	for _, cf := range fields {
		if cf.Name == graphql.TypenameField {
			obj[cf.ResponseKey] = def.Name
			continue
		}
		v, err := r.value(appendPath(path, ast.PathName(cf.ResponseKey)), cf.Definition.Type, cf, l.field(cf))
		if err != nil {
			return nil, err
		}
		obj[cf.ResponseKey] = v
	}

	// The root is the response envelope, not an entity.
	if len(path) > 0 {
		obj[typenameKey] = def.Name
	}

	if resolve := r.p.resolvers[def.Name]; resolve != nil {
		partial, err := resolve(r.ctx, deepCopyMap(obj), args, ResolveInfo{
			Operation: r.op,
			Schema:    r.p.schema,
			Path:      path,
			TypeName:  def.Name,
			FieldName: fieldName,
		})
		if err != nil {
			return nil, &ResolverError{Operation: r.op.Name, Path: path, TypeName: def.Name, Err: err}
		}
		if len(partial) > 0 {
			if err := r.merge(obj, deepCopyMap(partial), def, fields, path, SourceResolver, l); err != nil {
				return nil, err
			}
		}
	}

	if rules, ok := l.copy.(map[string]interface{}); ok && len(rules) > 0 {
		if err := r.applyCopy(obj, rules, def, fields, path, l); err != nil {
			return nil, err
		}
	}

	if mock, ok := l.mock.(map[string]interface{}); ok && len(mock) > 0 {
		if err := r.merge(obj, mock, def, fields, path, SourceMock, l); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// value synthesizes the default for a field of type typ. A position the
// mock sets to null is left null without synthesizing beneath it.
func (r *resolution) value(path ast.Path, typ *ast.Type, cf *graphql.CollectedField, l layers) (interface{}, error) {
	if l.null {
		return nil, nil
	}
	if typ.Elem != nil {
		n := r.p.listLength
		if items, ok := l.mock.([]interface{}); ok {
			n = len(items)
		}
		out := make([]interface{}, n)
		for i := 0; i < n; i++ {
			v, err := r.value(appendPath(path, ast.PathIndex(i)), typ.Elem, cf, l.item(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	def := r.p.schema.GetType(typ.NamedType)
	if def == nil {
		return nil, r.mismatch(path, typ.NamedType, cf.Name)
	}

	switch {
	case r.p.schema.IsScalarType(def.Name):
		return r.scalar(path, def, cf), nil
	case r.p.schema.IsEnumType(def.Name):
		return faker.New(r.seeder.At(path)).Enum(r.p.schema.GetEnumValues(def.Name)), nil
	case def.IsCompositeType():
		return r.composite(path, def, cf, l, "", "")
	}
	return nil, r.mismatch(path, def.Name, cf.Name)
}

// composite synthesizes an object for a field of composite type def.
// preferred, when set, names the concrete type an override asked for.
func (r *resolution) composite(path ast.Path, def *ast.Definition, cf *graphql.CollectedField, l layers, preferred, source string) (map[string]interface{}, error) {
	concrete, err := r.concreteType(path, def, cf, l, preferred, source)
	if err != nil {
		return nil, err
	}
	return r.object(path, concrete, cf.SelectionSet(), cf.Arguments(r.op.Variables), cf.Name, l)
}

// concreteType picks the object type for a value of type def. The mock's
// __typename wins, then preferred, then a seeded pick among the possible
// types in name order.
func (r *resolution) concreteType(path ast.Path, def *ast.Definition, cf *graphql.CollectedField, l layers, preferred, source string) (*ast.Definition, error) {
	want, wantSource := preferred, source
	if m, ok := l.mock.(map[string]interface{}); ok {
		if name, ok := m[typenameKey].(string); ok && name != "" {
			want, wantSource = name, SourceMock
		}
	}

	if want != "" {
		if !r.p.schema.IsPossibleType(def.Name, want) || !r.p.schema.IsObjectType(want) {
			return nil, &OverrideShapeMismatchError{
				Operation: r.op.Name,
				Path:      path,
				TypeName:  def.Name,
				Field:     cf.Name,
				Source:    wantSource,
				Reason:    fmt.Sprintf("__typename %q is not a possible type for %s", want, def.Name),
			}
		}
		return r.p.schema.GetType(want), nil
	}

	if !def.IsAbstractType() {
		return def, nil
	}

	possible := r.p.schema.PossibleTypes(def.Name)
	if len(possible) == 0 {
		return nil, r.mismatch(path, def.Name, cf.Name)
	}
	return possible[r.seeder.At(path)%uint64(len(possible))], nil
}

func (r *resolution) scalar(path ast.Path, def *ast.Definition, cf *graphql.CollectedField) interface{} {
	g := faker.New(r.seeder.At(path))

	switch def.Name {
	case "Int":
		return g.Int()
	case "Float":
		return g.Float()
	case "String":
		return g.String(cf.Name)
	case "Boolean":
		return g.Boolean()
	case "ID":
		return g.ID()
	}

	if v, ok := g.Scalar(def.Name, cf.Name); ok {
		return v
	}
	r.p.warnUnsupportedScalar(def.Name)
	return g.Placeholder(def.Name)
}

// collect wraps graphql.Schema.CollectFields, turning unknown fields into
// SchemaMismatchError.
func (r *resolution) collect(def *ast.Definition, selections ast.SelectionSet, path ast.Path) ([]*graphql.CollectedField, error) {
	fields, err := r.p.schema.CollectFields(r.op.Document, def, selections, r.op.Variables)
	if err != nil {
		var fieldErr *graphql.FieldError
		if errors.As(err, &fieldErr) {
			return nil, r.mismatch(appendPath(path, ast.PathName(fieldErr.Field)), fieldErr.TypeName, fieldErr.Field)
		}
		return nil, err
	}
	return fields, nil
}

func (r *resolution) mismatch(path ast.Path, typeName, field string) error {
	return &SchemaMismatchError{Operation: r.op.Name, Path: path, TypeName: typeName, Field: field}
}

// appendPath returns a new path; the input is never aliased.
func appendPath(path ast.Path, el ast.PathElement) ast.Path {
	out := make(ast.Path, len(path)+1)
	copy(out, path)
	out[len(path)] = el
	return out
}
