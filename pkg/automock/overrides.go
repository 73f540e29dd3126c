package automock

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/automock/pkg/graphql"
)

// matchFields returns the collected fields an override key addresses: the
// field with that response key, or else every field selected under that
// schema name.
func matchFields(fields []*graphql.CollectedField, key string) []*graphql.CollectedField {
	for _, cf := range fields {
		if cf.ResponseKey == key {
			return []*graphql.CollectedField{cf}
		}
	}
	var out []*graphql.CollectedField
	for _, cf := range fields {
		if cf.Name == key {
			out = append(out, cf)
		}
	}
	return out
}

// merge lays override onto obj field by field. Keys naming fields the type
// declares but the query did not select are ignored; keys naming fields the
// type does not declare are an OverrideShapeMismatchError.
func (r *resolution) merge(obj, override map[string]interface{}, def *ast.Definition, fields []*graphql.CollectedField, path ast.Path, source string, l layers) error {
	for _, key := range sortedKeys(override) {
		if key == typenameKey {
			continue
		}

		matches := matchFields(fields, key)
		if len(matches) == 0 {
			if r.p.schema.GetField(def.Name, key) != nil {
				continue
			}
			return &OverrideShapeMismatchError{
				Operation: r.op.Name,
				Path:      appendPath(path, ast.PathName(key)),
				TypeName:  def.Name,
				Field:     key,
				Source:    source,
			}
		}

		for _, cf := range matches {
			if cf.Name == graphql.TypenameField {
				continue
			}
			childPath := appendPath(path, ast.PathName(cf.ResponseKey))
			v, err := r.mergeValue(obj[cf.ResponseKey], override[key], cf.Definition.Type, cf, childPath, source, l.field(cf))
			if err != nil {
				return err
			}
			obj[cf.ResponseKey] = v
		}
	}
	return nil
}

// mergeValue lays one override value onto the current value of a field.
// Leaves are replaced, lists take the override's length and merge item by
// item, objects merge recursively. An override __typename that differs from
// the current object's type re-synthesizes the object as that type first.
func (r *resolution) mergeValue(cur, override interface{}, typ *ast.Type, cf *graphql.CollectedField, path ast.Path, source string, l layers) (interface{}, error) {
	if override == nil || l.null {
		return nil, nil
	}

	if typ.Elem != nil {
		items, ok := override.([]interface{})
		if !ok {
			return nil, r.shapeError(path, typ, cf, source, fmt.Sprintf("expected a list for %s, got %T", typ.String(), override))
		}
		curItems, _ := cur.([]interface{})

		out := make([]interface{}, len(items))
		for i, item := range items {
			itemPath := appendPath(path, ast.PathIndex(i))
			var base interface{}
			if i < len(curItems) {
				base = curItems[i]
			} else {
				var err error
				base, err = r.value(itemPath, typ.Elem, cf, l.item(i))
				if err != nil {
					return nil, err
				}
			}
			v, err := r.mergeValue(base, item, typ.Elem, cf, itemPath, source, l.item(i))
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
	if def.IsLeafType() {
		return override, nil
	}

	ovMap, ok := override.(map[string]interface{})
	if !ok {
		return nil, r.shapeError(path, typ, cf, source, fmt.Sprintf("expected an object for %s, got %T", typ.String(), override))
	}

	curMap, _ := cur.(map[string]interface{})
	want, _ := ovMap[typenameKey].(string)
	if curMap == nil || (want != "" && want != curMap[typenameKey]) {
		fresh, err := r.composite(path, def, cf, l, want, source)
		if err != nil {
			return nil, err
		}
		curMap = fresh
	}

	typeName, _ := curMap[typenameKey].(string)
	concrete := r.p.schema.GetType(typeName)
	if concrete == nil {
		return nil, r.mismatch(path, typeName, cf.Name)
	}
	fields, err := r.collect(concrete, cf.SelectionSet(), path)
	if err != nil {
		return nil, err
	}
	if err := r.merge(curMap, ovMap, concrete, fields, path, source, l); err != nil {
		return nil, err
	}
	return curMap, nil
}

func (r *resolution) shapeError(path ast.Path, typ *ast.Type, cf *graphql.CollectedField, source, reason string) error {
	return &OverrideShapeMismatchError{
		Operation: r.op.Name,
		Path:      path,
		TypeName:  typ.Name(),
		Field:     cf.Name,
		Source:    source,
		Reason:    reason,
	}
}

// applyCopy sets fields of obj from the operation's variables. Rules that
// name fields the query did not select are skipped, as are references to
// missing or null variables.
func (r *resolution) applyCopy(obj, rules map[string]interface{}, def *ast.Definition, fields []*graphql.CollectedField, path ast.Path, l layers) error {
	for _, key := range sortedKeys(rules) {
		matches := matchFields(fields, key)
		if len(matches) == 0 {
			r.logger.Debug("copy rule does not match a selected field",
				"operation", r.op.Name, "type", def.Name, "field", key)
			continue
		}

		for _, cf := range matches {
			if cf.Name == graphql.TypenameField {
				continue
			}
			childPath := appendPath(path, ast.PathName(cf.ResponseKey))

			switch rule := rules[key].(type) {
			case *copyLeaf:
				v, ok := lookupVariable(rule, r.vars)
				if !ok {
					r.logger.Debug("copy rule variable missing",
						"operation", r.op.Name, "path", childPath.String(), "variable", rule.ref)
					continue
				}
				merged, err := r.mergeValue(obj[cf.ResponseKey], deepCopyValue(v), cf.Definition.Type, cf, childPath, SourceVariables, l.field(cf))
				if err != nil {
					return err
				}
				obj[cf.ResponseKey] = merged

			case map[string]interface{}:
				if err := r.applyCopyValue(obj[cf.ResponseKey], rule, cf, childPath, l.field(cf)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// applyCopyValue applies nested rules to an object, or to every object of a list.
func (r *resolution) applyCopyValue(value interface{}, rules map[string]interface{}, cf *graphql.CollectedField, path ast.Path, l layers) error {
	switch v := value.(type) {
	case map[string]interface{}:
		typeName, _ := v[typenameKey].(string)
		def := r.p.schema.GetType(typeName)
		if def == nil {
			return nil
		}
		fields, err := r.collect(def, cf.SelectionSet(), path)
		if err != nil {
			return err
		}
		return r.applyCopy(v, rules, def, fields, path, l)

	case []interface{}:
		for i, item := range v {
			if err := r.applyCopyValue(item, rules, cf, appendPath(path, ast.PathIndex(i)), l.item(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
