package automock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// copyLeaf is a compiled variable reference.
type copyLeaf struct {
	ref  string
	expr jp.Expr
}

// compileCopyRules expands dotted keys and parses every variable reference.
// The result is a tree of map[string]interface{} with *copyLeaf leaves.
func compileCopyRules(rules map[string]interface{}) (map[string]interface{}, error) {
	tree := make(map[string]interface{})
	for _, key := range sortedKeys(rules) {
		segments := strings.Split(key, ".")
		for _, s := range segments {
			if s == "" {
				return nil, fmt.Errorf("copy rule key %q has an empty segment", key)
			}
		}

		var node interface{}
		switch v := rules[key].(type) {
		case string:
			leaf, err := compileCopyLeaf(v)
			if err != nil {
				return nil, fmt.Errorf("copy rule %q: %w", key, err)
			}
			node = leaf
		case map[string]interface{}:
			sub, err := compileCopyRules(v)
			if err != nil {
				return nil, fmt.Errorf("copy rule %q: %w", key, err)
			}
			node = sub
		case CopyRules:
			sub, err := compileCopyRules(v)
			if err != nil {
				return nil, fmt.Errorf("copy rule %q: %w", key, err)
			}
			node = sub
		default:
			return nil, fmt.Errorf("copy rule %q: expected a variable reference or nested rules, got %T", key, v)
		}

		// Wrap node in the nesting described by the dotted key.
		for i := len(segments) - 1; i > 0; i-- {
			node = map[string]interface{}{segments[i]: node}
		}
		merged, err := mergeRuleNode(tree[segments[0]], node, key)
		if err != nil {
			return nil, err
		}
		tree[segments[0]] = merged
	}
	return tree, nil
}

func compileCopyLeaf(ref string) (*copyLeaf, error) {
	path := strings.TrimSpace(ref)
	if path == "" {
		return nil, fmt.Errorf("empty variable reference")
	}
	switch {
	case strings.HasPrefix(path, "$"):
	case strings.HasPrefix(path, "["):
		path = "$" + path
	default:
		path = "$." + path
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid variable reference %q: %w", ref, err)
	}
	return &copyLeaf{ref: ref, expr: expr}, nil
}

// mergeRuleNode combines two compiled nodes for the same position. Nested
// rules merge key by key; a leaf cannot share a position with nested rules.
func mergeRuleNode(existing, next interface{}, key string) (interface{}, error) {
	if existing == nil {
		return next, nil
	}
	a, aok := existing.(map[string]interface{})
	b, bok := next.(map[string]interface{})
	if !aok || !bok {
		return nil, fmt.Errorf("copy rule %q conflicts with another rule for the same field", key)
	}
	for k, v := range b {
		merged, err := mergeRuleNode(a[k], v, key)
		if err != nil {
			return nil, err
		}
		a[k] = merged
	}
	return a, nil
}

// overlayRules returns base with over laid on top; over wins wherever both
// name the same position. Neither input is modified.
func overlayRules(base, over map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		bm, bok := out[k].(map[string]interface{})
		om, ook := v.(map[string]interface{})
		if bok && ook {
			out[k] = overlayRules(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}

// compileCopyFieldsFromVariables compiles every operation's rules and folds
// the wildcard rules into each named operation.
func compileCopyFieldsFromVariables(all CopyFieldsFromVariables) (byOp map[string]map[string]interface{}, wildcard map[string]interface{}, err error) {
	byOp = make(map[string]map[string]interface{}, len(all))

	if rules, ok := all[WildcardOperation]; ok {
		wildcard, err = compileCopyRules(rules)
		if err != nil {
			return nil, nil, fmt.Errorf("operation %q: %w", WildcardOperation, err)
		}
	}

	for name, rules := range all {
		if name == WildcardOperation {
			continue
		}
		compiled, err := compileCopyRules(rules)
		if err != nil {
			return nil, nil, fmt.Errorf("operation %q: %w", name, err)
		}
		if wildcard != nil {
			compiled = overlayRules(wildcard, compiled)
		}
		byOp[name] = compiled
	}
	return byOp, wildcard, nil
}

// lookupVariable evaluates leaf against the variables. Missing and null
// values report false.
func lookupVariable(leaf *copyLeaf, vars map[string]interface{}) (interface{}, bool) {
	if len(vars) == 0 {
		return nil, false
	}
	results := leaf.expr.Get(vars)
	if len(results) == 0 || results[0] == nil {
		return nil, false
	}
	return results[0], true
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
