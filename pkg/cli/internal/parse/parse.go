// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to '='.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{'='}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Variables decodes a JSON object of GraphQL variables. Blank input yields
// nil.
func Variables(data []byte) (map[string]interface{}, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("variables must be a JSON object: %w", err)
	}
	vars, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("variables must be a JSON object, got %T", v)
	}
	return vars, nil
}

// VariableAssignments parses repeated name=value assignments into vars.
// A value that is valid JSON is decoded; anything else is taken as a string.
func VariableAssignments(vars map[string]interface{}, assignments []string) (map[string]interface{}, error) {
	if len(assignments) == 0 {
		return vars, nil
	}
	if vars == nil {
		vars = make(map[string]interface{}, len(assignments))
	}
	for _, a := range assignments {
		name, raw, ok := KeyValue(a, '=')
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q: expected name=value", a)
		}
		value, err := oj.ParseString(raw)
		if err != nil {
			value = raw
		}
		vars[name] = value
	}
	return vars, nil
}
