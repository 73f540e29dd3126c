package config

import (
	"context"
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/automock/pkg/graphql"
)

// ExprMock is a mock whose partial response is an expr-lang expression
// evaluated per operation against
//
//	operationName  string
//	variables      map[string]interface{}
//
// The expression must produce a map.
type ExprMock struct {
	source  string
	program *vm.Program
}

// exprEnv is the compile-time shape of the evaluation environment.
func exprEnv(operationName string, variables map[string]interface{}) map[string]interface{} {
	if variables == nil {
		variables = map[string]interface{}{}
	}
	return map[string]interface{}{
		"operationName": operationName,
		"variables":     variables,
	}
}

// CompileExprMock compiles source once so it can be evaluated for every
// operation instance.
func CompileExprMock(source string) (*ExprMock, error) {
	program, err := expr.Compile(source,
		expr.Env(exprEnv("", nil)),
		expr.AsKind(reflect.Map),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", source, err)
	}
	return &ExprMock{source: source, program: program}, nil
}

// Source returns the expression text.
func (m *ExprMock) Source() string {
	return m.source
}

// MockData evaluates the expression for op.
func (m *ExprMock) MockData(_ context.Context, op *graphql.Operation) (map[string]interface{}, error) {
	vars := op.RawVariables
	if vars == nil {
		vars = op.Variables
	}

	result, err := expr.Run(m.program, exprEnv(op.Name, vars))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", m.source, err)
	}

	switch v := result.(type) {
	case map[string]interface{}:
		return v, nil
	case nil:
		return nil, nil
	}

	rv := reflect.ValueOf(result)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("eval %q: expected a map, got %T", m.source, result)
}
