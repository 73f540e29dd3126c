package automock

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/automock/pkg/graphql"
	"github.com/getmockd/automock/pkg/recorder"
)

// Mock supplies the partial response for one operation instance.
type Mock interface {
	MockData(ctx context.Context, op *graphql.Operation) (map[string]interface{}, error)
}

// Literal is a fixed partial response. It is copied before use, so the same
// Literal can back any number of resolutions.
type Literal map[string]interface{}

// MockData returns a deep copy of l.
func (l Literal) MockData(context.Context, *graphql.Operation) (map[string]interface{}, error) {
	return deepCopyMap(l), nil
}

// MockFunc builds the partial response from the operation, typically from
// its variables. It is invoked once per resolution.
type MockFunc func(ctx context.Context, op *graphql.Operation) (map[string]interface{}, error)

// MockData calls f.
func (f MockFunc) MockData(ctx context.Context, op *graphql.Operation) (map[string]interface{}, error) {
	return f(ctx, op)
}

// MockMap maps operation names to their mocks.
type MockMap map[string]Mock

// ResolveInfo describes the object a resolver is called for.
type ResolveInfo struct {
	// Operation is the operation being resolved.
	Operation *graphql.Operation
	// Schema is the provider's schema.
	Schema *graphql.Schema
	// Path is the response path of the object.
	Path ast.Path
	// TypeName is the concrete object type.
	TypeName string
	// FieldName is the schema field that produced the object, empty at the root.
	FieldName string
}

// ResolverFunc returns field overrides for one object of a type. parent is
// a copy of the object synthesized so far and args are the arguments of
// the field that produced it (nil at the root). A returned error fails the
// whole resolution.
type ResolverFunc func(ctx context.Context, parent map[string]interface{}, args map[string]interface{}, info ResolveInfo) (map[string]interface{}, error)

// ResolverMap maps object type names to their resolvers.
type ResolverMap map[string]ResolverFunc

// CopyRules mirrors the response shape. Each string leaf names the variable
// whose value is copied to that position, as a JSONPath relative to the
// variables object ("id", "input.id", "$.ids[0]"). Keys may be dotted
// ("user.id") as a shorthand for nesting.
type CopyRules map[string]interface{}

// CopyFieldsFromVariables maps operation names to their copy rules. Rules
// under the "*" key apply to every operation; operation-specific rules win
// where both name the same position.
type CopyFieldsFromVariables map[string]CopyRules

// WildcardOperation is the CopyFieldsFromVariables key matching every operation.
const WildcardOperation = "*"

// OnCallFunc is notified once per intercepted operation.
type OnCallFunc func(call recorder.Call)
