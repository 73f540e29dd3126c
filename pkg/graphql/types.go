package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// GraphQLRequest represents an intercepted GraphQL request.
type GraphQLRequest struct {
	// Query is the GraphQL document.
	Query string `json:"query"`
	// OperationName selects the operation in a multi-operation document.
	OperationName string `json:"operationName,omitempty"`
	// Variables are the variable values sent with the request.
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Response is the transport-facing result of resolving one operation:
// either data or errors, never both.
type Response struct {
	// Data holds the resolved selection set of the operation.
	Data map[string]interface{} `json:"data,omitempty"`
	// Errors holds the failures that prevented resolution.
	Errors gqlerror.List `json:"errors,omitempty"`
	// Extensions carries additional response metadata.
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// HasErrors reports whether the response carries errors.
func (r *Response) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// ErrorResponse builds a response holding only errs.
func ErrorResponse(errs ...*gqlerror.Error) *Response {
	return &Response{Errors: gqlerror.List(errs)}
}

// Operation is a parsed and validated GraphQL operation. Operations are
// treated as immutable once created.
type Operation struct {
	// Name is the operation name, empty for anonymous operations.
	Name string
	// Type is query, mutation or subscription.
	Type ast.Operation
	// Document is the full parsed document including fragments.
	Document *ast.QueryDocument
	// Definition is the selected operation within Document.
	Definition *ast.OperationDefinition
	// Variables are the coerced values for the declared variables.
	Variables map[string]interface{}
	// RawVariables are the variables exactly as they were sent.
	RawVariables map[string]interface{}
	// Query is the source text of Document.
	Query string
}

// FieldPath represents a path to a field in the schema (e.g., "Query.user" or "User.posts").
type FieldPath struct {
	// TypeName is the parent type name (e.g., "Query", "User").
	TypeName string
	// FieldName is the field name.
	FieldName string
}

// String returns the string representation of the field path.
func (fp FieldPath) String() string {
	return fp.TypeName + "." + fp.FieldName
}

// ParseFieldPath parses a field path string (e.g., "Query.user") into a FieldPath.
func ParseFieldPath(path string) FieldPath {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return FieldPath{
				TypeName:  path[:i],
				FieldName: path[i+1:],
			}
		}
	}
	return FieldPath{FieldName: path}
}
