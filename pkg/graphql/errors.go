package graphql

import (
	"errors"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Error codes placed in the "code" extension of response errors.
const (
	CodeParseFailed         = "GRAPHQL_PARSE_FAILED"
	CodeValidationFailed    = "GRAPHQL_VALIDATION_FAILED"
	CodeBadUserInput        = "BAD_USER_INPUT"
	CodeOperationNotFound   = "OPERATION_NOT_FOUND"
	CodeSchemaMismatch      = "SCHEMA_MISMATCH"
	CodeOverrideShapeError  = "OVERRIDE_SHAPE_MISMATCH"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

var (
	// ErrParse indicates the document is not syntactically valid GraphQL.
	ErrParse = errors.New("graphql: parse error")
	// ErrSchemaMismatch indicates the operation references a field, type or
	// argument the schema does not declare.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrInvalidVariables indicates variables could not be coerced to their declared types.
	ErrInvalidVariables = errors.New("graphql: invalid variables")
	// ErrOperationNotFound indicates the requested operation is not in the document.
	ErrOperationNotFound = errors.New("graphql: operation not found")
)

// RequestError is returned by ParseOperation. Kind is one of the package
// sentinels and Errors holds the located GraphQL errors behind it.
type RequestError struct {
	Kind   error
	Code   string
	Errors gqlerror.List
}

func (e *RequestError) Error() string {
	if len(e.Errors) == 0 {
		return e.Kind.Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Message)
	}
	return e.Kind.Error() + ": " + strings.Join(msgs, "; ")
}

// Unwrap exposes Kind so errors.Is matches the sentinel.
func (e *RequestError) Unwrap() error {
	return e.Kind
}

// GQLErrors returns the errors tagged with the request error code.
func (e *RequestError) GQLErrors() gqlerror.List {
	if len(e.Errors) == 0 {
		return gqlerror.List{WithCode(gqlerror.Errorf("%s", e.Kind.Error()), e.Code)}
	}
	out := make(gqlerror.List, 0, len(e.Errors))
	for _, err := range e.Errors {
		out = append(out, WithCode(err, e.Code))
	}
	return out
}

func newRequestError(kind error, code string, errs ...*gqlerror.Error) *RequestError {
	return &RequestError{Kind: kind, Code: code, Errors: errs}
}

// WithCode sets extensions.code on err unless one is already present.
func WithCode(err *gqlerror.Error, code string) *gqlerror.Error {
	if err.Extensions == nil {
		err.Extensions = map[string]interface{}{}
	}
	if _, ok := err.Extensions["code"]; !ok {
		err.Extensions["code"] = code
	}
	return err
}
