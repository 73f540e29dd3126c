package automock

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/getmockd/automock/pkg/graphql"
)

// Sentinel errors. Use errors.Is to classify resolution failures.
var (
	// ErrSchemaMismatch indicates the operation references a field, type or
	// argument the schema does not declare.
	ErrSchemaMismatch = graphql.ErrSchemaMismatch

	// ErrOverrideShapeMismatch indicates a mock, resolver or copied value
	// does not fit the schema at its position.
	ErrOverrideShapeMismatch = errors.New("override shape mismatch")

	// ErrUnsupportedScalar marks custom scalars generated as string
	// placeholders. It is logged, never returned.
	ErrUnsupportedScalar = errors.New("unsupported scalar")

	// ErrResolver wraps errors returned by a ResolverFunc or MockFunc.
	ErrResolver = errors.New("resolver failed")
)

// Override sources named in OverrideShapeMismatchError.
const (
	SourceMock      = "mock"
	SourceResolver  = "resolver"
	SourceVariables = "copyFieldsFromVariables"
)

// SchemaMismatchError reports where an operation left the schema.
type SchemaMismatchError struct {
	Operation string
	Path      ast.Path
	TypeName  string
	Field     string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in operation %q at %q: type %s has no field %q",
		e.Operation, pathString(e.Path), e.TypeName, e.Field)
}

// Is matches ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// OverrideShapeMismatchError reports an override value that does not fit
// the schema.
type OverrideShapeMismatchError struct {
	Operation string
	Path      ast.Path
	TypeName  string
	Field     string
	Source    string
	Reason    string
}

func (e *OverrideShapeMismatchError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = fmt.Sprintf("type %s has no field %q", e.TypeName, e.Field)
	}
	return fmt.Sprintf("%s for operation %q at %q: %s", e.Source, e.Operation, pathString(e.Path), reason)
}

// Is matches ErrOverrideShapeMismatch.
func (e *OverrideShapeMismatchError) Is(target error) bool {
	return target == ErrOverrideShapeMismatch
}

// ResolverError wraps a failure returned by user code.
type ResolverError struct {
	Operation string
	Path      ast.Path
	TypeName  string
	Err       error
}

func (e *ResolverError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("mock for operation %q failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("resolver for %s in operation %q at %q failed: %v", e.TypeName, e.Operation, pathString(e.Path), e.Err)
}

// Unwrap returns both ErrResolver and the user error.
func (e *ResolverError) Unwrap() []error {
	return []error{ErrResolver, e.Err}
}

func pathString(p ast.Path) string {
	if len(p) == 0 {
		return "$"
	}
	return p.String()
}

// toGQLErrors converts a resolution error into located response errors.
func toGQLErrors(err error) gqlerror.List {
	var (
		reqErr      *graphql.RequestError
		mismatchErr *SchemaMismatchError
		shapeErr    *OverrideShapeMismatchError
		resolverErr *ResolverError
		fieldErr    *graphql.FieldError
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.GQLErrors()
	case errors.As(err, &mismatchErr):
		return gqlerror.List{graphql.WithCode(gqlerror.WrapPath(mismatchErr.Path, err), graphql.CodeSchemaMismatch)}
	case errors.As(err, &shapeErr):
		return gqlerror.List{graphql.WithCode(gqlerror.WrapPath(shapeErr.Path, err), graphql.CodeOverrideShapeError)}
	case errors.As(err, &resolverErr):
		return gqlerror.List{graphql.WithCode(gqlerror.WrapPath(resolverErr.Path, err), graphql.CodeInternalServerError)}
	case errors.As(err, &fieldErr), errors.Is(err, ErrSchemaMismatch):
		return gqlerror.List{graphql.WithCode(gqlerror.Wrap(err), graphql.CodeSchemaMismatch)}
	default:
		return gqlerror.List{graphql.WithCode(gqlerror.Wrap(err), graphql.CodeInternalServerError)}
	}
}
