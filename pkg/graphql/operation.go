package graphql

import (
	"errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// ParseOperation parses req.Query, validates it against schema, selects the
// operation named by req.OperationName and coerces its variables.
//
// A document holding several operations requires OperationName.
func ParseOperation(schema *Schema, req *GraphQLRequest) (*Operation, error) {
	if req == nil || req.Query == "" {
		return nil, newRequestError(ErrParse, CodeParseFailed, gqlerror.Errorf("query is required"))
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "operation", Input: req.Query})
	if err != nil {
		var gqlErr *gqlerror.Error
		if !errors.As(err, &gqlErr) {
			gqlErr = gqlerror.Wrap(err)
		}
		return nil, newRequestError(ErrParse, CodeParseFailed, gqlErr)
	}

	if errs := validator.ValidateWithRules(schema.AST(), doc, nil); len(errs) > 0 {
		return nil, newRequestError(ErrSchemaMismatch, CodeValidationFailed, errs...)
	}

	def, err := selectOperation(doc, req.OperationName)
	if err != nil {
		return nil, err
	}

	vars, err := validator.VariableValues(schema.AST(), def, req.Variables)
	if err != nil {
		return nil, newRequestError(ErrInvalidVariables, CodeBadUserInput, gqlerror.WrapIfUnwrapped(err))
	}

	return &Operation{
		Name:         def.Name,
		Type:         def.Operation,
		Document:     doc,
		Definition:   def,
		Variables:    vars,
		RawVariables: req.Variables,
		Query:        req.Query,
	}, nil
}

func selectOperation(doc *ast.QueryDocument, name string) (*ast.OperationDefinition, error) {
	if name != "" {
		if def := doc.Operations.ForName(name); def != nil {
			return def, nil
		}
		return nil, newRequestError(ErrOperationNotFound, CodeOperationNotFound,
			gqlerror.Errorf("operation %q not found", name))
	}

	switch len(doc.Operations) {
	case 0:
		return nil, newRequestError(ErrOperationNotFound, CodeOperationNotFound,
			gqlerror.Errorf("no operation found in query"))
	case 1:
		return doc.Operations[0], nil
	default:
		return nil, newRequestError(ErrOperationNotFound, CodeOperationNotFound,
			gqlerror.Errorf("operationName is required when the document holds %d operations", len(doc.Operations)))
	}
}

// RootType returns the schema type the operation's selection set applies to.
func (o *Operation) RootType(schema *Schema) *ast.Definition {
	return schema.RootType(o.Type)
}

// TypeName returns the capitalized operation kind, e.g. "Query".
func (o *Operation) TypeName() string {
	switch o.Type {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}
