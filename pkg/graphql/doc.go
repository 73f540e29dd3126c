// Package graphql loads GraphQL schemas and turns intercepted requests into
// validated operations that the automock engine can resolve.
//
// It is a thin layer over gqlparser: schemas come from SDL strings or files,
// operation documents are parsed and validated against the schema, variables
// are coerced, and selection sets are collected into ordered response keys
// with fragments and @skip/@include applied.
//
// Basic usage:
//
//	schema, err := graphql.ParseSchema(`
//	    type Query {
//	        user(id: ID!): User
//	    }
//	    type User {
//	        id: ID!
//	        name: String!
//	    }
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	op, err := graphql.ParseOperation(schema, &graphql.GraphQLRequest{
//	    Query:     `query GetUser($id: ID!) { user(id: $id) { id name } }`,
//	    Variables: map[string]interface{}{"id": "42"},
//	})
//
// Errors returned by ParseOperation wrap one of ErrParse, ErrSchemaMismatch,
// ErrInvalidVariables or ErrOperationNotFound and carry the underlying
// gqlerror.List through RequestError.
package graphql
