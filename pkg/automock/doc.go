// Package automock resolves GraphQL operations against a schema without a
// server, producing deterministic, schema-shaped responses.
//
// A Provider is built once from a schema and a set of options and is
// immutable afterwards. Each call to Resolve or Execute synthesizes a fresh
// response for one operation:
//
//   - leaves get reproducible values seeded by operation name, variables and
//     response path;
//   - every composite value then takes, in increasing precedence, the
//     fields returned by a type resolver, the fields copied from the
//     operation's variables, and the operation's mock;
//   - finally every object is tagged with __typename unless disabled.
//
// Example:
//
//	provider := automock.MustNew(schema,
//	    automock.WithMocks(automock.MockMap{
//	        "GetUser": automock.Literal{"user": map[string]interface{}{"name": "John Doe"}},
//	    }),
//	    automock.WithCopyFieldsFromVariables(automock.CopyFieldsFromVariables{
//	        "GetUser": {"user": map[string]interface{}{"id": "id"}},
//	    }),
//	)
//	resp := provider.Execute(ctx, &graphql.GraphQLRequest{
//	    Query:     `query GetUser($id: ID!) { user(id: $id) { id name email } }`,
//	    Variables: map[string]interface{}{"id": "42"},
//	})
package automock
