// Package cli provides the command-line interface for automock.
//
// The cli package implements the automock commands:
//   - resolve: Synthesize the mocked response for a GraphQL operation
//   - validate: Check a configuration file and the schema it names
//   - schema: List the operations and types of a schema
//   - version: Show automock version
//
// Each command writes its result to stdout and diagnostics to stderr.
// Commands exit non-zero when resolution or validation fails.
package cli
