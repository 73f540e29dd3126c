// Package recorder keeps the ordered history of resolved GraphQL operations.
//
// Every operation the automock provider intercepts produces one Call, holding
// the operation and the response that was returned for it. Tests read the
// history to assert which operations ran, with which variables, and what
// they received.
//
//	store := recorder.NewStore()
//	provider := automock.New(schema, automock.WithRecorder(store))
//	// ... run code under test ...
//	last, ok := store.Last()
//
// Store is safe for concurrent use. Calls are kept in interception order and
// numbered from 1.
package recorder
