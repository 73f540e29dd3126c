package automocktest

import (
	"context"
	"sync"
	"testing"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
	"github.com/getmockd/automock/pkg/recorder"
)

// Harness is a test helper around an automock Provider. Mocks registered
// through Mock take effect on the next operation.
type Harness struct {
	t      testing.TB
	schema *graphql.Schema
	opts   []automock.Option
	calls  *recorder.Store

	mu       sync.Mutex
	mocks    automock.MockMap
	provider *automock.Provider
}

// New parses sdl and creates a Harness. The test fails immediately if the
// schema does not load.
func New(t testing.TB, sdl string, opts ...automock.Option) *Harness {
	t.Helper()

	schema, err := graphql.ParseSchema(sdl)
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return NewWithSchema(t, schema, opts...)
}

// NewWithSchema creates a Harness for an already parsed schema.
func NewWithSchema(t testing.TB, schema *graphql.Schema, opts ...automock.Option) *Harness {
	t.Helper()

	return &Harness{
		t:      t,
		schema: schema,
		opts:   opts,
		calls:  recorder.NewStore(),
		mocks:  make(automock.MockMap),
	}
}

// Provider returns the provider reflecting every mock registered so far.
func (h *Harness) Provider() *automock.Provider {
	h.t.Helper()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.provider != nil {
		return h.provider
	}

	opts := make([]automock.Option, 0, len(h.opts)+2)
	opts = append(opts, h.opts...)
	opts = append(opts, automock.WithMocks(h.mocks), automock.WithRecorder(h.calls))

	p, err := automock.New(h.schema, opts...)
	if err != nil {
		h.t.Fatalf("failed to create provider: %v", err)
	}
	h.provider = p
	return p
}

// Mock starts a mock for the named operation. Call Reply to register it.
func (h *Harness) Mock(operation string) *MockBuilder {
	return &MockBuilder{
		harness:   h,
		operation: operation,
		data:      make(map[string]interface{}),
	}
}

// addMock registers m, replacing any earlier mock for the operation.
func (h *Harness) addMock(operation string, m automock.Mock) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.mocks[operation] = m
	h.provider = nil
}

// Execute sends a request and returns the response without judging it.
func (h *Harness) Execute(req *graphql.GraphQLRequest) *graphql.Response {
	h.t.Helper()
	return h.Provider().Execute(context.Background(), req)
}

// Query executes query and returns its data. Response errors fail the test.
func (h *Harness) Query(query string, vars map[string]interface{}) map[string]interface{} {
	h.t.Helper()
	return h.QueryOperation(query, "", vars)
}

// QueryOperation is Query for one named operation of a multi-operation
// document.
func (h *Harness) QueryOperation(query, operationName string, vars map[string]interface{}) map[string]interface{} {
	h.t.Helper()

	resp := h.Execute(&graphql.GraphQLRequest{Query: query, OperationName: operationName, Variables: vars})
	if resp.HasErrors() {
		h.t.Fatalf("unexpected errors: %v", resp.Errors)
	}
	return resp.Data
}

// QueryErr executes query and returns its errors. A response without
// errors fails the test.
func (h *Harness) QueryErr(query string, vars map[string]interface{}) gqlerror.List {
	h.t.Helper()

	resp := h.Execute(&graphql.GraphQLRequest{Query: query, Variables: vars})
	if !resp.HasErrors() {
		h.t.Fatalf("expected errors, got data: %v", resp.Data)
	}
	return resp.Errors
}

// Calls returns every operation the harness has seen, oldest first.
func (h *Harness) Calls() []recorder.Call {
	return h.calls.Calls()
}

// LastCall returns the most recent call. The test fails if there is none.
func (h *Harness) LastCall() recorder.Call {
	h.t.Helper()

	call, ok := h.calls.Last()
	if !ok {
		h.t.Fatalf("expected at least one call, got none")
	}
	return call
}

// Reset clears all mocks and the call history.
func (h *Harness) Reset() {
	h.mu.Lock()
	h.mocks = make(automock.MockMap)
	h.provider = nil
	h.mu.Unlock()

	h.calls.Clear()
}

// AssertCalled asserts that operation was executed at least once.
func (h *Harness) AssertCalled(t testing.TB, operation string) {
	t.Helper()

	if len(h.calls.ForOperation(operation)) == 0 {
		t.Errorf("expected operation %q to be called, but it was not called", operation)
	}
}

// AssertCallCount asserts that operation was executed exactly n times.
func (h *Harness) AssertCallCount(t testing.TB, operation string, n int) {
	t.Helper()

	count := len(h.calls.ForOperation(operation))
	if count != n {
		t.Errorf("expected operation %q to be called %d times, but was called %d times", operation, n, count)
	}
}

// AssertNotCalled asserts that operation was never executed.
func (h *Harness) AssertNotCalled(t testing.TB, operation string) {
	t.Helper()

	count := len(h.calls.ForOperation(operation))
	if count > 0 {
		t.Errorf("expected operation %q to not be called, but it was called %d times", operation, count)
	}
}
