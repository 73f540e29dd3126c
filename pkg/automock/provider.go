package automock

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/getmockd/automock/pkg/graphql"
	"github.com/getmockd/automock/pkg/logging"
	"github.com/getmockd/automock/pkg/recorder"
	"github.com/getmockd/automock/pkg/seed"
)

// Provider resolves operations against one schema and one immutable
// configuration. It is safe for concurrent use; each resolution works on
// its own state and only the call history is shared.
type Provider struct {
	schema       *graphql.Schema
	mocks        MockMap
	resolvers    ResolverMap
	copyRules    map[string]map[string]interface{}
	copyWildcard map[string]interface{}
	addTypename  *bool
	listLength   int
	onCall       []OnCallFunc
	recorder     recorder.Recorder
	calls        *recorder.Store
	logger       *slog.Logger
	tracer       trace.Tracer

	// warned tracks custom scalars already reported as unsupported.
	warned sync.Map
}

// New creates a Provider for schema.
func New(schema *graphql.Schema, opts ...Option) (*Provider, error) {
	if schema == nil {
		return nil, fmt.Errorf("automock: schema is required")
	}

	o := &options{listLength: DefaultListLength}
	for _, opt := range opts {
		opt(o)
	}

	for name, m := range o.mocks {
		if isNilMock(m) {
			return nil, fmt.Errorf("automock: mock for operation %q is nil", name)
		}
	}

	copyRules, wildcard, err := compileCopyFieldsFromVariables(o.copyRules)
	if err != nil {
		return nil, fmt.Errorf("automock: invalid copyFieldsFromVariables: %w", err)
	}

	tp := o.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	p := &Provider{
		schema:       schema,
		mocks:        o.mocks,
		resolvers:    o.resolvers,
		copyRules:    copyRules,
		copyWildcard: wildcard,
		addTypename:  o.addTypename,
		listLength:   o.listLength,
		onCall:       o.onCall,
		calls:        recorder.NewStore(),
		logger:       logging.Component(o.logger, "automock"),
		tracer:       tp.Tracer(tracerName),
	}
	p.recorder = append(recorder.Multi{p.calls}, o.recorders...)

	return p, nil
}

// isNilMock reports whether m is nil or wraps a nil func or pointer.
func isNilMock(m Mock) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// MustNew is like New but panics on error.
func MustNew(schema *graphql.Schema, opts ...Option) *Provider {
	p, err := New(schema, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Schema returns the provider's schema.
func (p *Provider) Schema() *graphql.Schema {
	return p.schema
}

// Calls returns every operation this provider has intercepted, in order.
func (p *Provider) Calls() []recorder.Call {
	return p.calls.Calls()
}

// CallStore exposes the provider's call history.
func (p *Provider) CallStore() *recorder.Store {
	return p.calls
}

// Execute is the transport-facing entry point: it parses req, resolves it
// and reports every failure in the response's errors instead of returning
// it. Every request, including failed ones, is recorded.
func (p *Provider) Execute(ctx context.Context, req *graphql.GraphQLRequest) *graphql.Response {
	start := time.Now()

	op, err := graphql.ParseOperation(p.schema, req)
	if err != nil {
		resp := &graphql.Response{Errors: toGQLErrors(err)}
		name := ""
		var vars map[string]interface{}
		if req != nil {
			name = req.OperationName
			vars = req.Variables
		}
		p.logger.Warn("operation rejected", "operation", name, "error", err)
		p.notify(recorder.Call{
			OperationName: name,
			Variables:     deepCopyMap(vars),
			Response:      resp,
			Duration:      time.Since(start),
		})
		return cloneResponse(resp)
	}

	resp, _ := p.Resolve(ctx, op)
	return resp
}

// Resolve synthesizes the response for an already-parsed operation. On
// failure it returns both an error response and the error. The call is
// recorded either way.
func (p *Provider) Resolve(ctx context.Context, op *graphql.Operation) (*graphql.Response, error) {
	if op == nil || op.Definition == nil {
		return nil, fmt.Errorf("automock: operation is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	mock, mocked := p.mocks[op.Name]

	ctx, span := p.startSpan(ctx, op, mocked)
	defer span.End()

	data, err := p.resolve(ctx, op, mock)

	var resp *graphql.Response
	if err != nil {
		resp = &graphql.Response{Errors: toGQLErrors(err)}
		recordSpanError(span, err)
		p.logger.Warn("resolution failed", "operation", op.Name, "error", err)
	} else {
		annotateTypename(data, typenameEnabled(p.addTypename))
		resp = &graphql.Response{Data: data}
		p.logger.Debug("resolved operation", "operation", op.Name, "mocked", mocked, "duration", time.Since(start))
	}

	p.notify(recorder.Call{
		OperationName: op.Name,
		Variables:     deepCopyMap(op.RawVariables),
		Operation:     op,
		Response:      cloneResponse(resp),
		Duration:      time.Since(start),
		Mocked:        mocked,
	})

	return resp, err
}

func (p *Provider) resolve(ctx context.Context, op *graphql.Operation, mock Mock) (map[string]interface{}, error) {
	var mockData map[string]interface{}
	if mock != nil {
		data, err := mock.MockData(ctx, op)
		if err != nil {
			return nil, &ResolverError{Operation: op.Name, Err: err}
		}
		mockData = deepCopyMap(data)
		p.logger.Debug("applied mock", "operation", op.Name)
	}

	r := &resolution{
		p:      p,
		ctx:    ctx,
		op:     op,
		seeder: seed.New(op.Name, op.RawVariables),
		vars:   copySource(op),
		logger: p.logger,
	}
	return r.run(mockData, p.rulesFor(op.Name))
}

// rulesFor returns the compiled copy rules for an operation name.
func (p *Provider) rulesFor(name string) map[string]interface{} {
	if rules, ok := p.copyRules[name]; ok {
		return rules
	}
	return p.copyWildcard
}

// copySource merges the variables as sent with their coerced values, so
// declared defaults are visible to copy rules.
func copySource(op *graphql.Operation) map[string]interface{} {
	out := make(map[string]interface{}, len(op.Variables)+len(op.RawVariables))
	for k, v := range op.Variables {
		out[k] = v
	}
	for k, v := range op.RawVariables {
		out[k] = v
	}
	return out
}

func (p *Provider) notify(call recorder.Call) {
	p.recorder.Record(call)
	for _, fn := range p.onCall {
		fn(call)
	}
}

func (p *Provider) warnUnsupportedScalar(name string) {
	if _, loaded := p.warned.LoadOrStore(name, struct{}{}); loaded {
		return
	}
	p.logger.Warn("custom scalar generated as string placeholder",
		"scalar", name, "error", ErrUnsupportedScalar)
}

func cloneResponse(resp *graphql.Response) *graphql.Response {
	if resp == nil {
		return nil
	}
	out := &graphql.Response{
		Data:       deepCopyMap(resp.Data),
		Errors:     resp.Errors,
		Extensions: deepCopyMap(resp.Extensions),
	}
	return out
}
