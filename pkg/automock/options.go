package automock

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/getmockd/automock/pkg/recorder"
)

// DefaultListLength is the number of items synthesized for list fields.
const DefaultListLength = 2

// Option configures a Provider.
type Option func(*options)

type options struct {
	mocks          MockMap
	resolvers      ResolverMap
	copyRules      CopyFieldsFromVariables
	addTypename    *bool
	onCall         []OnCallFunc
	recorders      []recorder.Recorder
	logger         *slog.Logger
	listLength     int
	tracerProvider trace.TracerProvider
}

// WithMocks sets the per-operation mocks.
func WithMocks(mocks MockMap) Option {
	return func(o *options) {
		for name, m := range mocks {
			if o.mocks == nil {
				o.mocks = make(MockMap)
			}
			o.mocks[name] = m
		}
	}
}

// WithResolvers sets the per-type resolvers.
func WithResolvers(resolvers ResolverMap) Option {
	return func(o *options) {
		for name, r := range resolvers {
			if o.resolvers == nil {
				o.resolvers = make(ResolverMap)
			}
			o.resolvers[name] = r
		}
	}
}

// WithCopyFieldsFromVariables sets the copy-from-variables rules.
func WithCopyFieldsFromVariables(rules CopyFieldsFromVariables) Option {
	return func(o *options) {
		for name, r := range rules {
			if o.copyRules == nil {
				o.copyRules = make(CopyFieldsFromVariables)
			}
			o.copyRules[name] = r
		}
	}
}

// WithAddTypename sets whether objects carry __typename. Leaving it unset
// behaves like WithAddTypename(true).
func WithAddTypename(enabled bool) Option {
	return func(o *options) {
		o.addTypename = &enabled
	}
}

// WithOnCall registers a function notified after every intercepted operation.
func WithOnCall(fn OnCallFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.onCall = append(o.onCall, fn)
		}
	}
}

// WithRecorder registers an additional call recorder.
func WithRecorder(r recorder.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorders = append(o.recorders, r)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithListLength sets how many items list fields get when no override
// fixes the length. Values below zero are ignored.
func WithListLength(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.listLength = n
		}
	}
}

// WithTracerProvider sets the tracer provider. The default is the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}
