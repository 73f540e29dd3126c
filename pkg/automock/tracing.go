package automock

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/getmockd/automock/pkg/graphql"
)

const (
	tracerName      = "github.com/getmockd/automock"
	resolveSpanName = "automock.Resolve"
)

// Span attribute keys.
const (
	AttrOperationName = attribute.Key("graphql.operation.name")
	AttrOperationType = attribute.Key("graphql.operation.type")
	AttrMocked        = attribute.Key("automock.mocked")
)

func (p *Provider) startSpan(ctx context.Context, op *graphql.Operation, mocked bool) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, resolveSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrOperationName.String(op.Name),
			AttrOperationType.String(string(op.Type)),
			AttrMocked.Bool(mocked),
		),
	)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
