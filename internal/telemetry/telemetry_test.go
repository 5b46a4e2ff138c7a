package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_NoEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInstall_RecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := Install(exp, "test")
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, parent := Span(context.Background(), "run", "graph", "main", "dangling")
	_, child := Span(ctx, "compile")
	End(child, errors.New("boom"))
	End(parent, nil)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "compile", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent.SpanID())

	assert.Equal(t, "run", spans[1].Name)
	require.Len(t, spans[1].Attributes, 1)
	assert.Equal(t, "graph", string(spans[1].Attributes[0].Key))
	assert.Equal(t, "main", spans[1].Attributes[0].Value.AsString())
}
