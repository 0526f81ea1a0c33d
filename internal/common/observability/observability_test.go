package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, ok := StartSpan(context.Background(), "generate-candidates", attribute.Int("count", 5))
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "validate-recommendations")
	EndSpan(failed, errors.New("lookup failed"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "generate-candidates", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("count", 5))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "lookup failed", spans[1].Status().Description)
}

func TestNew_WithoutJaeger(t *testing.T) {
	o, err := New("moviechain-test", "")
	require.NoError(t, err)
	assert.Nil(t, o.tracerProvider)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		o.RecordJobProcessed(ctx, "recommend-movies", "completed")
		o.RecordJobDuration(ctx, "recommend-movies", 12*time.Millisecond, "completed")
	})
	assert.NoError(t, o.Shutdown(ctx))
}

func TestNilObservability_IsSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordJobProcessed(context.Background(), "x", "failed")
		o.RecordJobDuration(context.Background(), "x", time.Second, "failed")
	})
}
