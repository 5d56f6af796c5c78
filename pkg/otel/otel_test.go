package otel

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"restaurant/pkg/logger"
)

func TestAddSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	assert.Empty(t, GetTraceID(ctx))

	ctx, span := AddSpan(ctx, "placeOrder")
	id := GetTraceID(ctx)
	span.End()

	require.Len(t, rec.Ended(), 1)
	assert.Equal(t, "placeOrder", rec.Ended()[0].Name())
	assert.Equal(t, rec.Ended()[0].SpanContext().TraceID().String(), id)
}

func TestInitTracingWithoutCollector(t *testing.T) {
	log := logger.New(&bytes.Buffer{}, logger.LevelError, "test", nil)
	tp, shutdown, err := InitTracing(log, Config{ServiceName: "test", Probability: 1})
	require.NoError(t, err)
	defer shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "root")
	defer span.End()

	h := http.Header{}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(h))
	remote := ExtractRemote(context.Background(), propagation.HeaderCarrier(h))
	assert.Equal(t, GetTraceID(ctx), GetTraceID(remote))
}
