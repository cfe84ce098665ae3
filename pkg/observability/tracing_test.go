package observability

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

func newRecordedListener() (*TraceListener, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	return NewTraceListener(), sr
}

func ordersIdentity() provider.Identity {
	return provider.Identity{Name: "orders", Provider: "postgres"}
}

func TestTraceListenerSuccessfulOpen(t *testing.T) {
	l, sr := newRecordedListener()

	l.OnOpening(ordersIdentity())
	l.OnOpened(ordersIdentity(), 0)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "connshare.open", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestTraceListenerRetriedOpen(t *testing.T) {
	l, sr := newRecordedListener()

	attemptErr := stderrors.New("refused")

	// Two failed attempts, then success: one span for the whole sequence.
	l.OnOpening(ordersIdentity())
	l.OnOpenError(ordersIdentity(), 0, attemptErr)
	l.OnOpening(ordersIdentity())
	l.OnOpenError(ordersIdentity(), 1, attemptErr)
	l.OnOpening(ordersIdentity())
	l.OnOpened(ordersIdentity(), 2)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestTraceListenerExhaustedOpen(t *testing.T) {
	l, sr := newRecordedListener()

	attemptErr := stderrors.New("refused")

	l.OnOpening(ordersIdentity())
	l.OnOpenError(ordersIdentity(), 0, attemptErr)

	agg := errors.NewAggregateOpenError([]error{errors.NewOpenError(0, attemptErr)})
	l.OnOpenError(ordersIdentity(), 1, agg)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
