// Package observability provides OpenTelemetry tracing for the connection
// manager's lifecycle events.
package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/connshare/pkg/connmanager"
	"github.com/ajitpratap0/connshare/pkg/errors"
	"github.com/ajitpratap0/connshare/pkg/provider"
)

// TraceListener opens one span per open sequence and annotates it with the
// individual attempts. It implements the manager's lifecycle listener
// interface; close events are left to the embedded no-op base.
type TraceListener struct {
	connmanager.BaseListener

	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

// NewTraceListener creates a listener on the global tracer provider.
func NewTraceListener() *TraceListener {
	return &TraceListener{
		tracer: otel.Tracer("github.com/ajitpratap0/connshare"),
		spans:  make(map[string]trace.Span),
	}
}

// OnOpening starts (or continues) the open span for an identity.
func (t *TraceListener) OnOpening(identity provider.Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, active := t.spans[identity.Name]; active {
		return
	}
	_, span := t.tracer.Start(context.Background(), "connshare.open",
		trace.WithAttributes(
			attribute.String("connection.name", identity.Name),
			attribute.String("connection.provider", identity.Provider),
		))
	t.spans[identity.Name] = span
}

// OnOpened closes the open span successfully.
func (t *TraceListener) OnOpened(identity provider.Identity, attempt int) {
	t.mu.Lock()
	span, ok := t.spans[identity.Name]
	delete(t.spans, identity.Name)
	t.mu.Unlock()

	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("open.attempts", attempt+1))
	span.SetStatus(codes.Ok, "")
	span.End()
}

// OnOpenError records a failed attempt on the span, ending it when the
// retry budget is exhausted.
func (t *TraceListener) OnOpenError(identity provider.Identity, attempt int, err error) {
	t.mu.Lock()
	span, ok := t.spans[identity.Name]
	if errors.IsAggregateOpen(err) {
		delete(t.spans, identity.Name)
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	span.RecordError(err, trace.WithAttributes(attribute.Int("open.attempt", attempt)))
	if errors.IsAggregateOpen(err) {
		span.SetStatus(codes.Error, err.Error())
		span.End()
	}
}
