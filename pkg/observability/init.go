package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	tracerProvider *sdktrace.TracerProvider
	initOnce       sync.Once
)

// InitStdoutTracing installs a stdout trace exporter as the global tracer
// provider. Intended for the CLI and local debugging; production deployments
// configure their own provider before creating listeners.
func InitStdoutTracing() error {
	var err error
	initOnce.Do(func() {
		var exporter *stdouttrace.Exporter
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return
		}
		tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
		)
		otel.SetTracerProvider(tracerProvider)
	})
	return err
}

// Shutdown flushes and stops the tracer provider installed by
// InitStdoutTracing.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	return tracerProvider.Shutdown(ctx)
}
