package main

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cwbudde/fftcheck"
)

const serviceName = "fftcheck"

// startTracing returns driver options that export spans to path with the
// stdout exporter, and a shutdown func that flushes and closes the file.
// An empty path disables tracing.
func startTracing(path string) ([]fftcheck.Option, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)

	shutdown := func() error {
		err := tp.Shutdown(context.Background())
		if cerr := f.Close(); err == nil {
			err = cerr
		}

		return err
	}

	return []fftcheck.Option{fftcheck.WithTracer(tp.Tracer(serviceName))}, shutdown, nil
}
