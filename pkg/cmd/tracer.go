package cmd

import (
	"context"
	"fmt"

	"github.com/dukex/projecthub/pkg/catalog"
	"github.com/dukex/projecthub/pkg/config"
	"github.com/dukex/projecthub/pkg/otelhelper"
	"go.opentelemetry.io/otel/trace"
)

// NewTracer exports spans over OTLP/HTTP when tracing is enabled. The exporter reads the
// standard OTEL_EXPORTER_OTLP_* variables.
//
// nolint:ireturn
func NewTracer(ctx context.Context, cfg config.Config) (trace.Tracer, otelhelper.ShutdownFunc, error) {
	if !cfg.Tracing {
		return otelhelper.NoopTracer(), func(context.Context) error { return nil }, nil
	}

	tracer, shutdown, err := otelhelper.NewTracer(ctx, cfg.ServiceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	return tracer, shutdown, nil
}

// NewCatalog returns the embedded catalog unless an override file is configured.
func NewCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return cat, nil
}
