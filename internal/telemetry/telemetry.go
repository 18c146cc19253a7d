package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Editorly/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/fx"
)

// Provider owns the tracer provider; a nil provider means tracing is off.
type Provider struct {
	tp *sdktrace.TracerProvider
}

func (p *Provider) Enabled() bool { return p != nil && p.tp != nil }

func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

func buildExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch kind {
	case "otlp":
		// Endpoint and headers come from the standard OTEL_EXPORTER_OTLP_* env vars.
		return otlptracehttp.New(ctx)
	case "", "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown OTEL_EXPORTER %q", kind)
	}
}

func sampleRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// NewProvider installs a global tracer provider when OTEL_ENABLED is set and
// flushes it on shutdown.
func NewProvider(lc fx.Lifecycle, cfg *config.Config) (*Provider, error) {
	if !cfg.Telemetry.Enabled {
		return &Provider{}, nil
	}
	ctx := context.Background()

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.Telemetry.ServiceName),
		attribute.String("deployment.environment", cfg.Env),
	))
	if err != nil {
		log.Warn().Err(err).Msg("otel resource init failed (continuing)")
	}
	exporter, err := buildExporter(ctx, cfg.Telemetry.Exporter)
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.Telemetry.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Info().Str("service", cfg.Telemetry.ServiceName).Str("exporter", cfg.Telemetry.Exporter).Msg("otel tracing initialized")

	p := &Provider{tp: tp}
	lc.Append(fx.Hook{OnStop: p.Shutdown})
	return p, nil
}
