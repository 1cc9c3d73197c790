// Package trace builds the OpenTelemetry tracer provider used to record
// screen container visibility passes.
package trace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name for container spans.
const TracerName = "screenstack/ui"

// Config selects the OTLP endpoint. An empty Endpoint falls back to
// OTEL_EXPORTER_OTLP_ENDPOINT; with neither set no spans leave the process.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Provider owns the SDK tracer provider.
type Provider struct {
	sdk       *sdktrace.TracerProvider
	exporting bool
}

// NewProvider creates a tracer provider, exporting over OTLP/HTTP when an
// endpoint is configured.
func NewProvider(ctx context.Context, cfg Config, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = "screenstack"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	all := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint != "" {
		exOpts := endpointOptions(endpoint, cfg.Insecure)
		exporter, err := otlptracehttp.New(ctx, exOpts...)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter for %s: %w", endpoint, err)
		}
		all = append(all, sdktrace.WithBatcher(exporter))
	}

	all = append(all, opts...)
	return &Provider{
		sdk:       sdktrace.NewTracerProvider(all...),
		exporting: endpoint != "",
	}, nil
}

// endpointOptions accepts either a full URL such as http://localhost:4318,
// the form OTEL_EXPORTER_OTLP_ENDPOINT uses, or a bare host:port.
func endpointOptions(endpoint string, insecure bool) []otlptracehttp.Option {
	if strings.Contains(endpoint, "://") {
		// The URL's scheme decides TLS and its path overrides /v1/traces.
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// Tracer returns the tracer for container spans.
func (p *Provider) Tracer() oteltrace.Tracer {
	return p.sdk.Tracer(TracerName)
}

// Exporting reports whether spans are sent to an OTLP endpoint.
func (p *Provider) Exporting() bool {
	return p.exporting
}

// Shutdown flushes pending spans and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
