package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_NoEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	rec := tracetest.NewSpanRecorder()

	p, err := NewProvider(context.Background(), Config{ServiceName: "test"}, sdktrace.WithSpanProcessor(rec))
	require.NoError(t, err)
	assert.False(t, p.Exporting())

	_, span := p.Tracer().Start(context.Background(), "pass")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, TracerName, spans[0].InstrumentationScope().Name)

	var service string
	for _, kv := range spans[0].Resource().Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "test", service)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Endpoint(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Endpoint: "localhost:4318", Insecure: true})
	require.NoError(t, err)
	assert.True(t, p.Exporting())

	// Nothing was recorded, so shutdown does not need the collector.
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestProvider_NilShutdown(t *testing.T) {
	var p *Provider
	assert.NoError(t, p.Shutdown(context.Background()))
}

func collector(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/traces" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func exportOneSpan(t *testing.T, cfg Config) {
	t.Helper()
	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, p.Exporting())

	_, span := p.Tracer().Start(context.Background(), "pass")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_ExportsToEndpointURL(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	srv, hits := collector(t)

	exportOneSpan(t, Config{Endpoint: srv.URL})

	assert.Positive(t, hits.Load())
}

func TestNewProvider_ExportsToEnvEndpoint(t *testing.T) {
	srv, hits := collector(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)

	exportOneSpan(t, Config{})

	assert.Positive(t, hits.Load())
}

func TestNewProvider_ExportsToHostPort(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	srv, hits := collector(t)

	exportOneSpan(t, Config{Endpoint: srv.Listener.Addr().String(), Insecure: true})

	assert.Positive(t, hits.Load())
}
