package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/linkboard/go-linkboard-backend/internal/config"
)

// restoreGlobals snapshots the process-wide tracer provider and propagator so
// tests that install a pipeline can put them back.
func restoreGlobals(t *testing.T) {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
}

func enabledCfg(name string) config.OTELConfig {
	return config.OTELConfig{
		Enabled:     true,
		Insecure:    true,
		Endpoint:    "localhost:4317",
		ServiceName: name,
		SampleRatio: 1.0,
	}
}

func TestSetupOTel_DisabledIsNoOp(t *testing.T) {
	restoreGlobals(t)

	prevTP := otel.GetTracerProvider()
	shutdown, err := SetupOTel(context.Background(), config.OTELConfig{Enabled: false}, "v0.0.0")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	if otel.GetTracerProvider() != prevTP {
		t.Fatal("disabled setup must not touch the global provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned error: %v", err)
	}
}

func TestSetupOTel_InstallsProviderAndPropagator(t *testing.T) {
	restoreGlobals(t)

	shutdown, err := SetupOTel(context.Background(), enabledCfg("linkboard-insecure"), "v1.2.3")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatalf("global provider is %T, want *sdktrace.TracerProvider", otel.GetTracerProvider())
	}

	// The composite propagator must round-trip trace context headers.
	carrier := propagation.MapCarrier{}
	ctx, span := otel.Tracer("t").Start(context.Background(), "span")
	span.End()
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		t.Fatal("propagator injected nothing")
	}
	_ = otel.GetTextMapPropagator().Extract(context.Background(), carrier)
}

func TestSetupOTel_TLSBranch(t *testing.T) {
	restoreGlobals(t)

	cfg := enabledCfg("linkboard-tls")
	cfg.Insecure = false
	shutdown, err := SetupOTel(context.Background(), cfg, "v9.9.9")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatal("expected sdk tracer provider on the TLS branch")
	}
}

func TestSetupOTel_CanceledContextStillSucceeds(t *testing.T) {
	restoreGlobals(t)

	// Exporter construction is lazy; a dead context must not fail setup.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shutdown, err := SetupOTel(ctx, enabledCfg("linkboard-canceled"), "v0")
	if err != nil {
		t.Fatalf("SetupOTel with canceled ctx: %v", err)
	}
	_ = shutdown(context.Background())
}

func TestSetupOTel_ExporterErrorLeavesGlobalsIntact(t *testing.T) {
	restoreGlobals(t)

	orig := otlpExporterFn
	defer func() { otlpExporterFn = orig }()
	otlpExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return nil, errors.New("exporter down")
	}

	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()

	if _, err := SetupOTel(context.Background(), enabledCfg("linkboard"), "v0"); err == nil {
		t.Fatal("expected exporter error")
	}
	if otel.GetTracerProvider() != prevTP || otel.GetTextMapPropagator() != prevProp {
		t.Fatal("failed setup must not change the globals")
	}
}

func TestSetupOTel_ResourceErrorLeavesGlobalsIntact(t *testing.T) {
	restoreGlobals(t)

	orig := serviceResourceFn
	defer func() { serviceResourceFn = orig }()
	serviceResourceFn = func(ctx context.Context, serviceName, version string) (*resource.Resource, error) {
		return nil, errors.New("resource boom")
	}

	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()

	if _, err := SetupOTel(context.Background(), enabledCfg("linkboard"), "v0"); err == nil {
		t.Fatal("expected resource error")
	}
	if otel.GetTracerProvider() != prevTP || otel.GetTextMapPropagator() != prevProp {
		t.Fatal("failed setup must not change the globals")
	}
}

func TestSetupOTel_ShutdownAndSpanSmoke(t *testing.T) {
	restoreGlobals(t)

	shutdown, err := SetupOTel(context.Background(), enabledCfg("linkboard-smoke"), "v1")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}

	_, span := otel.Tracer("smoke").Start(context.Background(), "root", trace.WithSpanKind(trace.SpanKindInternal))
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
