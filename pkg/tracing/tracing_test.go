package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/tracing"
)

// TestInitTracer_Disabled checks a disabled config is a no-op.
func TestInitTracer_Disabled(t *testing.T) {
	if err := tracing.InitTracer(configs.TracingConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tracing.ShutdownTracer(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

// TestInitTracer_UnknownExporter checks the exporter type is validated.
func TestInitTracer_UnknownExporter(t *testing.T) {
	err := tracing.InitTracer(configs.TracingConfig{Enabled: true, ExporterType: "jaeger"})
	if err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}

// TestStartSpan checks spans work with the default provider.
func TestStartSpan(t *testing.T) {
	ctx, span := tracing.StartSpan(context.Background(), "test")
	if ctx == nil || span == nil {
		t.Fatal("expected context and span")
	}

	tracing.EndSpan(span, errors.New("boom"))
}
