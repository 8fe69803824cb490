package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  workflow  ", Value: "  resume  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "workflow" || fields[0].String != "resume" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, WorkflowFields("job", "Posting")...)
	enriched.Info("transition")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldWorkflow] != "job" || ctx[FieldState] != "Posting" {
		t.Fatalf("unexpected context: %v", ctx)
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	enriched.Info("another log")
}

func TestCapabilityFields(t *testing.T) {
	fields := CapabilityFields("post-job", "")
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != FieldCapability || fields[0].String != "post-job" {
		t.Fatalf("unexpected capability field: %+v", fields[0])
	}

	fields = ProviderFields("gemini", "gemini-2.5-pro")
	if len(fields) != 2 || fields[1].Key != FieldModel {
		t.Fatalf("unexpected provider fields: %+v", fields)
	}
}
