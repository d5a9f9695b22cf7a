package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValueFields(t *testing.T) {
	t.Parallel()

	core, recorded := observer.New(LevelDebug)
	logger := FromZap(zap.New(core))

	logger.Info("sync finished", "run_id", "abc", "players", 3, "error", errors.New("boom"), "dangling")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != "abc" {
		t.Fatalf("unexpected run_id: %v", fields["run_id"])
	}
	if fields["players"] != int64(3) {
		t.Fatalf("unexpected players: %#v", fields["players"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLoggerContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "fpl-insights"})

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "filtered out")
	logger.InfoContext(ctx, "request handled", "status", 200)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("unexpected log lines: %q", buf.String())
	}

	var payload map[string]any
	if err := sonic.UnmarshalString(lines[0], &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["trace_id"] != traceID.String() || payload["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", payload)
	}
	if payload["service"] != "fpl-insights" {
		t.Fatalf("missing service field: %v", payload)
	}
	if payload["level"] != "INFO" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for raw, want := range tests {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("unexpected level for %q: got=%s want=%s", raw, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unsupported level")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("does not panic")
	if OrDefault(nil) == nil {
		t.Fatalf("expected default logger")
	}
}
