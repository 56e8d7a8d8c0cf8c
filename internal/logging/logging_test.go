package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf})

	log.Info(context.Background(), "field sampled", Int("arrays", 3), Float64("t", 0.5))

	out := buf.String()
	if !strings.Contains(out, `"msg":"field sampled"`) {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"arrays":3`) {
		t.Errorf("expected arrays field in output, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}

	log.Warn(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn to pass, got %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf}).With(String("component", "server"))

	log.Info(context.Background(), "ready")
	if !strings.Contains(buf.String(), `"component":"server"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" {
		t.Fatal("expected a request id")
	}

	again, id2 := EnsureRequestID(ctx)
	if id2 != id {
		t.Errorf("expected stable request id, got %q then %q", id, id2)
	}
	if RequestIDFromContext(again) != id {
		t.Errorf("expected id %q from context", id)
	}
}

func TestWithRequestLoggerNilBase(t *testing.T) {
	ctx, log := WithRequestLogger(context.Background(), nil)
	if RequestIDFromContext(ctx) == "" {
		t.Error("expected request id on context")
	}
	// Must not panic.
	log.Info(ctx, "noop backed")
}

func TestNoop(t *testing.T) {
	log := Noop().With(String("k", "v"))
	log.Debug(context.Background(), "a")
	log.Error(context.Background(), "b", Err(context.Canceled))
}
