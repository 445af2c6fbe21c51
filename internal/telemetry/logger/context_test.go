package logger

import (
	"bytes"
	"context"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("from context")

	if buf.Len() == 0 {
		t.Error("context logger should write to its own output")
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext() without logger should return the default")
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}

	ctx := WithRequestID(context.Background(), "01HZY3N8")
	if got := RequestIDFromContext(ctx); got != "01HZY3N8" {
		t.Errorf("RequestIDFromContext() = %q, want 01HZY3N8", got)
	}
}

func TestL_EnrichesRequestID(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithRequestID(WithLogger(context.Background(), l), "req-42")
	L(ctx).Info("handled")

	entry := decodeEntry(t, &buf)
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}

	buf.Reset()
	L(WithLogger(context.Background(), l)).Info("no id")
	entry = decodeEntry(t, &buf)
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent without a request ID")
	}
}
