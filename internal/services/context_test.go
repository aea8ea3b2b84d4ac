package services

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc-123")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "abc-123" {
		t.Fatalf("got (%q, %v)", id, ok)
	}
}

func TestRequestIDEmptyIgnored(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatal("empty request id should not be stored")
	}
}

func TestStageRoundTrip(t *testing.T) {
	ctx := WithStage(context.Background(), "transcribing")
	stage, ok := StageFromContext(ctx)
	if !ok || stage != "transcribing" {
		t.Fatalf("got (%q, %v)", stage, ok)
	}
	if _, ok := StageFromContext(context.Background()); ok {
		t.Fatal("unexpected stage on fresh context")
	}
}
