package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContextWithRequestIDKeepsGivenID(t *testing.T) {
	const incoming = "req-incoming-123"
	ctx := ContextWithRequestID(context.Background(), incoming)
	if got := RequestIDFromContext(ctx); got != incoming {
		t.Fatalf("unexpected request id in context: got %q want %q", got, incoming)
	}
	if LoggerFromContext(ctx) == nil {
		t.Fatal("expected logger in context")
	}
}

func TestContextWithRequestIDGeneratesWhenMissing(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "  ")
	if got := RequestIDFromContext(ctx); got == "" {
		t.Fatal("expected generated request id in context")
	}
}

func TestLoggingTransportPropagatesRequestID(t *testing.T) {
	const incoming = "req-outbound-7"
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	client := NewHTTPClient("test", 0)
	req, err := http.NewRequestWithContext(ContextWithRequestID(context.Background(), incoming), http.MethodGet, srv.URL+"/healthz", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()
	if seen != incoming {
		t.Fatalf("unexpected outbound request id: got %q want %q", seen, incoming)
	}
}

func TestLoggingTransportGeneratesRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	resp, err := NewHTTPClient("test", 0).Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if seen == "" {
		t.Fatal("expected generated request id header")
	}
}
