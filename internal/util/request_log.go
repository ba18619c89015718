package util

import (
	"net/http"
	"strings"
	"time"
)

// LoggingTransport tags outbound requests with a request id and emits a
// structured log line per call.
type LoggingTransport struct {
	service string
	base    http.RoundTripper
}

// NewLoggingTransport wraps base (http.DefaultTransport when nil).
func NewLoggingTransport(service string, base http.RoundTripper) *LoggingTransport {
	service = strings.TrimSpace(service)
	if service == "" {
		service = "unknown"
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{service: service, base: base}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		ctx = ContextWithRequestID(ctx, "")
		requestID = RequestIDFromContext(ctx)
	}
	req = req.Clone(ctx)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	logger := LoggerFromContext(ctx)
	if err != nil {
		logger.Warn(
			"http_request",
			"service", t.service,
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"err", err,
		)
		return nil, err
	}
	logger.Info(
		"http_request",
		"service", t.service,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// NewHTTPClient returns an http.Client with the logging transport and timeout.
func NewHTTPClient(service string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingTransport(service, nil),
	}
}
