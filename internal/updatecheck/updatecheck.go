// Package updatecheck registers the client for background updates by probing
// the update manifest URL.
package updatecheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartshop/internal/util"
)

// Registrar probes an update manifest.
type Registrar struct {
	url        string
	httpClient *http.Client
}

// New returns a Registrar for url. An empty url makes Register a no-op.
func New(url string, timeout time.Duration) *Registrar {
	return &Registrar{
		url:        strings.TrimSpace(url),
		httpClient: util.NewHTTPClient("update", timeout),
	}
}

// Register issues HEAD <url> and reports a non-2xx status as an error.
func (r *Registrar) Register(ctx context.Context) error {
	if r == nil || r.url == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.url, nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("update manifest %s: %s", r.url, resp.Status)
	}
	return nil
}
