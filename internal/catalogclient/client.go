package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// Client calls the product search and price comparison endpoints.
type Client struct {
	searchURL  string
	pricesURL  string
	httpClient *http.Client
}

// APIError represents a non-2xx catalog response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a catalog client. searchURL and pricesURL are full
// endpoint URLs; the query parameter is appended.
func NewClient(searchURL, pricesURL string, timeout time.Duration) *Client {
	return &Client{
		searchURL:  strings.TrimSpace(searchURL),
		pricesURL:  strings.TrimSpace(pricesURL),
		httpClient: util.NewHTTPClient("catalog", timeout),
	}
}

type searchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// Search issues GET <search>?q=<query>.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var resp searchResponse
	if err := c.getJSON(ctx, c.searchURL, "q", query, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []domain.SearchResult{}
	}
	return resp.Results, nil
}

// Prices issues GET <prices>?product=<query>.
func (c *Client) Prices(ctx context.Context, query string) ([]domain.PriceRow, error) {
	var rows []domain.PriceRow
	if err := c.getJSON(ctx, c.pricesURL, "product", query, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.PriceRow{}
	}
	return rows, nil
}

func (c *Client) getJSON(ctx context.Context, base, param, value string, out any) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("parse endpoint %q: %w", base, err)
	}
	q := u.Query()
	q.Set(param, value)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
