package paymentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// Client submits payments to the storefront backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a non-2xx payment response.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a payment client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: util.NewHTTPClient("payment", timeout),
	}
}

// Submit posts the request to /api/payment.
func (c *Client) Submit(ctx context.Context, payment domain.PaymentRequest) (domain.PaymentResult, error) {
	data, err := json.Marshal(payment)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/payment", bytes.NewReader(data))
	if err != nil {
		return domain.PaymentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return domain.PaymentResult{}, &APIError{Status: resp.StatusCode, Message: msg, Code: strings.TrimSpace(errResp.Code)}
	}
	var result domain.PaymentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.PaymentResult{}, fmt.Errorf("decode payment response: %w", err)
	}
	return result, nil
}
