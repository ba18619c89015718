package domain

import (
	"encoding/json"
	"maps"

	"github.com/shopspring/decimal"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// User is the logged-in shopper as returned by the login endpoint.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResult is one product suggestion. Fields the client does not model
// are kept in Extra, and so is a price that is not a plain number.
type SearchResult struct {
	ID    string
	Name  string
	Price *decimal.Decimal
	Extra map[string]json.RawMessage
}

// PriceRow is one retailer offer from the price comparison endpoint.
type PriceRow struct {
	ID       string          `json:"id"`
	Retailer string          `json:"retailer"`
	Price    decimal.Decimal `json:"price"`
}

// MarshalJSON writes the price as a JSON number.
func (r PriceRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string          `json:"id"`
		Retailer string          `json:"retailer"`
		Price    json.RawMessage `json:"price"`
	}{r.ID, r.Retailer, json.RawMessage(r.Price.String())})
}

// CartItem is a frozen copy of every SearchResult field plus a quantity.
type CartItem struct {
	ID       string
	Name     string
	Price    *decimal.Decimal
	Quantity int
	Extra    map[string]json.RawMessage
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	User   string          `json:"user,omitempty"`
}

// MarshalJSON writes amount as a JSON number and omits an empty user.
func (p PaymentRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount json.RawMessage `json:"amount"`
		User   string          `json:"user,omitempty"`
	}{json.RawMessage(p.Amount.String()), p.User})
}

// PaymentResult is the payment endpoint response. Fields beyond qrUrl are
// kept verbatim in Raw.
type PaymentResult struct {
	QRURL string         `json:"qrUrl"`
	Raw   map[string]any `json:"-"`
}

// NewCartItem copies r into a cart line with quantity 1.
func NewCartItem(r SearchResult) CartItem {
	item := CartItem{
		ID:       r.ID,
		Name:     r.Name,
		Quantity: 1,
		Extra:    maps.Clone(r.Extra),
	}
	if r.Price != nil {
		price := *r.Price
		item.Price = &price
	}
	return item
}

// UnmarshalJSON keeps the whole response object in Raw.
func (p *PaymentResult) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	qr, _ := raw["qrUrl"].(string)
	p.QRURL = qr
	p.Raw = raw
	return nil
}
