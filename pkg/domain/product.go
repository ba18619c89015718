package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// UnmarshalJSON decodes id, name and price and keeps everything else.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var out SearchResult
	extra, err := decodeProduct(data, &out.ID, &out.Name, &out.Price)
	if err != nil {
		return err
	}
	out.Extra = extra
	*r = out
	return nil
}

// MarshalJSON writes the product back with its extra fields.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	return encodeProduct(r.Extra, productKnown(r.ID, r.Name, r.Price))
}

// UnmarshalJSON reads a persisted cart line.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var out CartItem
	extra, err := decodeProduct(data, &out.ID, &out.Name, &out.Price)
	if err != nil {
		return err
	}
	if raw, ok := extra["quantity"]; ok {
		if err := json.Unmarshal(raw, &out.Quantity); err == nil {
			delete(extra, "quantity")
		}
	}
	if len(extra) == 0 {
		extra = nil
	}
	out.Extra = extra
	*c = out
	return nil
}

// MarshalJSON writes the cart line with every copied product field.
func (c CartItem) MarshalJSON() ([]byte, error) {
	known := productKnown(c.ID, c.Name, c.Price)
	known["quantity"] = c.Quantity
	return encodeProduct(c.Extra, known)
}

// decodeProduct fills id, name and price from a product object. The returned
// map holds the fields that were not taken: unknown keys, plus any id, name or
// price whose JSON form the typed field cannot reproduce.
func decodeProduct(data []byte, id, name *string, price **decimal.Decimal) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	takeString(fields, "id", id)
	takeString(fields, "name", name)
	if raw, ok := fields["price"]; ok {
		p, plain := parsePrice(raw)
		*price = p
		if plain {
			delete(fields, "price")
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func takeString(fields map[string]json.RawMessage, key string, dst *string) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err == nil {
		delete(fields, key)
		return
	}
	// numeric ids stay in fields so they re-encode as numbers
	*dst = strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

// parsePrice returns the decimal value of raw, if any, and whether raw was a
// plain JSON number that the decimal re-encodes without loss.
func parsePrice(raw json.RawMessage) (*decimal.Decimal, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, false
	}
	plain := text[0] != '"'
	if !plain {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		text = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, false
	}
	return &d, plain
}

func productKnown(id, name string, price *decimal.Decimal) map[string]any {
	known := map[string]any{"id": id, "name": name}
	if price != nil {
		known["price"] = json.RawMessage(price.String())
	}
	return known
}

// encodeProduct merges known and extra; extra wins so values kept in their
// original form round-trip unchanged.
func encodeProduct(extra map[string]json.RawMessage, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(known)+len(extra))
	for k, v := range known {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// PriceText is the display form of a price: the decimal to two places, or
// the value the API sent when it was not numeric.
func PriceText(price *decimal.Decimal, extra map[string]json.RawMessage) string {
	if price != nil {
		return price.StringFixed(2)
	}
	raw, ok := extra["price"]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
