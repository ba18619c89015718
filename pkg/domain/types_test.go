package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentRequestOmitsAbsentUser(t *testing.T) {
	data, err := json.Marshal(PaymentRequest{Amount: decimal.RequireFromString("19.99")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"amount":19.99}` {
		t.Fatalf("unexpected body: %s", got)
	}
	data, err = json.Marshal(PaymentRequest{Amount: decimal.NewFromInt(5), User: "u1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"amount":5,"user":"u1"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestPaymentResultKeepsRawFields(t *testing.T) {
	var res PaymentResult
	if err := json.Unmarshal([]byte(`{"qrUrl":"https://qr.example/1","status":"ok"}`), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.QRURL != "https://qr.example/1" {
		t.Fatalf("qrUrl = %q", res.QRURL)
	}
	if res.Raw["status"] != "ok" {
		t.Fatalf("raw status = %v", res.Raw["status"])
	}
}

func TestNewCartItemCopiesResult(t *testing.T) {
	price := decimal.RequireFromString("3.50")
	item := NewCartItem(SearchResult{ID: "p1", Name: "Widget", Price: &price})
	if item.ID != "p1" || item.Name != "Widget" || item.Quantity != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Price == nil || !item.Price.Equal(price) {
		t.Fatalf("unexpected price: %v", item.Price)
	}
	data, err := json.Marshal(NewCartItem(SearchResult{ID: "p2", Name: "Gadget"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"id":"p2","name":"Gadget","quantity":1}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestSearchResultKeepsUnknownFields(t *testing.T) {
	var r SearchResult
	body := `{"id":"p1","name":"Widget","price":19.99,"image":"w.png","url":"/p/1"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "p1" || r.Price == nil || r.Price.String() != "19.99" {
		t.Fatalf("unexpected result: %+v", r)
	}
	if string(r.Extra["image"]) != `"w.png"` || string(r.Extra["url"]) != `"/p/1"` {
		t.Fatalf("extra fields lost: %v", r.Extra)
	}
	if _, ok := r.Extra["price"]; ok {
		t.Fatal("numeric price should not be kept raw")
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"id":"p1","image":"w.png","name":"Widget","price":19.99,"url":"/p/1"}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestSearchResultToleratesNonNumericPrice(t *testing.T) {
	var results []SearchResult
	body := `[{"id":"p1","name":"Widget","price":"$19.99"},{"id":"p2","name":"Gadget","price":"4.50"}]`
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if results[0].Price != nil {
		t.Fatalf("expected no decimal price, got %v", results[0].Price)
	}
	if got := PriceText(results[0].Price, results[0].Extra); got != "$19.99" {
		t.Fatalf("price text = %q", got)
	}
	if results[1].Price == nil || results[1].Price.String() != "4.5" {
		t.Fatalf("quoted numeric price not parsed: %v", results[1].Price)
	}
	data, err := json.Marshal(results)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"id":"p1","name":"Widget","price":"$19.99"},{"id":"p2","name":"Gadget","price":"4.50"}]`
	if string(data) != want {
		t.Fatalf("price not kept verbatim: %s", data)
	}
}

func TestCartItemRoundTripKeepsProductFields(t *testing.T) {
	var r SearchResult
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Lamp","price":"n/a","image":"l.png"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "7" {
		t.Fatalf("numeric id = %q", r.ID)
	}
	item := NewCartItem(r)
	data, err := json.Marshal([]CartItem{item})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"id":7,"image":"l.png","name":"Lamp","price":"n/a","quantity":1}]`
	if string(data) != want {
		t.Fatalf("ss_cart form = %s, want %s", data, want)
	}
	var back []CartItem
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal cart: %v", err)
	}
	if len(back) != 1 || back[0].ID != "7" || back[0].Quantity != 1 || string(back[0].Extra["image"]) != `"l.png"` {
		t.Fatalf("unexpected reloaded item: %+v", back)
	}
	if _, ok := back[0].Extra["quantity"]; ok {
		t.Fatal("quantity should be decoded, not kept raw")
	}
}

func TestNewCartItemDoesNotShareExtra(t *testing.T) {
	r := SearchResult{ID: "p1", Name: "Widget", Extra: map[string]json.RawMessage{"image": json.RawMessage(`"a.png"`)}}
	item := NewCartItem(r)
	r.Extra["image"] = json.RawMessage(`"b.png"`)
	if string(item.Extra["image"]) != `"a.png"` {
		t.Fatalf("cart item shares extra map: %s", item.Extra["image"])
	}
}

func TestPriceRowMarshalsNumericPrice(t *testing.T) {
	data, err := json.Marshal(PriceRow{ID: "p1", Retailer: "Acme", Price: decimal.RequireFromString("12.00")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"id":"p1","retailer":"Acme","price":12}` {
		t.Fatalf("unexpected json: %s", got)
	}
}
