package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"smartshop/internal/notify"
	"smartshop/pkg/domain"
)

// textView renders storefront state as plain text lines. It implements both
// app.View and notify.Display; timer callbacks render from other goroutines.
type textView struct {
	mu  sync.Mutex
	out io.Writer
}

func newTextView(out io.Writer) *textView {
	return &textView{out: out}
}

func (v *textView) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *textView) RenderAuth(label string) {
	v.printf("[auth] %s\n", label)
}

func (v *textView) RenderCart(items []domain.CartItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "[cart] %d item(s)\n", len(items))
	for i, item := range items {
		fmt.Fprintf(v.out, "  %d. %s%s\n", i, item.Name, formatPrice(domain.PriceText(item.Price, item.Extra)))
	}
}

func (v *textView) RenderSuggestions(results []domain.SearchResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "[suggestions] %d result(s)\n", len(results))
	for _, r := range results {
		fmt.Fprintf(v.out, "  %s  %s%s\n", r.ID, r.Name, formatPrice(domain.PriceText(r.Price, r.Extra)))
	}
}

func (v *textView) RenderPrices(rows []domain.PriceRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "[prices] %d offer(s)\n", len(rows))
	for _, row := range rows {
		fmt.Fprintf(v.out, "  %s  $%s  (:add %s)\n", row.Retailer, row.Price.StringFixed(2), row.ID)
	}
}

func (v *textView) RenderQR(url string) {
	v.printf("[qr] %s\n", url)
}

func (v *textView) Show(n notify.Notification) {
	v.printf("[%s] %s\n", n.Severity, n.Message)
}

// Remove is a no-op: printed lines cannot be taken back.
func (v *textView) Remove(notify.Notification) {}

func formatPrice(text string) string {
	switch {
	case text == "":
		return ""
	case strings.HasPrefix(text, "$"):
		return "  " + text
	default:
		return "  $" + text
	}
}
