package app

import "smartshop/pkg/domain"

// View is the rendering boundary. App calls it with copies of state, while
// holding its state lock, so implementations must not call back into App.
type View interface {
	RenderAuth(label string)
	RenderCart(items []domain.CartItem)
	RenderSuggestions(results []domain.SearchResult)
	RenderPrices(rows []domain.PriceRow)
	RenderQR(url string)
}

type nopView struct{}

func (nopView) RenderAuth(string) {}
func (nopView) RenderCart([]domain.CartItem) {}
func (nopView) RenderSuggestions([]domain.SearchResult) {}
func (nopView) RenderPrices([]domain.PriceRow) {}
func (nopView) RenderQR(string) {}
