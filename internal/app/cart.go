package app

import (
	"context"
	"fmt"
	"slices"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// AddItem appends a copy of the search result with productID, quantity 1.
// Only the current results are consulted; an unknown id changes nothing and
// returns ErrProductNotFound without notifying the user.
func (a *App) AddItem(ctx context.Context, productID string) error {
	a.mu.Lock()
	idx := slices.IndexFunc(a.state.SearchResults, func(r domain.SearchResult) bool {
		return r.ID == productID
	})
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrProductNotFound, productID)
	}
	next := append(slices.Clone(a.state.Cart), domain.NewCartItem(a.state.SearchResults[idx]))
	err := a.commitCartLocked(ctx, next)
	a.mu.Unlock()
	if err != nil {
		return a.cartSaveFailed(ctx, err)
	}
	return nil
}

// RemoveItem deletes the line at index. An out-of-range index changes
// nothing and returns ErrIndexOutOfRange.
func (a *App) RemoveItem(ctx context.Context, index int) error {
	a.mu.Lock()
	if index < 0 || index >= len(a.state.Cart) {
		n := len(a.state.Cart)
		a.mu.Unlock()
		return fmt.Errorf("%w: index %d, cart has %d items", ErrIndexOutOfRange, index, n)
	}
	next := slices.Delete(slices.Clone(a.state.Cart), index, index+1)
	err := a.commitCartLocked(ctx, next)
	a.mu.Unlock()
	if err != nil {
		return a.cartSaveFailed(ctx, err)
	}
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (a *App) Items() []domain.CartItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.state.Cart)
}

// Count returns the number of cart lines.
func (a *App) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.state.Cart)
}

// commitCartLocked writes next through to storage and only then adopts it.
func (a *App) commitCartLocked(ctx context.Context, next []domain.CartItem) error {
	if err := a.store.SaveCart(ctx, next); err != nil {
		return err
	}
	a.state.Cart = next
	a.view.RenderCart(slices.Clone(next))
	return nil
}

func (a *App) cartSaveFailed(ctx context.Context, err error) error {
	util.LoggerFromContext(ctx).Error("persist cart failed", "err", err)
	a.notifier.Show("Failed to save cart", domain.SeverityError)
	return fmt.Errorf("update cart: %w", err)
}
