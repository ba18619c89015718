package app

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// WelcomeMessage is shown once bootstrap completes.
const WelcomeMessage = "Welcome to Smart Shopping!"

// Bootstrap hydrates user and cart from storage, renders them, registers for
// background updates (best effort) and greets the user.
func (a *App) Bootstrap(ctx context.Context) error {
	var (
		user *domain.User
		cart []domain.CartItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := a.store.LoadUser(gctx)
		user = u
		return err
	})
	g.Go(func() error {
		c, err := a.store.LoadCart(gctx)
		cart = c
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("hydrate state: %w", err)
	}

	a.mu.Lock()
	a.state.User = user
	a.state.Cart = cart
	a.view.RenderCart(slices.Clone(cart))
	a.view.RenderAuth(authLabel(user))
	a.mu.Unlock()

	logger := util.LoggerFromContext(ctx)
	if a.updates != nil {
		if err := a.updates.Register(ctx); err != nil {
			logger.Error("background update registration failed", "err", err)
		}
	}
	logger.Info("storefront ready", "cart_items", len(cart), "logged_in", user != nil)
	a.notifier.Show(WelcomeMessage, domain.SeverityInfo)
	return nil
}
