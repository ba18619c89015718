package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
	"smartshop/pkg/store"
)

// Durable keys. KeySession is reserved for an opaque session token that no
// operation reads or writes yet.
const (
	KeyUser    = "ss_user"
	KeyCart    = "ss_cart"
	KeySession = "ss_session"
)

// Store gives typed access to the storefront's durable keys.
type Store struct {
	kv store.Store
}

// New wraps a key/value store.
func New(kv store.Store) *Store {
	return &Store{kv: kv}
}

// LoadUser returns the persisted user. A missing or undecodable record
// reads as no user.
func (s *Store) LoadUser(ctx context.Context) (*domain.User, error) {
	data, ok, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !ok || isNull(data) {
		return nil, nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		util.LoggerFromContext(ctx).Warn("discarding unreadable persisted user", "key", KeyUser, "err", err)
		return nil, nil
	}
	return &user, nil
}

// SaveUser writes user through to storage.
func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ClearUser removes the persisted user.
func (s *Store) ClearUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// LoadCart returns the persisted cart. A missing or undecodable record reads
// as an empty cart.
func (s *Store) LoadCart(ctx context.Context) ([]domain.CartItem, error) {
	data, ok, err := s.kv.Get(ctx, KeyCart)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	items := []domain.CartItem{}
	if !ok || isNull(data) {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		util.LoggerFromContext(ctx).Warn("discarding unreadable persisted cart", "key", KeyCart, "err", err)
		return []domain.CartItem{}, nil
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// SaveCart writes the whole cart sequence. An empty cart is stored as [].
func (s *Store) SaveCart(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, KeyCart, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func isNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}
