package app

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"smartshop/internal/clock"
	"smartshop/internal/notify"
	"smartshop/internal/persist"
	"smartshop/pkg/domain"
)

// AuthAPI performs the remote login call.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// CatalogAPI fetches product suggestions and price comparisons.
type CatalogAPI interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
	Prices(ctx context.Context, query string) ([]domain.PriceRow, error)
}

// PaymentAPI submits payments.
type PaymentAPI interface {
	Submit(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error)
}

// UpdateRegistrar registers for background updates at startup.
type UpdateRegistrar interface {
	Register(ctx context.Context) error
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Show(message string, severity domain.Severity) notify.Notification
}

// Config holds the collaborators for the core application.
type Config struct {
	Auth          AuthAPI
	Catalog       CatalogAPI
	Payments      PaymentAPI
	Store         *persist.Store
	Notifier      Notifier
	View          View
	Updates       UpdateRegistrar
	Clock         clock.Clock
	DebounceDelay time.Duration
}

// State is the in-memory storefront state. Session mirrors the ss_session
// key and is never populated.
type State struct {
	User          *domain.User
	Cart          []domain.CartItem
	SearchResults []domain.SearchResult
	PriceRows     []domain.PriceRow
	Session       string
}

// App owns the storefront state and the operations that mutate it.
type App struct {
	auth     AuthAPI
	catalog  CatalogAPI
	payments PaymentAPI
	store    *persist.Store
	notifier Notifier
	view     View
	updates  UpdateRegistrar
	clock    clock.Clock
	debounce time.Duration

	mu    sync.Mutex
	state State

	// search bookkeeping, guarded by mu
	pending    clock.Timer
	cycle      uint64
	suggestSeq uint64
	priceSeq   uint64
}

// New constructs the application. View, Updates and Clock are optional.
func New(cfg Config) (*App, error) {
	switch {
	case cfg.Auth == nil:
		return nil, errors.New("auth client required")
	case cfg.Catalog == nil:
		return nil, errors.New("catalog client required")
	case cfg.Payments == nil:
		return nil, errors.New("payment client required")
	case cfg.Store == nil:
		return nil, errors.New("persistent store required")
	case cfg.Notifier == nil:
		return nil, errors.New("notifier required")
	}
	if cfg.View == nil {
		cfg.View = nopView{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultDebounce
	}
	return &App{
		auth:     cfg.Auth,
		catalog:  cfg.Catalog,
		payments: cfg.Payments,
		store:    cfg.Store,
		notifier: cfg.Notifier,
		view:     cfg.View,
		updates:  cfg.Updates,
		clock:    cfg.Clock,
		debounce: cfg.DebounceDelay,
		state:    State{Cart: []domain.CartItem{}, SearchResults: []domain.SearchResult{}},
	}, nil
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := State{
		Cart:          slices.Clone(a.state.Cart),
		SearchResults: slices.Clone(a.state.SearchResults),
		PriceRows:     slices.Clone(a.state.PriceRows),
		Session:       a.state.Session,
	}
	if a.state.User != nil {
		u := *a.state.User
		s.User = &u
	}
	return s
}

// Close stops any pending debounce timer. In-flight fetches are not aborted.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
}
