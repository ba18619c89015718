package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"smartshop/internal/clock/clocktest"
	"smartshop/internal/notify"
	"smartshop/internal/persist"
	"smartshop/pkg/domain"
	"smartshop/pkg/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct {
	user  domain.User
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (domain.User, error) {
	f.calls++
	if f.err != nil {
		return domain.User{}, f.err
	}
	return f.user, nil
}

type searchCall struct {
	query string
	at    time.Duration
}

type fakeCatalog struct {
	mu         sync.Mutex
	clock      *clocktest.Fake
	searches   []searchCall
	prices     []searchCall
	results    map[string][]domain.SearchResult
	rows       map[string][]domain.PriceRow
	searchErr  error
	pricesErr  error
	searchHook func(query string)
}

func (f *fakeCatalog) Search(_ context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.searches = append(f.searches, searchCall{query: query, at: f.now()})
	hook := f.searchHook
	err := f.searchErr
	results := f.results[query]
	f.mu.Unlock()
	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (f *fakeCatalog) Prices(_ context.Context, query string) ([]domain.PriceRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices = append(f.prices, searchCall{query: query, at: f.now()})
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.rows[query], nil
}

func (f *fakeCatalog) now() time.Duration {
	if f.clock == nil {
		return 0
	}
	return f.clock.Now()
}

func (f *fakeCatalog) searchCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.searches...)
}

func (f *fakeCatalog) priceCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.prices...)
}

type fakePayments struct {
	requests []domain.PaymentRequest
	result   domain.PaymentResult
	err      error
}

func (f *fakePayments) Submit(_ context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return domain.PaymentResult{}, f.err
	}
	return f.result, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *recordingNotifier) Show(message string, severity domain.Severity) notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := notify.Notification{Message: message, Severity: severity}
	r.notes = append(r.notes, n)
	return n
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.notes...)
}

type recordingView struct {
	auth        []string
	carts       [][]domain.CartItem
	suggestions [][]domain.SearchResult
	prices      [][]domain.PriceRow
	qr          []string
}

func (v *recordingView) RenderAuth(label string) { v.auth = append(v.auth, label) }
func (v *recordingView) RenderCart(items []domain.CartItem) { v.carts = append(v.carts, items) }
func (v *recordingView) RenderSuggestions(r []domain.SearchResult) { v.suggestions = append(v.suggestions, r) }
func (v *recordingView) RenderPrices(rows []domain.PriceRow) { v.prices = append(v.prices, rows) }
func (v *recordingView) RenderQR(url string) { v.qr = append(v.qr, url) }

// flakyStore wraps a store.Store and fails writes on demand.
type flakyStore struct {
	store.Store
	failWrites bool
	failReads  bool
}

var errStoreDown = errors.New("store down")

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failReads {
		return nil, false, errStoreDown
	}
	return s.Store.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.Store.Set(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if s.failWrites {
		return errStoreDown
	}
	return s.Store.Delete(ctx, key)
}

type harness struct {
	app      *App
	kv       *flakyStore
	auth     *fakeAuth
	catalog  *fakeCatalog
	payments *fakePayments
	notes    *recordingNotifier
	view     *recordingView
	clock    *clocktest.Fake
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clk := clocktest.New()
	h := &harness{
		kv:       &flakyStore{Store: store.NewMemoryStore()},
		auth:     &fakeAuth{},
		catalog:  &fakeCatalog{clock: clk, results: map[string][]domain.SearchResult{}, rows: map[string][]domain.PriceRow{}},
		payments: &fakePayments{},
		notes:    &recordingNotifier{},
		view:     &recordingView{},
		clock:    clk,
	}
	a, err := New(Config{
		Auth:     h.auth,
		Catalog:  h.catalog,
		Payments: h.payments,
		Store:    persist.New(h.kv),
		Notifier: h.notes,
		View:     h.view,
		Clock:    clk,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	h.app = a
	return h
}

func (h *harness) stored(t *testing.T, key string) string {
	t.Helper()
	data, ok, err := h.kv.Store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	if !ok {
		return ""
	}
	return string(data)
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without collaborators")
	}
	_, err := New(Config{
		Auth:     &fakeAuth{},
		Catalog:  &fakeCatalog{},
		Payments: &fakePayments{},
		Store:    persist.New(store.NewMemoryStore()),
	})
	if err == nil {
		t.Fatalf("expected error without notifier")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	h := newHarness(t)
	h.app.state.SearchResults = []domain.SearchResult{{ID: "p1", Name: "Widget"}}
	h.app.state.User = &domain.User{ID: "u1", Name: "Ada"}

	snap := h.app.Snapshot()
	snap.SearchResults[0].Name = "changed"
	snap.User.Name = "changed"

	if h.app.state.SearchResults[0].Name != "Widget" || h.app.state.User.Name != "Ada" {
		t.Fatalf("snapshot aliased app state")
	}
	if snap.Session != "" {
		t.Fatalf("session placeholder should stay empty")
	}
}
