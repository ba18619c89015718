package app

import (
	"context"
	"slices"
	"time"
	"unicode/utf8"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

const (
	// DefaultDebounce is the input silence required before a search fires.
	DefaultDebounce = 300 * time.Millisecond
	// MinQueryLength is the shortest query that reaches the network.
	MinQueryLength = 3
)

// HandleInput restarts the debounce timer for query. Once input has been
// quiet for the debounce delay, a query of at least MinQueryLength runes
// fetches suggestions and then price comparisons. ctx bounds those fetches.
func (a *App) HandleInput(ctx context.Context, query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.Stop()
	}
	a.cycle++
	cycle := a.cycle
	a.pending = a.clock.AfterFunc(a.debounce, func() {
		a.runSearchCycle(ctx, cycle, query)
	})
}

func (a *App) runSearchCycle(ctx context.Context, cycle uint64, query string) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return
	}
	if ctx.Err() != nil {
		return
	}
	a.FetchSuggestions(ctx, query)
	if !a.cycleCurrent(cycle) {
		util.LoggerFromContext(ctx).Debug("search cycle superseded, skipping price comparison", "query", query)
		return
	}
	a.FetchPriceComparisons(ctx, query)
}

func (a *App) cycleCurrent(cycle uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cycle == cycle
}

// FetchSuggestions replaces the search results with the remote response.
// A response that lost the race to a later suggestion request is dropped.
// Failures leave results untouched and show an error notification.
func (a *App) FetchSuggestions(ctx context.Context, query string) {
	a.mu.Lock()
	a.suggestSeq++
	seq := a.suggestSeq
	a.mu.Unlock()

	logger := util.LoggerFromContext(ctx)
	results, err := a.catalog.Search(ctx, query)

	a.mu.Lock()
	if seq != a.suggestSeq {
		a.mu.Unlock()
		logger.Debug("discarding stale suggestions", "query", query, "err", err)
		return
	}
	if err != nil {
		a.mu.Unlock()
		logger.Warn("fetch suggestions failed", "query", query, "err", err)
		a.notifier.Show("Failed to load suggestions", domain.SeverityError)
		return
	}
	a.state.SearchResults = slices.Clone(results)
	a.view.RenderSuggestions(slices.Clone(results))
	a.mu.Unlock()
}

// FetchPriceComparisons renders the retailer price rows for query. Failures
// leave the previous rows in place and show a warning.
func (a *App) FetchPriceComparisons(ctx context.Context, query string) {
	a.mu.Lock()
	a.priceSeq++
	seq := a.priceSeq
	a.mu.Unlock()

	logger := util.LoggerFromContext(ctx)
	rows, err := a.catalog.Prices(ctx, query)

	a.mu.Lock()
	if seq != a.priceSeq {
		a.mu.Unlock()
		logger.Debug("discarding stale price comparison", "query", query, "err", err)
		return
	}
	if err != nil {
		a.mu.Unlock()
		logger.Warn("fetch price comparison failed", "query", query, "err", err)
		a.notifier.Show("Price comparison unavailable", domain.SeverityWarning)
		return
	}
	a.state.PriceRows = slices.Clone(rows)
	a.view.RenderPrices(slices.Clone(rows))
	a.mu.Unlock()
}

// SearchResults returns the current suggestion list.
func (a *App) SearchResults() []domain.SearchResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.state.SearchResults)
}
