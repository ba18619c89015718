package app

import (
	"context"

	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// Login calls the login endpoint and, on success, persists and adopts the
// returned user. Failures leave state untouched and show one error
// notification. There is no retry.
func (a *App) Login(ctx context.Context, email, password string) bool {
	logger := util.LoggerFromContext(ctx)
	user, err := a.auth.Login(ctx, email, password)
	if err == nil {
		a.mu.Lock()
		err = a.store.SaveUser(ctx, user)
		if err == nil {
			a.state.User = &user
			a.view.RenderAuth(authLabel(a.state.User))
		}
		a.mu.Unlock()
	}
	if err != nil {
		logger.Warn("login failed", "err", err)
		a.notifier.Show("Login failed: "+err.Error(), domain.SeverityError)
		return false
	}
	logger.Info("login succeeded", "user_id", user.ID)
	return true
}

// Logout clears the user from memory and storage. It always succeeds; a
// storage failure is only logged.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.User = nil
	if err := a.store.ClearUser(ctx); err != nil {
		util.LoggerFromContext(ctx).Warn("clear persisted user failed", "err", err)
	}
	a.view.RenderAuth(authLabel(nil))
}

// CurrentUser returns the logged-in user, if any.
func (a *App) CurrentUser() (domain.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.User == nil {
		return domain.User{}, false
	}
	return *a.state.User, true
}

// AuthLabel is the text shown in auth slots.
func (a *App) AuthLabel() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return authLabel(a.state.User)
}

func authLabel(user *domain.User) string {
	if user == nil {
		return "Guest"
	}
	return "Welcome, " + user.Name
}
