package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"smartshop/internal/util"
	"smartshop/pkg/domain"
)

// ProcessPayment submits amount for the current user (omitted when logged
// out). Unlike search and login, failures are both notified and returned.
func (a *App) ProcessPayment(ctx context.Context, amount decimal.Decimal) (domain.PaymentResult, error) {
	req := domain.PaymentRequest{Amount: amount}
	a.mu.Lock()
	if a.state.User != nil {
		req.User = a.state.User.ID
	}
	a.mu.Unlock()

	logger := util.LoggerFromContext(ctx)
	result, err := a.payments.Submit(ctx, req)
	if err != nil {
		logger.Error("payment failed", "amount", amount.String(), "err", err)
		a.notifier.Show("Payment processing failed", domain.SeverityError)
		return domain.PaymentResult{}, fmt.Errorf("process payment: %w", err)
	}
	logger.Info("payment submitted", "amount", amount.String(), "user_id", req.User)
	return result, nil
}

// GenerateQR hands the response's qrUrl to the view. No QR encoding happens here.
func (a *App) GenerateQR(result domain.PaymentResult) error {
	url := strings.TrimSpace(result.QRURL)
	if url == "" {
		return ErrMissingQRURL
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.RenderQR(url)
	return nil
}

// Checkout is the payment form submit: pay, then show the QR confirmation.
func (a *App) Checkout(ctx context.Context, amount decimal.Decimal) (domain.PaymentResult, error) {
	result, err := a.ProcessPayment(ctx, amount)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	if err := a.GenerateQR(result); err != nil {
		return result, err
	}
	return result, nil
}
