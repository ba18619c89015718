package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"smartshop/internal/app"
	"smartshop/internal/authclient"
	"smartshop/internal/catalogclient"
	"smartshop/internal/config"
	"smartshop/internal/notify"
	"smartshop/internal/paymentclient"
	"smartshop/internal/persist"
	"smartshop/internal/updatecheck"
	"smartshop/internal/util"
	"smartshop/pkg/store"
)

// buildApp loads config, wires every collaborator and hydrates state.
func buildApp(ctx context.Context, path, levelOverride string, out io.Writer) (*app.App, *textView, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if strings.TrimSpace(levelOverride) != "" {
		level = levelOverride
	}
	util.InitLogger(level, os.Stderr)

	kv, err := store.Open(store.Options{
		Backend:        cfg.Store.Backend,
		DataDir:        cfg.Store.DataDir,
		RedisAddr:      cfg.Store.RedisAddr,
		RedisPassword:  cfg.Store.RedisPassword,
		RedisPrefix:    cfg.Store.RedisPrefix,
		DatabaseURL:    cfg.Store.DatabaseURL,
		MinioEndpoint:  cfg.Store.MinioEndpoint,
		MinioAccessKey: cfg.Store.MinioAccessKey,
		MinioSecretKey: cfg.Store.MinioSecretKey,
		MinioBucket:    cfg.Store.MinioBucket,
		MinioUseSSL:    cfg.Store.MinioUseSSL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	if c, ok := kv.(io.Closer); ok {
		closeStore = func() { _ = c.Close() }
	}

	tv := newTextView(out)
	timeout := cfg.HTTPTimeout()
	shop, err := app.New(app.Config{
		Auth:     authclient.NewClient(cfg.APIBaseURL, timeout),
		Catalog:  catalogclient.NewClient(cfg.SearchURL, cfg.PricesURL, timeout),
		Payments: paymentclient.NewClient(cfg.APIBaseURL, timeout),
		Store:    persist.New(kv),
		Notifier: notify.New(notify.Config{
			Display:  tv,
			Duration: cfg.NotificationDuration(),
		}),
		View:          tv,
		Updates:       updatecheck.New(cfg.UpdateURL, timeout),
		DebounceDelay: cfg.Debounce(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init app: %w", err)
	}
	if err := shop.Bootstrap(util.ContextWithRequestID(ctx, "")); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap: %w", err)
	}
	return shop, tv, nil
}
