package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkpress/inkctl/internal/adapter/outbound/rest"
	"github.com/inkpress/inkctl/internal/adapter/outbound/state"
	"github.com/inkpress/inkctl/internal/config"
	"github.com/inkpress/inkctl/internal/domain/navigation"
	"github.com/inkpress/inkctl/internal/domain/query"
	"github.com/inkpress/inkctl/internal/domain/session"
	"github.com/inkpress/inkctl/internal/service"
)

// app wires the session store, REST client, and services together for
// one command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	snapshots *state.SnapshotStore
	client    *rest.Client
	store     *session.Store

	auth       *service.AuthService
	categories *service.CategoriesService
	authors    *service.AuthorsService
	blogs      *service.BlogsService
	uploads    *service.UploadsService
}

// newApp loads config and constructs the full client stack.
//
// Construction order matters: the client is built first with the
// durable credential source, the store second on top of the auth
// service, and only then is the store bound back onto the client as the
// in-memory half of the forced-logout path.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if sessionPath != "" {
		cfg.Session.Path = sessionPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	if dir := filepath.Dir(cfg.Session.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	metrics := rest.NewMetrics(registry)

	snapshots := state.NewSnapshotStore(cfg.Session.Path, logger)
	nav := navigation.LoginPrompt(os.Stderr)

	client := rest.NewClient(cfg.API.BaseURL,
		rest.WithTimeout(cfg.RequestTimeout()),
		rest.WithCredentialSource(state.NewTokenSource(snapshots)),
		rest.WithNavigator(nav),
		rest.WithMetrics(metrics),
		rest.WithLogger(logger),
		rest.WithReadAttempts(uint(cfg.Retry.ReadAttempts)),
		rest.WithRetryBaseDelay(cfg.RetryBaseDelay()),
		rest.WithRetryMaxDelay(cfg.RetryMaxDelay()),
	)

	auth := service.NewAuthService(client)
	store := session.NewStore(snapshots, auth, nav, session.WithLogger(logger))
	client.BindSession(store)
	store.InitializeAuth()

	var cache *query.Cache
	if freshFor := cfg.CacheFreshFor(); freshFor > 0 {
		cache = query.NewCache(
			query.WithFreshFor(freshFor),
			query.WithCounters(metrics.CacheHitsTotal, metrics.CacheMissesTotal),
		)
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		snapshots:  snapshots,
		client:     client,
		store:      store,
		auth:       auth,
		categories: service.NewCategoriesService(client, cache),
		authors:    service.NewAuthorsService(client, cache),
		blogs:      service.NewBlogsService(client, cache),
		uploads:    service.NewUploadsService(client),
	}, nil
}

// printResult renders v as JSON when --json is set, otherwise via the
// provided human-readable printer.
func printResult(v any, human func()) error {
	if !jsonOutput {
		human()
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
