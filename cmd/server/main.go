// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stremin/accountengine/internal/api"
	"github.com/stremin/accountengine/internal/audit"
	"github.com/stremin/accountengine/internal/auth"
	"github.com/stremin/accountengine/internal/cache"
	"github.com/stremin/accountengine/internal/config"
	"github.com/stremin/accountengine/internal/engine"
	"github.com/stremin/accountengine/internal/eventprocessor"
	"github.com/stremin/accountengine/internal/loader"
	"github.com/stremin/accountengine/internal/logging"
	"github.com/stremin/accountengine/internal/supervisor"
	ws "github.com/stremin/accountengine/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().Str("data_dir", cfg.DataDir).Msg("starting accounts server")

	now := cfg.NowOverride
	if now == 0 {
		now, err = loader.ReadNow(cfg.DataDir)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to read options.txt")
		}
	}

	store := engine.NewStore(0, now)
	stats, err := loader.Load(cfg.DataDir, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load data.zip")
	}
	logging.Info().
		Int("files", stats.Files).
		Int64("accounts", stats.Accounts).
		Int("now", int(now)).
		Msg("bulk load complete")

	var responseCache *cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.New()
	}

	publisher := eventprocessor.NewPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing event publisher")
		}
	}()

	var gate *auth.Gate
	var jwtMgr *auth.JWTManager
	if cfg.Auth.Enabled {
		gate = auth.NewGate(cfg.Auth.TokenHash)
		if cfg.Auth.JWTSecret != "" {
			jwtMgr, err = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTimeout)
			if err != nil {
				logging.Fatal().Err(err).Msg("failed to initialize JWT manager")
			}
		}
		if gate == nil && jwtMgr == nil {
			logging.Fatal().Msg("auth.enabled is true but neither token_hash nor jwt_secret is set")
		}
		logging.Info().Msg("write-endpoint auth enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())

	var auditLog *audit.Log
	if cfg.Audit.Enabled {
		auditLog, err = audit.Open(cfg.Audit.Path)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to open audit log")
		}
		defer func() {
			if err := auditLog.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing audit log")
			}
		}()
		tree.AddDataService(supervisor.NewFuncService("audit-follower", func(ctx context.Context) error {
			return auditLog.Follow(ctx, publisher)
		}))
		logging.Info().Str("path", cfg.Audit.Path).Msg("mutation audit log enabled")
	}

	hub := ws.NewHub()
	tree.AddAPIService(supervisor.NewFuncService("websocket-hub", hub.Run))
	tree.AddAPIService(supervisor.NewFuncService("websocket-follower", func(ctx context.Context) error {
		return hub.Follow(ctx, publisher)
	}))

	handler := api.NewHandler(store, responseCache, publisher)
	router := api.NewRouter(handler, ws.Handler(hub), gate, jwtMgr)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree error")
	}

	logging.Info().Msg("accounts server stopped gracefully")
}
