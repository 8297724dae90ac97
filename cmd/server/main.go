// Canvas Console - Canvas LMS Administrative Console and Folder Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/canvas-console

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/canvas-console/internal/api"
	"github.com/tomtom215/canvas-console/internal/canvas"
	"github.com/tomtom215/canvas-console/internal/config"
	"github.com/tomtom215/canvas-console/internal/console"
	"github.com/tomtom215/canvas-console/internal/logging"
	"github.com/tomtom215/canvas-console/internal/supervisor"
	"github.com/tomtom215/canvas-console/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("canvas_base_url", cfg.Canvas.BaseURL).
		Bool("admin_token", cfg.Canvas.Token != "").
		Int64("account_id", cfg.Canvas.AccountID).
		Msg("Configuration loaded")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin")
	}
	if cfg.Console.SessionSecret == "" {
		logging.Warn().Msg("No console session secret set; sessions end on restart")
	}

	clients := canvas.NewFactory(canvas.Config{
		BaseURL: cfg.Canvas.BaseURL,
		Timeout: cfg.Canvas.Timeout,
		PerPage: cfg.Canvas.PerPage,
	})

	ui, err := console.New(clients, console.Options{
		BaseURL:        cfg.Canvas.BaseURL,
		CoursesPerPage: cfg.Console.CoursesPerPage,
		SessionMaxAge:  cfg.Console.SessionMaxAge,
		SessionSecret:  cfg.Console.SessionSecret,
		SecureCookie:   cfg.Console.SecureCookie,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize console")
	}

	corsConfig := api.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Security.CORSOrigins
	router := api.NewRouter(api.NewHandler(clients, cfg), ui.Routes(), corsConfig)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		// Canvas calls are bounded by their own timeout; leave room for it.
		WriteTimeout: cfg.Server.Timeout + cfg.Canvas.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewSessionJanitor(ui.Sessions(), services.DefaultJanitorInterval))
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting canvas console")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
	logging.Info().Msg("Canvas console stopped")
}
