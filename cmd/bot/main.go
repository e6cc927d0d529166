package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/bakulab/scrumbot/external/config"
	storeimpl "github.com/bakulab/scrumbot/external/store"
	"github.com/bakulab/scrumbot/external/telegram"
	"github.com/bakulab/scrumbot/internal/admin"
	"github.com/bakulab/scrumbot/internal/bot"
	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/handler"
	"github.com/bakulab/scrumbot/internal/identity"
	"github.com/bakulab/scrumbot/internal/ledger"
	"github.com/bakulab/scrumbot/internal/sched"
	"github.com/bakulab/scrumbot/internal/scrum"
	"github.com/samber/do/v2"
)

const (
	initialLoadTimeout = 15 * time.Second
	shutdownTimeout    = 10 * time.Second
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching scrum bot")
	runBot(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	storeimpl.RegisterDI(injector)
	telegram.RegisterDI(injector)
	identity.RegisterDI(injector)
	ledger.RegisterDI(injector)
	admin.RegisterDI(injector)
	sched.RegisterDI(injector)
	scrum.RegisterDI(injector)
	bot.RegisterDI(injector)
	handler.RegisterDI(injector)

	return injector
}

func runBot(cfg *config.Config, injector do.Injector) {
	scrumStore, err := do.Invoke[*scrum.Store](injector)
	if err != nil {
		slog.Error("failed to resolve scrum store", "error", err)
		os.Exit(1)
	}
	jobs, err := do.Invoke[*scrum.Jobs](injector)
	if err != nil {
		slog.Error("failed to resolve jobs", "error", err)
		os.Exit(1)
	}
	dispatcher, err := do.Invoke[*sched.Dispatcher](injector)
	if err != nil {
		slog.Error("failed to resolve dispatcher", "error", err)
		os.Exit(1)
	}
	h, err := do.Invoke[*handler.Handler](injector)
	if err != nil {
		slog.Error("failed to resolve http handler", "error", err)
		os.Exit(1)
	}

	// every successful configuration (re)load re-registers both triggers,
	// including the initial load below
	scrumStore.OnReload(func(c *scrum.Configuration) {
		jobs.RegisterTriggers(dispatcher, c)
	})

	ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	defer cancel()
	slog.Info("startup: loading scrum configuration")
	if _, err := scrumStore.Reload(ctx); err != nil {
		slog.Error("failed to load scrum configuration", "error", err)
		os.Exit(1)
	}

	dispatcher.Start()
	defer dispatcher.Stop()

	h.RegisterRoutes()
	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      h.Mux,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("startup: http server listening", "addr", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}
	slog.Info("shutdown complete")
}
