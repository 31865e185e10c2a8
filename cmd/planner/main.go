// Package main is the entry point for the trip planner server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/locations"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/session"
	"github.com/pkordes/trip-planner/migrations"
)

// Idle client states are dropped after idleTimeout; the sweep runs every
// sweepInterval. Saved credentials outlive the sweep.
const (
	idleTimeout   = 30 * time.Minute
	sweepInterval = 5 * time.Minute
)

func main() {
	// --- Flags ------------------------------------------------------------
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	secureCookie := pflag.Bool("secure-cookie", false, "mark the client-id cookie Secure (serve over HTTPS)")
	pflag.Parse()

	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(*envFile); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Session store ----------------------------------------------------
	// Postgres keeps clients logged in across restarts; without DATABASE_URL
	// credentials live in memory.
	var sessions session.Store = session.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db := stdlib.OpenDBFromPool(pool)
		if err := migrations.Up(context.Background(), db); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}

		sessions = session.NewPostgresStore(pool)
		slog.Info("database connection established")
	} else {
		slog.Info("DATABASE_URL not set, keeping sessions in memory")
	}

	// --- Application ------------------------------------------------------
	gw := gateway.New(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout})
	registry := app.NewRegistry(app.Deps{
		Gateway:         gw,
		Sessions:        sessions,
		Locations:       locations.Default(),
		Logger:          logger,
		NotificationTTL: cfg.NotificationTTL,
		RedirectDelay:   cfg.RedirectDelay,
	})
	defer registry.Close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweep(sweepCtx, registry)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → ClientID → Logger
	// → Recoverer → CORS → MaxBodySize. ClientID runs before the logger so
	// each request line carries the client id.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewClientIDHandler(*secureCookie))
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", handler.NewServer(registry, gw, logger).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for slow backend searches.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"backend", cfg.BackendURL,
			"cors_origins", strings.Join(cfg.CORSOrigins, ","),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// sweep drops idle client states until ctx is done.
func sweep(ctx context.Context, registry *app.Registry) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Sweep(idleTimeout); n > 0 {
				slog.Debug("idle clients dropped", "count", n, "live", registry.Len())
			}
		}
	}
}
