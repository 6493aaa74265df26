package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/core"
	_ "github.com/JonMunkholm/dashboard/internal/core/resources" // Register all routes
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/store"
	"github.com/JonMunkholm/dashboard/internal/web"
	"github.com/joho/godotenv"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

func main() {
	os.Exit(int(run()))
}

// run starts the API server and returns the process exit code once it
// stops.
func run() ExitCode {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return exitCodeError
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"prefix", cfg.API.Prefix,
		"db_max_conns", cfg.Database.MaxConns,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	db, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		return exitCodeError
	}
	defer db.Close()

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	logRoutes(cfg.API.Prefix)

	server := web.NewServer(core.NewService(db), db, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return exitCodeError
	}
	slog.Info("server stopped")
	return exitCodeSuccess
}

// logRoutes lists the mounted resources at debug level.
func logRoutes(prefix string) {
	slog.Info("routes registered", "count", core.Count())
	for _, tag := range core.Tags {
		for _, res := range core.ByTag(tag) {
			slog.Debug("route",
				"path", prefix+"/"+res.Key,
				"label", res.Label,
				"kind", res.Kind.String(),
				"tag", tag,
			)
		}
	}
}
