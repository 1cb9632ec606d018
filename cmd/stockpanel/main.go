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

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	inventoryadapter "github.com/kevharding/stockpanel/internal/adapter/driven/inventory"
	sqliteadapter "github.com/kevharding/stockpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/kevharding/stockpanel/internal/adapter/driving/http"
	webhandler "github.com/kevharding/stockpanel/internal/adapter/driving/web"
	"github.com/kevharding/stockpanel/internal/application"
	"github.com/kevharding/stockpanel/internal/config"
	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env if present, then configuration (fail fast on missing
	// required env vars).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_base_url", cfg.APIBaseURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	session := application.NewSession(credentialStore)

	// 6. Seed the API client from stored credentials so an earlier login
	// survives a restart. An undecryptable or absent token leaves the
	// provider empty until the next login through the GUI.
	newClient := func(token string) driven.InventoryClient {
		return inventoryadapter.NewClient(cfg.APIBaseURL, token)
	}

	var client driven.InventoryClient
	if token := session.Token(ctx); token != "" {
		client = newClient(token)
		slog.Info("inventory client restored from stored credentials")
	} else {
		slog.Info("no stored credentials, login required")
	}
	provider := application.NewInventoryClientProvider(client)

	// 7. Create handlers and register routes.
	apiHandler := httphandler.NewHandler(session, provider, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(session, provider, newClient, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("stockpanel started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal, then drain the HTTP server.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
