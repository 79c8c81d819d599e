package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divisadero/divisadero/internal/api"
	"github.com/divisadero/divisadero/internal/auth"
	"github.com/divisadero/divisadero/internal/brand"
	"github.com/divisadero/divisadero/internal/config"
	"github.com/divisadero/divisadero/internal/database"
	"github.com/divisadero/divisadero/internal/email"
	"github.com/divisadero/divisadero/internal/identity"
	"github.com/divisadero/divisadero/internal/invite"
	"github.com/divisadero/divisadero/internal/org"
	"github.com/divisadero/divisadero/internal/profile"
)

//go:embed openapi.yaml
var openapiSpec []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	idClient := identity.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseServiceRoleKey)

	var verifier *auth.Verifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = auth.NewVerifier(cfg.SupabaseJWTSecret)
	} else {
		slog.Warn("no SUPABASE_JWT_SECRET configured; tokens will be verified via the identity provider")
	}

	orgs := org.NewRepository(db.Pool())
	profiles := profile.NewRepository(db.Pool())
	brands := brand.NewRepository(db.Pool())

	authService := auth.NewService(verifier, idClient, profiles)
	mailer := email.NewClient(cfg.ResendAPIKey, cfg.EmailFrom)
	inviteService := invite.NewService(orgs, profiles, idClient, mailer, cfg.SiteURL)

	router := api.NewRouter(api.RouterDeps{
		AuthService:    authService,
		InviteService:  inviteService,
		Orgs:           orgs,
		Profiles:       profiles,
		Brands:         brands,
		DBPinger:       db,
		Version:        cfg.Version,
		OpenAPISpec:    openapiSpec,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting Divisadero API", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
