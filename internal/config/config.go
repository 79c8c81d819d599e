package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"VERSION" default:"dev"`

	// DatabaseURL is the service-role Postgres connection of the hosted
	// store. Row-level security still guards clients that connect with
	// restricted credentials; this service performs its own membership
	// checks before writes.
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Identity provider (GoTrue-compatible).
	SupabaseURL            string `envconfig:"SUPABASE_URL" required:"true"`
	SupabaseAnonKey        string `envconfig:"SUPABASE_ANON_KEY" required:"true"`
	SupabaseServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY" required:"true"`

	// SupabaseJWTSecret enables local verification of access tokens. When
	// empty, tokens are verified by asking the provider instead.
	SupabaseJWTSecret string `envconfig:"SUPABASE_JWT_SECRET" default:""`

	// Optional email relay for invite links.
	ResendAPIKey string `envconfig:"RESEND_API_KEY" default:""`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"Divisadero <noreply@divisadero.app>"`

	// SiteURL is where invite links land after the signed-link flow.
	SiteURL string `envconfig:"SITE_URL" default:"http://localhost:5173"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// Load reads configuration from the environment into a Config struct.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("environment loaded from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
