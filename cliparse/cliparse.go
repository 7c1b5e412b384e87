// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BasePath     string

	// AnonKey is the public bearer token every client call carries.
	// Empty disables the check.
	AnonKey string

	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogFile   string
	LogLevel  string
	LogFormat string
}

// SMTPEnabled reports whether outgoing mail is configured
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// ParseFlags loads the env file, then reads flags with environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("feedback-page", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", ".env", "Env file to load (missing file is ignored)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Store type (sqlite, postgres or redis)")
	fs.StringVar(&cfg.BasePath, "base-path", "", "Path prefix for all API routes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AnonKey, "anon-key", "", "Public anon key (prefer env)")
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", "", "Supabase project URL")
	fs.StringVar(&cfg.SupabaseServiceRoleKey, "service-role-key", "", "Supabase service role key (prefer env)")
	fs.StringVar(&cfg.SupabaseJWTSecret, "jwt-secret", "", "Supabase JWT secret (prefer env)")

	// Mail
	fs.StringVar(&cfg.SMTPHost, "smtp-host", "", "SMTP host")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", 0, "SMTP port")
	fs.StringVar(&cfg.SMTPUsername, "smtp-user", "", "SMTP username")
	fs.StringVar(&cfg.SMTPPassword, "smtp-password", "", "SMTP password (prefer env)")
	fs.StringVar(&cfg.SMTPFrom, "smtp-from", "", "Sender address for notifications")

	// Logging
	fs.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file (rotated)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment variables win over the file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", "sqlite")
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "redis":
	default:
		return Config{}, fmt.Errorf("invalid database type %q (want sqlite, postgres or redis)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = "file:feedback-page.db"
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.BasePath == "" {
		cfg.BasePath = envOr("BASE_PATH", "/api")
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.BasePath == "/" {
		cfg.BasePath = ""
	}

	fallback(&cfg.AnonKey, "ANON_KEY")
	fallback(&cfg.SupabaseURL, "SUPABASE_URL")
	fallback(&cfg.SupabaseServiceRoleKey, "SUPABASE_SERVICE_ROLE_KEY")
	fallback(&cfg.SupabaseJWTSecret, "SUPABASE_JWT_SECRET")
	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")

	fallback(&cfg.SMTPHost, "SMTP_HOST")
	fallback(&cfg.SMTPUsername, "SMTP_USERNAME")
	fallback(&cfg.SMTPPassword, "SMTP_PASSWORD")
	fallback(&cfg.SMTPFrom, "SMTP_FROM")
	if cfg.SMTPPort == 0 {
		port, err := envInt("SMTP_PORT", 587)
		if err != nil {
			return Config{}, err
		}
		cfg.SMTPPort = port
	}

	fallback(&cfg.LogFile, "LOG_FILE")
	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", "text")
	}

	return cfg, nil
}

func fallback(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
