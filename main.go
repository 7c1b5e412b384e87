// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/feedback-page/cliparse"
	"github.com/danielhkuo/feedback-page/identity"
	"github.com/danielhkuo/feedback-page/kv"
	"github.com/danielhkuo/feedback-page/logging"
	"github.com/danielhkuo/feedback-page/middleware"
	"github.com/danielhkuo/feedback-page/notify"
	"github.com/danielhkuo/feedback-page/router"
	"github.com/danielhkuo/feedback-page/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(logging.Options{
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		slog.Error("logging setup failed", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Open the key-value store (creates the schema for SQL backends)
	kvStore, err := kv.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	st := store.New(kvStore)
	defer st.Close()
	slog.Info("Store ready", "type", cfg.DatabaseType)

	// Identity provider
	identityClient := identity.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
	verifier := identity.NewVerifier(cfg.SupabaseJWTSecret, identityClient)
	if cfg.SupabaseURL == "" {
		slog.Warn("SUPABASE_URL not set; signup and checkout are unavailable")
	}

	// Notifications
	var notifier notify.Notifier = notify.Nop{}
	var mail *notify.Async
	if cfg.SMTPEnabled() {
		mail = notify.NewAsync(notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}))
		notifier = mail
		slog.Info("Email notifications enabled", "smtp_host", cfg.SMTPHost)
	}

	if cfg.AnonKey == "" {
		slog.Warn("ANON_KEY not set; API routes accept unauthenticated requests")
	}

	// Create router
	mux := router.NewRouter(st, cfg, router.Services{
		Notifier: notifier,
		Users:    identityClient,
		Verifier: verifier,
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}
	slog.Info("Listening", "port", cfg.Port, "base_path", cfg.BasePath)
	if err := serve(ctx, &server, ln, 10*time.Second); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}

	// Shutdown has returned, so no handler can queue more mail
	if mail != nil {
		mail.Close()
	}
}

// serve runs srv on ln until ctx is cancelled, then shuts it down and waits
// for in-flight requests, up to grace.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
