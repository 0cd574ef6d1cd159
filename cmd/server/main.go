package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/loungeap/spaceops/internal/auth"
	"github.com/loungeap/spaceops/internal/job"
	"github.com/loungeap/spaceops/internal/notify"
	"github.com/loungeap/spaceops/internal/schedule"
	"github.com/loungeap/spaceops/internal/service"
	"github.com/loungeap/spaceops/internal/storage/sqlite"
	"github.com/loungeap/spaceops/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			slog.Warn("ignoring invalid integer env var", "key", key, "value", value)
			return fallback
		}
		return parsed
	}
	return fallback
}

func main() {
	logging.Setup()

	addr := getEnv("ADDR", ":8080")
	dbPath := getEnv("DB_PATH", "./data/spaceops.db")
	emailEndpoint := getEnv("EMAIL_ENDPOINT", "https://loungeap.netlify.app/.netlify/functions/send-email")
	reminderHour := getEnvInt("REMINDER_HOUR", 10)

	// The single place where the local zone enters the system; every
	// schedule comparison downstream works in this zone.
	loc, err := schedule.LoadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		slog.Error("Failed to load time zone", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	sender := notify.NewEmailClient(emailEndpoint)
	runner := job.NewRunner(store, sender, loc)

	var (
		authenticator *auth.OperatorAuthenticator
		jwtManager    *auth.JWTManager
	)
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		operator := getEnv("OPERATOR_USER", "operator")
		passwordHash := os.Getenv("OPERATOR_PASSWORD_HASH")
		if passwordHash == "" {
			slog.Error("JWT_SECRET is set but OPERATOR_PASSWORD_HASH is missing")
			os.Exit(1)
		}
		authenticator = auth.NewOperatorAuthenticator(operator, passwordHash)
		jwtManager = auth.NewJWTManager(secret, 24*time.Hour)
		slog.Info("Operator authentication enabled", "operator", operator)
	} else {
		slog.Warn("JWT_SECRET not set; trigger endpoints are unauthenticated")
	}

	if getEnv("SCHEDULER_ENABLED", "true") == "true" {
		scheduler := job.NewScheduler(runner, loc, reminderHour)
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Internal scheduler disabled; expecting external trigger")
	}

	handler := service.NewHandler(runner, store, authenticator, jwtManager)

	// h2c allows HTTP/2 without TLS for operator tooling behind a
	// terminating proxy.
	server := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(handler.Routes(), &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting", "address", addr, "timezone", loc.String(), "reminder_hour", reminderHour)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
