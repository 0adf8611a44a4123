package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mikkelsv/taskvault/internal/handler"
	"github.com/mikkelsv/taskvault/internal/metrics"
	"github.com/mikkelsv/taskvault/internal/repository/sqlite"
	"github.com/mikkelsv/taskvault/internal/service"
	"github.com/rs/cors"
)

// insecureDevSecret is the signing fallback used when JWT_SECRET is
// unset. It keeps local development working out of the box and must
// never reach production.
const insecureDevSecret = "your-super-secret-jwt-token-here-change-me"

func main() {
	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, logOpts)
	if os.Getenv("LOG_FORMAT") == "json" {
		logHandler = slog.NewJSONHandler(os.Stdout, logOpts)
	}
	slog.SetDefault(slog.New(logHandler))

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "taskvault.db")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = insecureDevSecret
		slog.Warn("JWT_SECRET not set, falling back to the built-in development secret; do not run like this in production")
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	allowedOrigins := strings.Split(envOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	taskService := service.NewTaskService(db.Tasks())
	recorder := metrics.NewRecorder()

	router := handler.NewRouter(authService, taskService, recorder)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
