package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourorg/rentledger/internal/featureflags"
	"github.com/yourorg/rentledger/internal/handler"
	"github.com/yourorg/rentledger/internal/infrastructure/logger"
	"github.com/yourorg/rentledger/internal/notify"
	"github.com/yourorg/rentledger/internal/observability/metrics"
	"github.com/yourorg/rentledger/internal/observability/tracing"
	"github.com/yourorg/rentledger/internal/repository"
	"github.com/yourorg/rentledger/internal/security"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/security/auth"
	"github.com/yourorg/rentledger/internal/security/middleware"
	"github.com/yourorg/rentledger/internal/security/ratelimit"
	"github.com/yourorg/rentledger/internal/service"
	"github.com/yourorg/rentledger/internal/store"
	"github.com/yourorg/rentledger/pkg/config"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	log.Info("starting rentledger server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracing, err := tracing.Init(ctx, log, "rentledger", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Open the credentials database
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Error("failed to create data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	credentialsDB, err := store.Open(ctx, store.CredentialsDBPath(cfg.DataDir), log)
	if err != nil {
		log.Error("failed to open credentials database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer credentialsDB.Close()
	if err := store.EnsureUsersSchema(credentialsDB); err != nil {
		log.Error("failed to ensure users schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Initialize per-user session manager and services
	sessions := store.NewSessionManager(cfg.DataDir, log)
	defer sessions.CloseAll()

	userRepo := repository.NewSqliteUserRepository(credentialsDB, log)
	authService := service.NewAuthService(userRepo, sessions, log)

	// 6. Email settings and mailer
	settings, err := notify.LoadSettings(cfg.SettingsFile)
	if err != nil {
		log.Error("failed to load email settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	mailer := notify.NewMailer(settings, log)
	if featureflags.Enabled(featureflags.EmailDryRun) {
		mailer.SetDryRun(true)
		log.Info("email dry run enabled")
	}

	// 7. Security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "rentledger")
	rateLimiter := ratelimit.NewLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	auditLogger := audit.NewLogger(log)
	authz := security.NewAuthorizationService(log)

	// 8. Handlers
	authHandler := handler.NewAuthHandler(authService, tokenManager, cfg.TokenTTL, auditLogger, log)
	propertiesHandler := handler.NewPropertiesHandler(sessions, auditLogger, log)
	tenantsHandler := handler.NewTenantsHandler(sessions, log)
	maintenanceHandler := handler.NewMaintenanceHandler(sessions, log)
	paymentsHandler := handler.NewPaymentsHandler(sessions, log)
	expensesHandler := handler.NewExpensesHandler(sessions, log)
	reportsHandler := handler.NewReportsHandler(sessions, authz, log)
	notifyHandler := handler.NewNotifyHandler(sessions, mailer, settings, authz, auditLogger, log)
	dashboardHandler := handler.NewDashboardHandler(sessions, cfg.DashboardCacheTTL, log)
	backupHandler := handler.NewBackupHandler(sessions, authz, auditLogger, log)
	healthHandler := handler.NewHealthHandler(credentialsDB, log)

	// 9. Routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/account/password", authHandler.ChangePassword)
	mux.HandleFunc("PUT /api/account/email", authHandler.UpdateEmail)

	mux.HandleFunc("GET /api/properties", propertiesHandler.List)
	mux.HandleFunc("POST /api/properties", propertiesHandler.Save)
	mux.HandleFunc("GET /api/properties/{id}", propertiesHandler.Get)
	mux.HandleFunc("DELETE /api/properties/{id}", propertiesHandler.Delete)
	mux.HandleFunc("POST /api/properties/{id}/photos", propertiesHandler.AddPhoto)
	mux.HandleFunc("GET /api/properties/{id}/photos", propertiesHandler.ListPhotos)

	mux.HandleFunc("GET /api/tenants", tenantsHandler.List)
	mux.HandleFunc("POST /api/tenants", tenantsHandler.Save)
	mux.HandleFunc("DELETE /api/tenants/{id}", tenantsHandler.Delete)
	mux.HandleFunc("GET /api/properties/{id}/tenants", tenantsHandler.List)

	mux.HandleFunc("POST /api/maintenance", maintenanceHandler.Report)
	mux.HandleFunc("DELETE /api/maintenance/{id}", maintenanceHandler.Delete)
	mux.HandleFunc("GET /api/properties/{id}/maintenance", maintenanceHandler.List)
	mux.HandleFunc("PUT /api/properties/{id}/maintenance/{requestId}", maintenanceHandler.Update)
	mux.HandleFunc("POST /api/properties/{id}/maintenance/{requestId}/complete", maintenanceHandler.Complete)
	mux.HandleFunc("POST /api/properties/{id}/maintenance/{requestId}/cancel", maintenanceHandler.Cancel)

	mux.HandleFunc("POST /api/payments", paymentsHandler.Record)
	mux.HandleFunc("GET /api/tenants/{id}/payments", paymentsHandler.ListForTenant)
	mux.HandleFunc("POST /api/properties/{id}/payment-dates", paymentsHandler.LogPaymentDate)
	mux.HandleFunc("GET /api/properties/{id}/payment-dates", paymentsHandler.PaymentDates)

	mux.HandleFunc("POST /api/expenses", expensesHandler.Record)
	mux.HandleFunc("GET /api/properties/{id}/expenses", expensesHandler.List)

	mux.HandleFunc("GET /api/reports/pdf", reportsHandler.ExportPDF)
	mux.HandleFunc("GET /api/reports/excel", reportsHandler.ExportExcel)

	mux.HandleFunc("GET /api/notifications/templates", notifyHandler.Templates)
	mux.HandleFunc("POST /api/notifications/send", notifyHandler.Send)
	mux.HandleFunc("POST /api/notifications/bulk", notifyHandler.SendBulk)
	mux.HandleFunc("GET /api/settings/email", notifyHandler.GetSettings)
	mux.HandleFunc("PUT /api/settings/email", notifyHandler.UpdateSettings)

	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Summary)
	mux.HandleFunc("POST /api/backup", backupHandler.Backup)
	mux.HandleFunc("POST /api/restore", backupHandler.Restore)

	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Readiness)
	mux.Handle("/metrics", promhttp.Handler())

	// Chain middleware: request ID -> metrics -> content type -> JWT -> rate limit
	rootHandler := middleware.RequestIDMiddleware()(
		metrics.HTTPMetricsMiddleware(
			middleware.ValidateJSONContentType(log)(
				middleware.JWTMiddleware(tokenManager, log)(
					middleware.RateLimitMiddleware(rateLimiter, log)(mux),
				),
			),
		),
	)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("data_dir", cfg.DataDir),
		slog.Int("rate_limit", cfg.RateLimitRequests),
		slog.String("rate_limit_window", cfg.RateLimitWindow.String()),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	rateLimiter.Stop()
	log.Info("server stopped")
}
