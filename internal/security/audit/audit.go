package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/rentledger/internal/security/middleware"
)

// Logger writes structured audit records for account and data actions
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger on top of the process logger
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (al *Logger) LogAction(ctx context.Context, username, action, resource, resourceID, status, details string) {
	requestID, _ := ctx.Value(middleware.RequestIDContextKey{}).(string)

	al.logger.Info("audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("username", username),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", requestID),
		slog.Time("timestamp", time.Now()),
	)
}

func (al *Logger) LogRegistration(ctx context.Context, username, status, details string) {
	al.LogAction(ctx, username, "register", "account", username, status, details)
}

func (al *Logger) LogLogin(ctx context.Context, username, status, details string) {
	al.LogAction(ctx, username, "login", "account", username, status, details)
}

func (al *Logger) LogPropertyDelete(ctx context.Context, username, propertyID, status, details string) {
	al.LogAction(ctx, username, "delete", "property", propertyID, status, details)
}

func (al *Logger) LogBackup(ctx context.Context, username, path, status, details string) {
	al.LogAction(ctx, username, "backup", "database", path, status, details)
}

func (al *Logger) LogNotification(ctx context.Context, username, template, status, details string) {
	al.LogAction(ctx, username, "notify", "email", template, status, details)
}

func (al *Logger) LogDenied(ctx context.Context, username, reason string) {
	al.LogAction(ctx, username, "access_denied", "api", "", "denied", reason)
}
