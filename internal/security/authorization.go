package security

import (
	"fmt"
	"log/slog"
)

// Role represents an account role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission represents an action permission
type Permission string

const (
	PermManagePortfolio   Permission = "manage_portfolio"
	PermSendNotifications Permission = "send_notifications"
	PermExportReports     Permission = "export_reports"
	PermManageSettings    Permission = "manage_settings"
	PermBackupDatabase    Permission = "backup_database"
)

// RolePermissions maps roles to their permissions. Every account manages its
// own portfolio; backup/restore and sender settings are admin-only.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermManagePortfolio,
		PermSendNotifications,
		PermExportReports,
		PermManageSettings,
		PermBackupDatabase,
	},
	RoleUser: {
		PermManagePortfolio,
		PermSendNotifications,
		PermExportReports,
	},
}

// AuthorizationService handles authorization checks
type AuthorizationService struct {
	logger *slog.Logger
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(logger *slog.Logger) *AuthorizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizationService{logger: logger}
}

// HasPermission checks if a role has a specific permission
func (as *AuthorizationService) HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidatePermission validates that a role has a specific permission
func (as *AuthorizationService) ValidatePermission(role Role, permission Permission) error {
	if !as.HasPermission(role, permission) {
		as.logger.Warn("permission denied",
			slog.String("role", string(role)),
			slog.String("permission", string(permission)),
		)
		return fmt.Errorf("permission denied: %s role cannot %s", role, permission)
	}
	return nil
}
