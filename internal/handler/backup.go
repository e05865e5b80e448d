package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/rentledger/internal/security"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/store"
)

// BackupHandler handles portfolio database backup and restore
type BackupHandler struct {
	sessions *store.SessionManager
	authz    *security.AuthorizationService
	audit    *audit.Logger
	logger   *slog.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(sessions *store.SessionManager, authz *security.AuthorizationService, auditLog *audit.Logger, logger *slog.Logger) *BackupHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &BackupHandler{
		sessions: sessions,
		authz:    authz,
		audit:    auditLog,
		logger:   logger,
	}
}

// BackupRequest names the file to copy the database to or from
type BackupRequest struct {
	Path string `json:"path"`
}

// Backup handles POST /api/backup. The session is closed around the file copy
// so the copy is a consistent snapshot.
func (h *BackupHandler) Backup(w http.ResponseWriter, r *http.Request) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermBackupDatabase); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "backup database")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	var req BackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := session.Backup(r.Context(), req.Path); err != nil {
		h.audit.LogBackup(r.Context(), claims.Username, req.Path, "failure", err.Error())
		h.logger.Error("backup failed",
			slog.String("username", claims.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}

	h.audit.LogBackup(r.Context(), claims.Username, req.Path, "success", "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "backup written", "path": req.Path})
}

// Restore handles POST /api/restore. The current database is replaced by the
// backup file contents.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermBackupDatabase); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "restore database")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	var req BackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := session.Restore(r.Context(), req.Path); err != nil {
		h.audit.LogBackup(r.Context(), claims.Username, req.Path, "failure", "restore: "+err.Error())
		h.logger.Error("restore failed",
			slog.String("username", claims.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "restore failed")
		return
	}

	h.audit.LogBackup(r.Context(), claims.Username, req.Path, "success", "restore")
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored", "path": req.Path})
}
