package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/notify"
	"github.com/yourorg/rentledger/internal/observability/metrics"
	"github.com/yourorg/rentledger/internal/security"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/store"
)

// NotifyHandler handles tenant notification endpoints
type NotifyHandler struct {
	sessions *store.SessionManager
	mailer   *notify.Mailer
	settings *notify.Settings
	authz    *security.AuthorizationService
	audit    *audit.Logger
	logger   *slog.Logger
}

// NewNotifyHandler creates a new notification handler
func NewNotifyHandler(sessions *store.SessionManager, mailer *notify.Mailer, settings *notify.Settings, authz *security.AuthorizationService, auditLog *audit.Logger, logger *slog.Logger) *NotifyHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &NotifyHandler{
		sessions: sessions,
		mailer:   mailer,
		settings: settings,
		authz:    authz,
		audit:    auditLog,
		logger:   logger,
	}
}

// Templates handles GET /api/notifications/templates
func (h *NotifyHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": notify.TemplateNames()})
}

// SendRequest delivers one rendered template to a single address
type SendRequest struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

// Send handles POST /api/notifications/send
func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermSendNotifications); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "send notification")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.To == "" || req.Template == "" {
		writeError(w, http.StatusBadRequest, "to and template are required")
		return
	}

	if err := h.mailer.Send(req.To, req.Subject, req.Template, req.Params); err != nil {
		metrics.ObserveEmail(req.Template, "failure")
		h.audit.LogNotification(r.Context(), claims.Username, req.Template, "failure", err.Error())
		if errors.Is(err, notify.ErrNotConfigured) {
			writeError(w, http.StatusConflict, "email settings not configured")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to send email")
		return
	}

	metrics.ObserveEmail(req.Template, "success")
	h.audit.LogNotification(r.Context(), claims.Username, req.Template, "success", req.To)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// BulkSendRequest delivers a template to every opted-in tenant, optionally
// scoped to one property
type BulkSendRequest struct {
	PropertyID string            `json:"propertyId"`
	Subject    string            `json:"subject"`
	Template   string            `json:"template"`
	Params     map[string]string `json:"params"`
}

// SendBulk handles POST /api/notifications/bulk. Contacted tenants get their
// last-contact fields stamped and persisted.
func (h *NotifyHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermSendNotifications); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "send bulk notification")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	var req BulkSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Template == "" {
		writeError(w, http.StatusBadRequest, "template is required")
		return
	}

	var tenants []*domain.Tenant
	if req.PropertyID != "" {
		tenants, err = session.Tenants.ListForProperty(req.PropertyID)
	} else {
		tenants, err = session.Tenants.ListAll()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tenants")
		return
	}

	if err := h.mailer.SendBulk(tenants, req.Subject, req.Template, req.Params); err != nil {
		metrics.ObserveEmail(req.Template, "failure")
		h.audit.LogNotification(r.Context(), claims.Username, req.Template, "failure", err.Error())
		if errors.Is(err, notify.ErrNotConfigured) {
			writeError(w, http.StatusConflict, "email settings not configured")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to send emails")
		return
	}

	// persist the last-contact stamps set during the send
	contacted := 0
	for _, t := range tenants {
		if !t.EmailNotify || t.Email == "" {
			continue
		}
		contacted++
		if err := session.Tenants.Save(t); err != nil {
			h.logger.Warn("failed to persist last contact",
				slog.Int64("tenant_id", t.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	metrics.ObserveEmail(req.Template, "success")
	h.audit.LogNotification(r.Context(), claims.Username, req.Template, "success", "bulk send")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "sent",
		"contacted": contacted,
	})
}

// EmailSettingsResponse reports the configured sender without exposing the key
type EmailSettingsResponse struct {
	Email      string `json:"email"`
	Configured bool   `json:"configured"`
}

// UpdateSettingsRequest replaces the sender address and API key
type UpdateSettingsRequest struct {
	Email  string `json:"email"`
	APIKey string `json:"apiKey"`
}

// GetSettings handles GET /api/settings/email
func (h *NotifyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermManageSettings); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "read email settings")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	writeJSON(w, http.StatusOK, EmailSettingsResponse{
		Email:      h.settings.Email,
		Configured: h.settings.Valid(),
	})
}

// UpdateSettings handles PUT /api/settings/email
func (h *NotifyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	claims := requestClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermManageSettings); err != nil {
		h.audit.LogDenied(r.Context(), claims.Username, "update email settings")
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "email and apiKey are required")
		return
	}

	h.settings.Email = req.Email
	h.settings.APIKey = req.APIKey
	if err := h.settings.Save(); err != nil {
		h.logger.Error("failed to save email settings", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	h.logger.Info("email settings updated", slog.String("username", claims.Username))
	writeJSON(w, http.StatusOK, map[string]string{"status": "settings updated"})
}
