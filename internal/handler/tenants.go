package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/store"
)

// TenantsHandler handles tenant endpoints
type TenantsHandler struct {
	sessions *store.SessionManager
	logger   *slog.Logger
}

// NewTenantsHandler creates a new tenants handler
func NewTenantsHandler(sessions *store.SessionManager, logger *slog.Logger) *TenantsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TenantsHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// TenantPayload is the wire form of a tenant
type TenantPayload struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	PropertyID      string   `json:"propertyId"`
	LeaseStartDate  string   `json:"leaseStartDate"`
	LeaseEndDate    string   `json:"leaseEndDate"`
	DepositAmount   float64  `json:"depositAmount"`
	Documents       []string `json:"documents"`
	CommPreferences string   `json:"commPreferences"`
	LastContactDate string   `json:"lastContactDate"`
	LastContactType string   `json:"lastContactType"`
	EmailNotify     bool     `json:"emailNotifications"`
	SMSNotify       bool     `json:"smsNotifications"`
}

func tenantPayload(t *domain.Tenant) TenantPayload {
	return TenantPayload{
		ID:              t.ID,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		PropertyID:      t.PropertyID,
		LeaseStartDate:  formatBodyDate(t.LeaseStartDate),
		LeaseEndDate:    formatBodyDate(t.LeaseEndDate),
		DepositAmount:   t.DepositAmount,
		Documents:       t.DocumentList(),
		CommPreferences: t.CommPreferences,
		LastContactDate: formatBodyDate(t.LastContactDate),
		LastContactType: t.LastContactType,
		EmailNotify:     t.EmailNotify,
		SMSNotify:       t.SMSNotify,
	}
}

// SaveTenantRequest is the mutable part of a tenant accepted on save
type SaveTenantRequest struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	PropertyID      string  `json:"propertyId"`
	LeaseStartDate  string  `json:"leaseStartDate"`
	LeaseEndDate    string  `json:"leaseEndDate"`
	DepositAmount   float64 `json:"depositAmount"`
	Documents       string  `json:"documents"`
	CommPreferences string  `json:"commPreferences"`
	EmailNotify     bool    `json:"emailNotifications"`
	SMSNotify       bool    `json:"smsNotifications"`
}

// Save handles POST /api/tenants. A zero id inserts, a non-zero id overwrites.
func (h *TenantsHandler) Save(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req SaveTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name == "" || req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "name and propertyId are required")
		return
	}

	leaseStart, err := parseBodyDate(req.LeaseStartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "leaseStartDate must be yyyy-mm-dd")
		return
	}
	leaseEnd, err := parseBodyDate(req.LeaseEndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "leaseEndDate must be yyyy-mm-dd")
		return
	}

	tenant := &domain.Tenant{
		ID:              req.ID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		PropertyID:      req.PropertyID,
		LeaseStartDate:  leaseStart,
		LeaseEndDate:    leaseEnd,
		DepositAmount:   req.DepositAmount,
		Documents:       req.Documents,
		CommPreferences: req.CommPreferences,
		EmailNotify:     req.EmailNotify,
		SMSNotify:       req.SMSNotify,
	}

	if err := session.Tenants.Save(tenant); err != nil {
		h.logger.Error("failed to save tenant",
			slog.String("tenant", req.Name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to save tenant")
		return
	}

	writeJSON(w, http.StatusOK, tenantPayload(tenant))
}

// List handles GET /api/tenants and GET /api/properties/{id}/tenants
func (h *TenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var tenants []*domain.Tenant
	if propertyID := r.PathValue("id"); propertyID != "" {
		tenants, err = session.Tenants.ListForProperty(propertyID)
	} else {
		tenants, err = session.Tenants.ListAll()
	}
	if err != nil {
		h.logger.Error("failed to list tenants", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list tenants")
		return
	}

	payload := make([]TenantPayload, 0, len(tenants))
	for _, t := range tenants {
		payload = append(payload, tenantPayload(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tenants": payload})
}

// Delete handles DELETE /api/tenants/{id}
func (h *TenantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	if err := session.Tenants.Delete(id); err != nil {
		h.logger.Error("failed to delete tenant",
			slog.Int64("tenant_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete tenant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
