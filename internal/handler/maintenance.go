package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/store"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	sessions *store.SessionManager
	logger   *slog.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(sessions *store.SessionManager, logger *slog.Logger) *MaintenanceHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &MaintenanceHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// MaintenancePayload is the wire form of a maintenance request
type MaintenancePayload struct {
	ID             int64   `json:"id"`
	PropertyID     string  `json:"propertyId"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	ReportedDate   string  `json:"reportedDate"`
	CompletedDate  string  `json:"completedDate"`
	Cost           float64 `json:"cost"`
	Notes          string  `json:"notes"`
	ScheduledDate  string  `json:"scheduledDate"`
	ContractorName string  `json:"contractorName"`
	Overdue        bool    `json:"overdue"`
}

func maintenancePayload(m *domain.MaintenanceRequest, now time.Time) MaintenancePayload {
	return MaintenancePayload{
		ID:             m.ID,
		PropertyID:     m.PropertyID,
		Description:    m.Description,
		Status:         m.Status,
		Priority:       m.Priority,
		ReportedDate:   formatBodyDate(m.ReportedDate),
		CompletedDate:  formatBodyDate(m.CompletedDate),
		Cost:           m.Cost,
		Notes:          m.Notes,
		ScheduledDate:  formatBodyDate(m.ScheduledDate),
		ContractorName: m.ContractorName,
		Overdue:        m.IsOverdue(now),
	}
}

// ReportRequest opens a new pending maintenance request
type ReportRequest struct {
	PropertyID  string `json:"propertyId"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Report handles POST /api/maintenance
func (h *MaintenanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.PropertyID == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "propertyId and description are required")
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}

	request := domain.NewMaintenanceRequest(req.PropertyID, req.Description, req.Priority, time.Now())
	if err := session.Maintenance.Save(request); err != nil {
		h.logger.Error("failed to save maintenance request",
			slog.String("property_id", req.PropertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to save maintenance request")
		return
	}

	writeJSON(w, http.StatusCreated, maintenancePayload(request, time.Now()))
}

// UpdateRequest carries the editable fields of an open request
type UpdateRequest struct {
	Status         string  `json:"status"`
	ScheduledDate  string  `json:"scheduledDate"`
	ContractorName string  `json:"contractorName"`
	Notes          string  `json:"notes"`
	Cost           float64 `json:"cost"`
}

// findRequest locates a request by id within a property's request list
func (h *MaintenanceHandler) findRequest(session *store.Session, propertyID string, id int64) (*domain.MaintenanceRequest, error) {
	requests, err := session.Maintenance.ListForProperty(propertyID)
	if err != nil {
		return nil, err
	}
	for _, m := range requests {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

// Update handles PUT /api/properties/{id}/maintenance/{requestId}
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	requestID, err := strconv.ParseInt(r.PathValue("requestId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	request, err := h.findRequest(session, propertyID, requestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load maintenance request")
		return
	}
	if request == nil {
		writeError(w, http.StatusNotFound, "maintenance request not found")
		return
	}

	if req.Status != "" {
		request.Status = req.Status
	}
	if req.ScheduledDate != "" {
		scheduled, err := parseBodyDate(req.ScheduledDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "scheduledDate must be yyyy-mm-dd")
			return
		}
		request.ScheduledDate = scheduled
	}
	if req.ContractorName != "" {
		request.ContractorName = req.ContractorName
	}
	if req.Notes != "" {
		request.Notes = req.Notes
	}
	if req.Cost != 0 {
		request.Cost = req.Cost
	}

	if err := session.Maintenance.Save(request); err != nil {
		h.logger.Error("failed to update maintenance request",
			slog.Int64("request_id", requestID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to update maintenance request")
		return
	}

	writeJSON(w, http.StatusOK, maintenancePayload(request, time.Now()))
}

// CompleteRequest closes a request with its final cost
type CompleteRequest struct {
	Cost float64 `json:"cost"`
}

// Complete handles POST /api/properties/{id}/maintenance/{requestId}/complete
func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	requestID, err := strconv.ParseInt(r.PathValue("requestId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	request, err := h.findRequest(session, propertyID, requestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load maintenance request")
		return
	}
	if request == nil {
		writeError(w, http.StatusNotFound, "maintenance request not found")
		return
	}

	request.Complete(req.Cost, time.Now())
	if err := session.Maintenance.Save(request); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to complete maintenance request")
		return
	}

	writeJSON(w, http.StatusOK, maintenancePayload(request, time.Now()))
}

// CancelRequest closes a request with a reason
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /api/properties/{id}/maintenance/{requestId}/cancel
func (h *MaintenanceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	requestID, err := strconv.ParseInt(r.PathValue("requestId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	request, err := h.findRequest(session, propertyID, requestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load maintenance request")
		return
	}
	if request == nil {
		writeError(w, http.StatusNotFound, "maintenance request not found")
		return
	}

	request.Cancel(req.Reason)
	if err := session.Maintenance.Save(request); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to cancel maintenance request")
		return
	}

	writeJSON(w, http.StatusOK, maintenancePayload(request, time.Now()))
}

// List handles GET /api/properties/{id}/maintenance. With ?overdue=true only
// requests past their priority threshold are returned.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	requests, err := session.Maintenance.ListForProperty(propertyID)
	if err != nil {
		h.logger.Error("failed to list maintenance requests",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list maintenance requests")
		return
	}

	now := time.Now()
	overdueOnly := r.URL.Query().Get("overdue") == "true"

	payload := make([]MaintenancePayload, 0, len(requests))
	for _, m := range requests {
		if overdueOnly && !m.IsOverdue(now) {
			continue
		}
		payload = append(payload, maintenancePayload(m, now))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": payload})
}

// Delete handles DELETE /api/maintenance/{id}
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := session.Maintenance.Delete(id); err != nil {
		h.logger.Error("failed to delete maintenance request",
			slog.Int64("request_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete maintenance request")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
