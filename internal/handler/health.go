package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	credentialsDB *sql.DB
	logger        *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(credentialsDB *sql.DB, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{
		credentialsDB: credentialsDB,
		logger:        logger,
	}
}

// HealthResponse represents the health status response
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /healthz - simple liveness check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz - verifies the credentials database answers
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := http.StatusOK

	if err := h.credentialsDB.PingContext(ctx); err != nil {
		checks["credentials_db"] = "unreachable: " + err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["credentials_db"] = "ok"
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "not ready"
	}
	writeJSON(w, status, ReadinessResponse{Status: overall, Checks: checks})
}
