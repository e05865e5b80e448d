package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/observability/metrics"
	"github.com/yourorg/rentledger/internal/report"
	"github.com/yourorg/rentledger/internal/security"
	"github.com/yourorg/rentledger/internal/store"
)

// ReportsHandler handles portfolio report exports
type ReportsHandler struct {
	sessions *store.SessionManager
	authz    *security.AuthorizationService
	logger   *slog.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(sessions *store.SessionManager, authz *security.AuthorizationService, logger *slog.Logger) *ReportsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReportsHandler{
		sessions: sessions,
		authz:    authz,
		logger:   logger,
	}
}

// ExportPDF handles GET /api/reports/pdf
func (h *ReportsHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", "application/pdf", report.WritePDF)
}

// ExportExcel handles GET /api/reports/excel
func (h *ReportsHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report.WriteExcel)
}

func (h *ReportsHandler) export(w http.ResponseWriter, r *http.Request, format, contentType string, write func([]*domain.Property, string) error) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.authz.ValidatePermission(security.Role(claims.Role), security.PermExportReports); err != nil {
		writeError(w, http.StatusForbidden, "not permitted")
		return
	}

	properties, err := session.Properties.List()
	if err != nil {
		h.logger.Error("failed to list properties for report",
			slog.String("username", session.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	tmpDir, err := os.MkdirTemp("", "rentledger-report-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}
	defer os.RemoveAll(tmpDir)

	filename := "portfolio-" + time.Now().Format("2006-01-02") + "." + format
	path := filepath.Join(tmpDir, filename)
	if err := write(properties, path); err != nil {
		h.logger.Error("failed to write report",
			slog.String("format", format),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	metrics.ObserveReport(format)
	h.logger.Info("report generated",
		slog.String("username", session.Username),
		slog.String("format", format),
		slog.Int("properties", len(properties)),
	)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
