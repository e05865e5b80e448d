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

// PaymentsHandler handles rent payment endpoints
type PaymentsHandler struct {
	sessions *store.SessionManager
	logger   *slog.Logger
}

// NewPaymentsHandler creates a new payments handler
func NewPaymentsHandler(sessions *store.SessionManager, logger *slog.Logger) *PaymentsHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PaymentsHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// PaymentPayload is the wire form of a rent payment
type PaymentPayload struct {
	ID            int64   `json:"id"`
	TenantID      int64   `json:"tenantId"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
	Late          bool    `json:"late"`
}

func paymentPayload(p *domain.RentPayment) PaymentPayload {
	return PaymentPayload{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Amount:        p.Amount,
		PaymentDate:   formatBodyDate(p.PaymentDate),
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		Late:          p.IsLate(),
	}
}

// RecordPaymentRequest records a received rent payment
type RecordPaymentRequest struct {
	TenantID      int64   `json:"tenantId"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

// Record handles POST /api/payments
func (h *PaymentsHandler) Record(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.TenantID == 0 || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "tenantId and a positive amount are required")
		return
	}

	paymentDate, err := parseBodyDate(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "paymentDate must be yyyy-mm-dd")
		return
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentBankTransfer
	}

	payment := &domain.RentPayment{
		TenantID:      req.TenantID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	if err := session.Payments.Save(payment); err != nil {
		h.logger.Error("failed to record payment",
			slog.Int64("tenant_id", req.TenantID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusCreated, paymentPayload(payment))
}

// ListForTenant handles GET /api/tenants/{id}/payments
func (h *PaymentsHandler) ListForTenant(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	tenantID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	payments, err := session.Payments.ListForTenant(tenantID)
	if err != nil {
		h.logger.Error("failed to list payments",
			slog.Int64("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	payload := make([]PaymentPayload, 0, len(payments))
	for _, p := range payments {
		payload = append(payload, paymentPayload(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payload})
}

// PaymentDatePayload is the wire form of a schedule log entry
type PaymentDatePayload struct {
	ID          int64   `json:"id"`
	PropertyID  string  `json:"propertyId"`
	PaymentDate string  `json:"paymentDate"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// LogPaymentDateRequest appends an entry to a property's schedule log
type LogPaymentDateRequest struct {
	PaymentDate string  `json:"paymentDate"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// LogPaymentDate handles POST /api/properties/{id}/payment-dates. The log is
// append-only and separate from the payment ledger.
func (h *PaymentsHandler) LogPaymentDate(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	var req LogPaymentDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	paymentDate, err := parseBodyDate(req.PaymentDate)
	if err != nil || paymentDate.IsZero() {
		writeError(w, http.StatusBadRequest, "paymentDate must be yyyy-mm-dd")
		return
	}

	if err := session.Payments.LogPaymentDate(propertyID, paymentDate, req.Amount, req.Status); err != nil {
		h.logger.Error("failed to log payment date",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to log payment date")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "logged"})
}

// PaymentDates handles GET /api/properties/{id}/payment-dates
func (h *PaymentsHandler) PaymentDates(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	dates, err := session.Payments.PaymentDates(propertyID)
	if err != nil {
		h.logger.Error("failed to list payment dates",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list payment dates")
		return
	}

	payload := make([]PaymentDatePayload, 0, len(dates))
	for _, d := range dates {
		payload = append(payload, PaymentDatePayload{
			ID:          d.ID,
			PropertyID:  d.PropertyID,
			PaymentDate: formatBodyDate(d.PaymentDate),
			Amount:      d.Amount,
			Status:      d.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"paymentDates": payload})
}
