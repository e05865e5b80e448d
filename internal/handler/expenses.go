package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/store"
)

// ExpensesHandler handles property expense endpoints
type ExpensesHandler struct {
	sessions *store.SessionManager
	logger   *slog.Logger
}

// NewExpensesHandler creates a new expenses handler
func NewExpensesHandler(sessions *store.SessionManager, logger *slog.Logger) *ExpensesHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ExpensesHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// ExpensePayload is the wire form of a property expense
type ExpensePayload struct {
	ID          int64   `json:"id"`
	PropertyID  string  `json:"propertyId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes"`
}

// RecordExpenseRequest records a cost against a property
type RecordExpenseRequest struct {
	PropertyID  string  `json:"propertyId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes"`
}

// Record handles POST /api/expenses
func (h *ExpensesHandler) Record(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.PropertyID == "" || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "propertyId and a positive amount are required")
		return
	}

	date, err := parseBodyDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be yyyy-mm-dd")
		return
	}
	if date.IsZero() {
		date = time.Now()
	}
	if req.Category == "" {
		req.Category = domain.ExpenseOther
	}

	expense := &domain.PropertyExpense{
		PropertyID:  req.PropertyID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
		Notes:       req.Notes,
	}

	if err := session.Expenses.Save(expense); err != nil {
		h.logger.Error("failed to record expense",
			slog.String("property_id", req.PropertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}

	writeJSON(w, http.StatusCreated, ExpensePayload{
		ID:          expense.ID,
		PropertyID:  expense.PropertyID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Date:        formatBodyDate(expense.Date),
		Category:    expense.Category,
		Notes:       expense.Notes,
	})
}

// List handles GET /api/properties/{id}/expenses. The response includes the
// running total for the property.
func (h *ExpensesHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	propertyID := r.PathValue("id")
	expenses, err := session.Expenses.ListForProperty(propertyID)
	if err != nil {
		h.logger.Error("failed to list expenses",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	total, err := session.Expenses.TotalForProperty(propertyID)
	if err != nil {
		h.logger.Error("failed to total expenses",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to total expenses")
		return
	}

	payload := make([]ExpensePayload, 0, len(expenses))
	for _, e := range expenses {
		payload = append(payload, ExpensePayload{
			ID:          e.ID,
			PropertyID:  e.PropertyID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        formatBodyDate(e.Date),
			Category:    e.Category,
			Notes:       e.Notes,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": payload,
		"total":    total,
	})
}
