package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/store"
	"github.com/yourorg/rentledger/pkg/cache"
)

// DashboardSummary aggregates a user's portfolio at a glance
type DashboardSummary struct {
	Properties      int     `json:"properties"`
	Rented          int     `json:"rented"`
	Vacant          int     `json:"vacant"`
	Tenants         int     `json:"tenants"`
	MonthlyRent     float64 `json:"monthlyRent"`
	MonthlyMortgage float64 `json:"monthlyMortgage"`
	MonthlyProfit   float64 `json:"monthlyProfit"`
	OverdueRequests int     `json:"overdueRequests"`
	GeneratedAt     string  `json:"generatedAt"`
}

// DashboardHandler serves the cached portfolio summary
type DashboardHandler struct {
	sessions *store.SessionManager
	cache    *cache.Cache[DashboardSummary]
	ttl      time.Duration
	logger   *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(sessions *store.SessionManager, ttl time.Duration, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardHandler{
		sessions: sessions,
		cache:    cache.New[DashboardSummary](),
		ttl:      ttl,
		logger:   logger,
	}
}

// Summary handles GET /api/dashboard. Summaries are cached per user for a
// short TTL; entity reads elsewhere always hit the database.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if summary, ok := h.cache.Get(claims.Username); ok {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := h.buildSummary(session)
	if err != nil {
		h.logger.Error("failed to build dashboard summary",
			slog.String("username", session.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	h.cache.Set(claims.Username, summary, h.ttl)
	writeJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) buildSummary(session *store.Session) (DashboardSummary, error) {
	properties, err := session.Properties.List()
	if err != nil {
		return DashboardSummary{}, err
	}

	tenants, err := session.Tenants.ListAll()
	if err != nil {
		return DashboardSummary{}, err
	}

	now := time.Now()
	summary := DashboardSummary{
		Properties:  len(properties),
		Tenants:     len(tenants),
		GeneratedAt: now.Format(time.RFC3339),
	}

	for _, p := range properties {
		if p.Status == domain.StatusRented {
			summary.Rented++
		} else {
			summary.Vacant++
		}
		summary.MonthlyRent += p.MonthlyRent
		summary.MonthlyMortgage += p.MonthlyMortgage
		summary.MonthlyProfit += p.MonthlyProfit()

		requests, err := session.Maintenance.ListForProperty(p.ID)
		if err != nil {
			return DashboardSummary{}, err
		}
		for _, m := range requests {
			if m.IsOverdue(now) {
				summary.OverdueRequests++
			}
		}
	}

	return summary, nil
}
