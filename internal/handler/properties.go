package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/observability/metrics"
	"github.com/yourorg/rentledger/internal/repository"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/store"
)

// PropertiesHandler handles portfolio property endpoints
type PropertiesHandler struct {
	sessions *store.SessionManager
	audit    *audit.Logger
	logger   *slog.Logger
}

// NewPropertiesHandler creates a new properties handler
func NewPropertiesHandler(sessions *store.SessionManager, auditLog *audit.Logger, logger *slog.Logger) *PropertiesHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PropertiesHandler{
		sessions: sessions,
		audit:    auditLog,
		logger:   logger,
	}
}

// PropertyPayload is the wire form of a property
type PropertyPayload struct {
	ID              string  `json:"id"`
	OwnerName       string  `json:"ownerName"`
	Address         string  `json:"address"`
	MonthlyRent     float64 `json:"monthlyRent"`
	MonthlyMortgage float64 `json:"monthlyMortgage"`
	Status          string  `json:"status"`
	Bedrooms        int     `json:"bedrooms"`
	LivingRooms     int     `json:"livingRooms"`
	Kitchens        int     `json:"kitchens"`
	HouseType       string  `json:"houseType"`
	Bathrooms       int     `json:"bathrooms"`
	Description     string  `json:"description"`
	MonthlyProfit   float64 `json:"monthlyProfit"`
}

func propertyPayload(p *domain.Property) PropertyPayload {
	return PropertyPayload{
		ID:              p.ID,
		OwnerName:       p.OwnerName,
		Address:         p.Address,
		MonthlyRent:     p.MonthlyRent,
		MonthlyMortgage: p.MonthlyMortgage,
		Status:          p.Status,
		Bedrooms:        p.Bedrooms,
		LivingRooms:     p.LivingRooms,
		Kitchens:        p.Kitchens,
		HouseType:       p.HouseType,
		Bathrooms:       p.Bathrooms,
		Description:     p.Description,
		MonthlyProfit:   p.MonthlyProfit(),
	}
}

func (pl *PropertyPayload) toDomain() *domain.Property {
	return &domain.Property{
		ID:              pl.ID,
		OwnerName:       pl.OwnerName,
		Address:         pl.Address,
		MonthlyRent:     pl.MonthlyRent,
		MonthlyMortgage: pl.MonthlyMortgage,
		Status:          pl.Status,
		Bedrooms:        pl.Bedrooms,
		LivingRooms:     pl.LivingRooms,
		Kitchens:        pl.Kitchens,
		HouseType:       pl.HouseType,
		Bathrooms:       pl.Bathrooms,
		Description:     pl.Description,
	}
}

// List handles GET /api/properties
func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	properties, err := session.Properties.List()
	if err != nil {
		h.logger.Error("failed to list properties",
			slog.String("username", session.Username),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}

	payload := make([]PropertyPayload, 0, len(properties))
	for _, p := range properties {
		payload = append(payload, propertyPayload(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"properties": payload})
}

// Get handles GET /api/properties/{id}
func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id := r.PathValue("id")
	property, err := session.Properties.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Error("failed to get property",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get property")
		return
	}

	writeJSON(w, http.StatusOK, propertyPayload(property))
}

// Save handles POST /api/properties. Creates or overwrites the property with
// the given id. A property with an empty id is accepted and silently dropped,
// matching the persistence contract.
func (h *PropertiesHandler) Save(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	property := req.toDomain()
	if err := session.Properties.Save(property); err != nil {
		h.logger.Error("failed to save property",
			slog.String("property_id", property.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to save property")
		return
	}

	metrics.ObservePropertySaved()
	writeJSON(w, http.StatusOK, propertyPayload(property))
}

// Delete handles DELETE /api/properties/{id}. Remaining properties are
// renumbered sequentially afterwards.
func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, claims, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id := r.PathValue("id")
	if err := session.Properties.Delete(id); err != nil {
		h.audit.LogPropertyDelete(r.Context(), claims.Username, id, "failure", err.Error())
		h.logger.Error("failed to delete property",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete property")
		return
	}

	metrics.ObservePropertyDeleted()
	h.audit.LogPropertyDelete(r.Context(), claims.Username, id, "success", "remaining properties renumbered")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PhotoPayload is the wire form of a stored property photo
type PhotoPayload struct {
	ID          int64  `json:"id"`
	PropertyID  string `json:"propertyId"`
	Path        string `json:"path"`
	Description string `json:"description"`
	UploadDate  string `json:"uploadDate"`
}

// AddPhotoRequest registers a photo path against a property
type AddPhotoRequest struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// AddPhoto handles POST /api/properties/{id}/photos
func (h *PropertiesHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id := r.PathValue("id")
	var req AddPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := session.Properties.AddPhoto(id, req.Path, req.Description); err != nil {
		h.logger.Error("failed to add photo",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to add photo")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "photo added"})
}

// ListPhotos handles GET /api/properties/{id}/photos
func (h *PropertiesHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	session, _, err := requestSession(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	id := r.PathValue("id")
	photos, err := session.Properties.ListPhotos(id)
	if err != nil {
		h.logger.Error("failed to list photos",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}

	payload := make([]PhotoPayload, 0, len(photos))
	for _, p := range photos {
		payload = append(payload, PhotoPayload{
			ID:          p.ID,
			PropertyID:  p.PropertyID,
			Path:        p.Path,
			Description: p.Description,
			UploadDate:  p.UploadDate,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"photos": payload})
}
