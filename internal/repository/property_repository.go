package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
)

// ErrPropertyNotFound is returned when no property matches a lookup
var ErrPropertyNotFound = errors.New("property not found")

// SqlitePropertyRepository implements domain.PropertyRepository over a
// user's portfolio database
type SqlitePropertyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqlitePropertyRepository creates a new property repository
func NewSqlitePropertyRepository(db *sql.DB, logger *slog.Logger) *SqlitePropertyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqlitePropertyRepository{db: db, logger: logger}
}

const propertyColumns = `property_id, owner_name, address, monthly_rent, monthly_mortgage, status,
		bedrooms, living_rooms, kitchens, house_type, bathrooms, description`

// Save inserts or replaces a property by its ID. Properties with an empty ID
// are skipped silently; rows without an assigned identifier are never
// persisted.
func (r *SqlitePropertyRepository) Save(p *domain.Property) error {
	if p.ID == "" {
		return nil
	}

	query := `
		INSERT OR REPLACE INTO properties
		(` + propertyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		p.ID,
		p.OwnerName,
		p.Address,
		p.MonthlyRent,
		p.MonthlyMortgage,
		p.Status,
		p.Bedrooms,
		p.LivingRooms,
		p.Kitchens,
		p.HouseType,
		p.Bathrooms,
		p.Description,
	)
	if err != nil {
		r.logger.Error("failed to save property",
			slog.String("property_id", p.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// Get retrieves a single property by ID
func (r *SqlitePropertyRepository) Get(id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE property_id = ?`

	p := &domain.Property{}
	err := r.db.QueryRow(query, id).Scan(
		&p.ID,
		&p.OwnerName,
		&p.Address,
		&p.MonthlyRent,
		&p.MonthlyMortgage,
		&p.Status,
		&p.Bedrooms,
		&p.LivingRooms,
		&p.Kitchens,
		&p.HouseType,
		&p.Bathrooms,
		&p.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

// List returns every property ordered by ascending identifier
func (r *SqlitePropertyRepository) List() ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY property_id`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("failed to list properties", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var out []*domain.Property
	for rows.Next() {
		p := &domain.Property{}
		err := rows.Scan(
			&p.ID,
			&p.OwnerName,
			&p.Address,
			&p.MonthlyRent,
			&p.MonthlyMortgage,
			&p.Status,
			&p.Bedrooms,
			&p.LivingRooms,
			&p.Kitchens,
			&p.HouseType,
			&p.Bathrooms,
			&p.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a property and then renumbers every surviving property to
// the sequential P001, P002, ... form, preserving the pre-deletion ascending
// order. The reassignment is destructive: identifiers held by dependent
// tenant and maintenance rows are NOT rewritten, so those rows can end up
// orphaned. That matches the historical file format this store replaces.
func (r *SqlitePropertyRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM properties WHERE property_id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete property",
			slog.String("property_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return r.renumber()
}

func (r *SqlitePropertyRepository) renumber() error {
	properties, err := r.List()
	if err != nil {
		return fmt.Errorf("failed to load properties for renumbering: %w", err)
	}

	if _, err := r.db.Exec(`DELETE FROM properties`); err != nil {
		return fmt.Errorf("failed to clear properties for renumbering: %w", err)
	}

	for i, p := range properties {
		p.ID = fmt.Sprintf("P%03d", i+1)
		if err := r.Save(p); err != nil {
			return fmt.Errorf("failed to reinsert property %s: %w", p.ID, err)
		}
	}
	return nil
}

// AddPhoto records a photo path against a property, stamped with today's date
func (r *SqlitePropertyRepository) AddPhoto(propertyID, path, description string) error {
	query := `
		INSERT INTO property_photos (property_id, photo_path, description, upload_date)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, propertyID, path, description, time.Now().Format(DateLayout))
	if err != nil {
		return fmt.Errorf("failed to save property photo: %w", err)
	}
	return nil
}

// ListPhotos returns a property's photos, newest upload first
func (r *SqlitePropertyRepository) ListPhotos(propertyID string) ([]*domain.PropertyPhoto, error) {
	query := `
		SELECT id, property_id, photo_path, description, upload_date
		FROM property_photos
		WHERE property_id = ?
		ORDER BY upload_date DESC
	`

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property photos: %w", err)
	}
	defer rows.Close()

	var out []*domain.PropertyPhoto
	for rows.Next() {
		ph := &domain.PropertyPhoto{}
		if err := rows.Scan(&ph.ID, &ph.PropertyID, &ph.Path, &ph.Description, &ph.UploadDate); err != nil {
			return nil, fmt.Errorf("failed to scan property photo: %w", err)
		}
		out = append(out, ph)
	}
	return out, rows.Err()
}
