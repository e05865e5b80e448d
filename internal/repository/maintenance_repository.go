package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentledger/internal/domain"
)

// SqliteMaintenanceRepository implements domain.MaintenanceRepository over a
// user's portfolio database
type SqliteMaintenanceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqliteMaintenanceRepository creates a new maintenance repository
func NewSqliteMaintenanceRepository(db *sql.DB, logger *slog.Logger) *SqliteMaintenanceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqliteMaintenanceRepository{db: db, logger: logger}
}

// Save inserts or replaces a maintenance request
func (r *SqliteMaintenanceRepository) Save(m *domain.MaintenanceRequest) error {
	query := `
		INSERT OR REPLACE INTO maintenance_requests
		(id, property_id, description, status, priority, reported_date,
		 completed_date, cost, notes, scheduled_date, contractor_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var id interface{}
	if m.ID != 0 {
		id = m.ID
	}

	res, err := r.db.Exec(query,
		id,
		m.PropertyID,
		m.Description,
		m.Status,
		m.Priority,
		formatDate(m.ReportedDate),
		nullDate(m.CompletedDate),
		m.Cost,
		m.Notes,
		nullDate(m.ScheduledDate),
		m.ContractorName,
	)
	if err != nil {
		r.logger.Error("failed to save maintenance request",
			slog.String("property_id", m.PropertyID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save maintenance request: %w", err)
	}

	if m.ID == 0 {
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new maintenance request id: %w", err)
		}
		m.ID = newID
	}
	return nil
}

// ListForProperty returns a property's maintenance requests, newest first
func (r *SqliteMaintenanceRepository) ListForProperty(propertyID string) ([]*domain.MaintenanceRequest, error) {
	query := `
		SELECT id, property_id, description, status, priority, reported_date,
		       completed_date, cost, notes, scheduled_date, contractor_name
		FROM maintenance_requests
		WHERE property_id = ?
		ORDER BY reported_date DESC
	`

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		r.logger.Error("failed to list maintenance requests",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.MaintenanceRequest
	for rows.Next() {
		m := &domain.MaintenanceRequest{}
		var reported string
		var completed, scheduled sql.NullString
		var contractor sql.NullString
		err := rows.Scan(
			&m.ID,
			&m.PropertyID,
			&m.Description,
			&m.Status,
			&m.Priority,
			&reported,
			&completed,
			&m.Cost,
			&m.Notes,
			&scheduled,
			&contractor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		m.ReportedDate = parseDate(reported)
		m.CompletedDate = parseNullDate(completed)
		m.ScheduledDate = parseNullDate(scheduled)
		if contractor.Valid {
			m.ContractorName = contractor.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a maintenance request row
func (r *SqliteMaintenanceRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM maintenance_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance request: %w", err)
	}
	return nil
}
