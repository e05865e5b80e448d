package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentledger/internal/domain"
)

// SqliteTenantRepository implements domain.TenantRepository over a user's
// portfolio database
type SqliteTenantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqliteTenantRepository creates a new tenant repository
func NewSqliteTenantRepository(db *sql.DB, logger *slog.Logger) *SqliteTenantRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqliteTenantRepository{db: db, logger: logger}
}

// Save inserts or replaces a tenant. A zero ID lets the autoincrement column
// assign one; the new ID is written back to the entity.
func (r *SqliteTenantRepository) Save(t *domain.Tenant) error {
	query := `
		INSERT OR REPLACE INTO tenants
		(id, name, email, phone, property_id, lease_start_date, lease_end_date,
		 deposit_amount, documents, payment_history, comm_preferences,
		 last_contact_date, last_contact_type, email_notifications, sms_notifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var id interface{}
	if t.ID != 0 {
		id = t.ID
	}

	res, err := r.db.Exec(query,
		id,
		t.Name,
		t.Email,
		t.Phone,
		t.PropertyID,
		formatDate(t.LeaseStartDate),
		formatDate(t.LeaseEndDate),
		t.DepositAmount,
		t.Documents,
		t.PaymentHistory,
		t.CommPreferences,
		nullDate(t.LastContactDate),
		t.LastContactType,
		t.EmailNotify,
		t.SMSNotify,
	)
	if err != nil {
		r.logger.Error("failed to save tenant",
			slog.String("name", t.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save tenant: %w", err)
	}

	if t.ID == 0 {
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new tenant id: %w", err)
		}
		t.ID = newID
	}
	return nil
}

const tenantColumns = `id, name, email, phone, property_id, lease_start_date, lease_end_date,
		deposit_amount, documents, payment_history, comm_preferences,
		last_contact_date, last_contact_type, email_notifications, sms_notifications`

// ListForProperty returns the tenants linked to a property
func (r *SqliteTenantRepository) ListForProperty(propertyID string) ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE property_id = ?`
	return r.queryTenants(query, propertyID)
}

// ListAll returns every tenant in the database
func (r *SqliteTenantRepository) ListAll() ([]*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	return r.queryTenants(query)
}

func (r *SqliteTenantRepository) queryTenants(query string, args ...interface{}) ([]*domain.Tenant, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list tenants", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var out []*domain.Tenant
	for rows.Next() {
		t := &domain.Tenant{}
		var leaseStart, leaseEnd string
		var lastContact sql.NullString
		var lastContactType sql.NullString
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Email,
			&t.Phone,
			&t.PropertyID,
			&leaseStart,
			&leaseEnd,
			&t.DepositAmount,
			&t.Documents,
			&t.PaymentHistory,
			&t.CommPreferences,
			&lastContact,
			&lastContactType,
			&t.EmailNotify,
			&t.SMSNotify,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		t.LeaseStartDate = parseDate(leaseStart)
		t.LeaseEndDate = parseDate(leaseEnd)
		t.LastContactDate = parseNullDate(lastContact)
		if lastContactType.Valid {
			t.LastContactType = lastContactType.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a tenant row
func (r *SqliteTenantRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM tenants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}
