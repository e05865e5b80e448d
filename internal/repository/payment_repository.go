package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/rentledger/internal/domain"
)

// SqlitePaymentRepository implements domain.PaymentRepository over a user's
// portfolio database. It covers both the rent-payment ledger and the
// append-only payment-schedule log.
type SqlitePaymentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqlitePaymentRepository creates a new payment repository
func NewSqlitePaymentRepository(db *sql.DB, logger *slog.Logger) *SqlitePaymentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqlitePaymentRepository{db: db, logger: logger}
}

// Save inserts or replaces a rent payment
func (r *SqlitePaymentRepository) Save(p *domain.RentPayment) error {
	query := `
		INSERT OR REPLACE INTO rent_payments
		(id, tenant_id, amount, payment_date, payment_method, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var id interface{}
	if p.ID != 0 {
		id = p.ID
	}

	res, err := r.db.Exec(query,
		id,
		p.TenantID,
		p.Amount,
		formatDate(p.PaymentDate),
		p.PaymentMethod,
		p.Notes,
	)
	if err != nil {
		r.logger.Error("failed to save rent payment",
			slog.Int64("tenant_id", p.TenantID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save rent payment: %w", err)
	}

	if p.ID == 0 {
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new rent payment id: %w", err)
		}
		p.ID = newID
	}
	return nil
}

// ListForTenant returns a tenant's rent payments, newest first
func (r *SqlitePaymentRepository) ListForTenant(tenantID int64) ([]*domain.RentPayment, error) {
	query := `
		SELECT id, tenant_id, amount, payment_date, payment_method, notes
		FROM rent_payments
		WHERE tenant_id = ?
		ORDER BY payment_date DESC
	`

	rows, err := r.db.Query(query, tenantID)
	if err != nil {
		r.logger.Error("failed to list rent payments",
			slog.Int64("tenant_id", tenantID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list rent payments: %w", err)
	}
	defer rows.Close()

	var out []*domain.RentPayment
	for rows.Next() {
		p := &domain.RentPayment{}
		var date string
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Amount, &date, &p.PaymentMethod, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan rent payment: %w", err)
		}
		p.PaymentDate = parseDate(date)
		out = append(out, p)
	}
	return out, rows.Err()
}

// LogPaymentDate appends a schedule entry for a property. Entries are never
// updated or deleted.
func (r *SqlitePaymentRepository) LogPaymentDate(propertyID string, date time.Time, amount float64, status string) error {
	query := `
		INSERT INTO rent_payment_dates (property_id, payment_date, amount, status)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, propertyID, formatDate(date), amount, status)
	if err != nil {
		return fmt.Errorf("failed to log payment date: %w", err)
	}
	return nil
}

// PaymentDates returns a property's schedule log, newest first
func (r *SqlitePaymentRepository) PaymentDates(propertyID string) ([]*domain.RentPaymentDate, error) {
	query := `
		SELECT id, property_id, payment_date, amount, status
		FROM rent_payment_dates
		WHERE property_id = ?
		ORDER BY payment_date DESC
	`

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment dates: %w", err)
	}
	defer rows.Close()

	var out []*domain.RentPaymentDate
	for rows.Next() {
		d := &domain.RentPaymentDate{}
		var date string
		if err := rows.Scan(&d.ID, &d.PropertyID, &date, &d.Amount, &d.Status); err != nil {
			return nil, fmt.Errorf("failed to scan payment date: %w", err)
		}
		d.PaymentDate = parseDate(date)
		out = append(out, d)
	}
	return out, rows.Err()
}
