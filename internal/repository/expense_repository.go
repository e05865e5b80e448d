package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentledger/internal/domain"
)

// SqliteExpenseRepository implements domain.ExpenseRepository over a user's
// portfolio database
type SqliteExpenseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqliteExpenseRepository creates a new expense repository
func NewSqliteExpenseRepository(db *sql.DB, logger *slog.Logger) *SqliteExpenseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqliteExpenseRepository{db: db, logger: logger}
}

// Save inserts or replaces an expense
func (r *SqliteExpenseRepository) Save(e *domain.PropertyExpense) error {
	query := `
		INSERT OR REPLACE INTO property_expenses
		(id, property_id, description, amount, expense_date, category, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var id interface{}
	if e.ID != 0 {
		id = e.ID
	}

	res, err := r.db.Exec(query,
		id,
		e.PropertyID,
		e.Description,
		e.Amount,
		formatDate(e.Date),
		e.Category,
		e.Notes,
	)
	if err != nil {
		r.logger.Error("failed to save expense",
			slog.String("property_id", e.PropertyID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to save expense: %w", err)
	}

	if e.ID == 0 {
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read new expense id: %w", err)
		}
		e.ID = newID
	}
	return nil
}

// ListForProperty returns a property's expenses, newest first
func (r *SqliteExpenseRepository) ListForProperty(propertyID string) ([]*domain.PropertyExpense, error) {
	query := `
		SELECT id, property_id, description, amount, expense_date, category, notes
		FROM property_expenses
		WHERE property_id = ?
		ORDER BY expense_date DESC
	`

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		r.logger.Error("failed to list expenses",
			slog.String("property_id", propertyID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var out []*domain.PropertyExpense
	for rows.Next() {
		e := &domain.PropertyExpense{}
		var date string
		if err := rows.Scan(&e.ID, &e.PropertyID, &e.Description, &e.Amount, &date, &e.Category, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = parseDate(date)
		out = append(out, e)
	}
	return out, rows.Err()
}

// TotalForProperty sums a property's expenses. Properties with no recorded
// expenses total zero rather than erroring.
func (r *SqliteExpenseRepository) TotalForProperty(propertyID string) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRow(
		`SELECT SUM(amount) FROM property_expenses WHERE property_id = ?`,
		propertyID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total expenses: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}
