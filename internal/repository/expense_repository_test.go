package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalForProperty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteExpenseRepository(db, nil)

	mock.ExpectQuery(`SELECT SUM\(amount\) FROM property_expenses`).
		WithArgs("P001").
		WillReturnRows(sqlmock.NewRows([]string{"SUM(amount)"}).AddRow(345.50))

	total, err := repo.TotalForProperty("P001")
	require.NoError(t, err)
	assert.Equal(t, 345.50, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A property with no expense rows totals zero, not an error.
func TestTotalForProperty_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteExpenseRepository(db, nil)

	mock.ExpectQuery(`SELECT SUM\(amount\) FROM property_expenses`).
		WithArgs("P001").
		WillReturnRows(sqlmock.NewRows([]string{"SUM(amount)"}).AddRow(nil))

	total, err := repo.TotalForProperty("P001")
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
