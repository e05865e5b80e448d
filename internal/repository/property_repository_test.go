package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/rentledger/internal/domain"
)

func testProperty(id string) *domain.Property {
	return &domain.Property{
		ID:              id,
		OwnerName:       "Jane Owner",
		Address:         "12 High Street",
		MonthlyRent:     950,
		MonthlyMortgage: 600,
		Status:          "Rented",
		Bedrooms:        3,
		LivingRooms:     1,
		Kitchens:        1,
		HouseType:       "Terraced",
		Bathrooms:       1,
	}
}

func setupPropertyRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *SqlitePropertyRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSqlitePropertyRepository(db, nil)
	return db, mock, repo
}

func propertyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"property_id", "owner_name", "address", "monthly_rent", "monthly_mortgage", "status",
		"bedrooms", "living_rooms", "kitchens", "house_type", "bathrooms", "description",
	})
}

func TestPropertySave(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	mock.ExpectExec(`INSERT OR REPLACE INTO properties`).
		WithArgs("P001", "Jane Owner", "12 High Street", 950.0, 600.0, "Rented",
			3, 1, 1, "Terraced", 1, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(testProperty("P001"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertySave_EmptyIDSkipped(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	// no expectations: a property without an id must not touch the database
	err := repo.Save(testProperty(""))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyGet_NotFound(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM properties WHERE property_id`).
		WithArgs("P999").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get("P999")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyList(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	rows := propertyRows().
		AddRow("P001", "Jane Owner", "12 High Street", 950.0, 600.0, "Rented", 3, 1, 1, "Terraced", 1, "").
		AddRow("P002", "Jane Owner", "7 Mill Lane", 700.0, 450.0, "Vacant", 2, 1, 1, "Apartment", 1, "")

	mock.ExpectQuery(`SELECT .+ FROM properties ORDER BY property_id`).
		WillReturnRows(rows)

	properties, err := repo.List()
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "P001", properties[0].ID)
	assert.Equal(t, "P002", properties[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Deleting P002 of three properties must leave the survivors renumbered
// P001, P002 in their previous order.
func TestPropertyDelete_Renumbers(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM properties WHERE property_id`).
		WithArgs("P002").
		WillReturnResult(sqlmock.NewResult(0, 1))

	survivors := propertyRows().
		AddRow("P001", "Jane Owner", "12 High Street", 950.0, 600.0, "Rented", 3, 1, 1, "Terraced", 1, "").
		AddRow("P003", "Jane Owner", "3 River Road", 1200.0, 800.0, "Rented", 4, 2, 1, "Detached", 2, "")
	mock.ExpectQuery(`SELECT .+ FROM properties ORDER BY property_id`).
		WillReturnRows(survivors)

	mock.ExpectExec(`DELETE FROM properties`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// P001 keeps its slot; the old P003 becomes P002
	mock.ExpectExec(`INSERT OR REPLACE INTO properties`).
		WithArgs("P001", "Jane Owner", "12 High Street", 950.0, 600.0, "Rented", 3, 1, 1, "Terraced", 1, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT OR REPLACE INTO properties`).
		WithArgs("P002", "Jane Owner", "3 River Road", 1200.0, 800.0, "Rented", 4, 2, 1, "Detached", 2, "").
		WillReturnResult(sqlmock.NewResult(2, 1))

	err := repo.Delete("P002")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPhotos(t *testing.T) {
	db, mock, repo := setupPropertyRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "property_id", "photo_path", "description", "upload_date"}).
		AddRow(2, "P001", "/photos/front.jpg", "front", "2026-08-20").
		AddRow(1, "P001", "/photos/kitchen.jpg", "kitchen", "2026-08-01")

	mock.ExpectQuery(`SELECT id, property_id, photo_path, description, upload_date`).
		WithArgs("P001").
		WillReturnRows(rows)

	photos, err := repo.ListPhotos("P001")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "/photos/front.jpg", photos[0].Path)
	assert.NoError(t, mock.ExpectationsWereMet())
}
