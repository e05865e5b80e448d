package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/rentledger/internal/domain"
)

func TestUserCreate_AssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteUserRepository(db, nil)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("landlord", "hashed", "landlord@example.com", "user").
		WillReturnResult(sqlmock.NewResult(7, 1))

	user := &domain.User{Username: "landlord", PasswordHash: "hashed", Email: "landlord@example.com", Role: "user"}
	require.NoError(t, repo.Create(user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteUserRepository(db, nil)

	mock.ExpectQuery(`SELECT id, username, password, email, role`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword_MissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteUserRepository(db, nil)

	mock.ExpectExec(`UPDATE users SET password`).
		WithArgs("newhash", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdatePassword("ghost", "newhash")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsernameExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteUserRepository(db, nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("landlord").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.UsernameExists("landlord")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
