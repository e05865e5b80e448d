package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentledger/internal/domain"
)

// ErrUserNotFound is returned when no account matches a lookup
var ErrUserNotFound = errors.New("user not found")

// SqliteUserRepository implements domain.UserRepository against the shared
// credentials database
type SqliteUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSqliteUserRepository creates a new user repository
func NewSqliteUserRepository(db *sql.DB, logger *slog.Logger) *SqliteUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SqliteUserRepository{db: db, logger: logger}
}

// Create inserts a new account row. The username column's UNIQUE constraint
// rejects duplicates.
func (r *SqliteUserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (username, password, email, role)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.db.Exec(query, user.Username, user.PasswordHash, user.Email, user.Role)
	if err != nil {
		r.logger.Error("failed to create user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new user id: %w", err)
	}
	user.ID = id
	return nil
}

// GetByUsername retrieves an account by username
func (r *SqliteUserRepository) GetByUsername(username string) (*domain.User, error) {
	user := &domain.User{}

	query := `
		SELECT id, username, password, email, role
		FROM users
		WHERE username = ?
	`

	err := r.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("failed to get user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the stored password hash for a username
func (r *SqliteUserRepository) UpdatePassword(username, passwordHash string) error {
	res, err := r.db.Exec(`UPDATE users SET password = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateEmail replaces the stored contact email for a username
func (r *SqliteUserRepository) UpdateEmail(username, email string) error {
	res, err := r.db.Exec(`UPDATE users SET email = ? WHERE username = ?`, email, username)
	if err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UsernameExists reports whether an account row exists for username
func (r *SqliteUserRepository) UsernameExists(username string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}
