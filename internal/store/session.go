package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/repository"
)

// Session is one user's open portfolio database together with the
// repositories bound to it. Callers hold an explicit session rather than a
// process-wide active database, so concurrent users stay isolated.
type Session struct {
	Username string

	db     *sql.DB
	path   string
	logger *slog.Logger

	Properties  domain.PropertyRepository
	Tenants     domain.TenantRepository
	Maintenance domain.MaintenanceRepository
	Payments    domain.PaymentRepository
	Expenses    domain.ExpenseRepository
}

// OpenSession opens the database file at path, ensures the schema exists and
// binds the entity repositories.
func OpenSession(ctx context.Context, username, path string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := Open(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session for %s: %w", username, err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema for %s: %w", username, err)
	}

	s := &Session{
		Username: username,
		db:       db,
		path:     path,
		logger:   logger,
	}
	s.bindRepositories()
	return s, nil
}

func (s *Session) bindRepositories() {
	s.Properties = repository.NewSqlitePropertyRepository(s.db, s.logger)
	s.Tenants = repository.NewSqliteTenantRepository(s.db, s.logger)
	s.Maintenance = repository.NewSqliteMaintenanceRepository(s.db, s.logger)
	s.Payments = repository.NewSqlitePaymentRepository(s.db, s.logger)
	s.Expenses = repository.NewSqliteExpenseRepository(s.db, s.logger)
}

// Path returns the session's database file location
func (s *Session) Path() string {
	return s.path
}

// Close releases the underlying database handle
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Backup copies the session's database file to backupPath. The handle is
// closed around the copy so pending writes land in the file, then reopened.
func (s *Session) Backup(ctx context.Context, backupPath string) error {
	return s.copyAround(ctx, s.path, backupPath)
}

// Restore replaces the session's database file with the one at backupPath
func (s *Session) Restore(ctx context.Context, backupPath string) error {
	return s.copyAround(ctx, backupPath, s.path)
}

func (s *Session) copyAround(ctx context.Context, src, dst string) error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database before copy: %w", err)
	}

	if err := copyFile(src, dst); err != nil {
		// Reopen anyway so the session stays usable
		if db, openErr := Open(ctx, s.path, s.logger); openErr == nil {
			s.db = db
			s.bindRepositories()
		}
		return err
	}

	db, err := Open(ctx, s.path, s.logger)
	if err != nil {
		return fmt.Errorf("failed to reopen database after copy: %w", err)
	}
	s.db = db
	s.bindRepositories()
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy database file: %w", err)
	}
	return out.Sync()
}
