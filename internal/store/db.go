package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if absent) the SQLite database file at path and
// verifies the connection. SQLite allows a single writer per file, so the
// pool is pinned to one connection.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Foreign keys are declared in the schema but deliberately left
	// unenforced: property deletion renumbers survivors and orphans
	// dependent rows, which enforcement would reject.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	ctxTest, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctxTest); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug("database opened", slog.String("path", path))
	return db, nil
}

// CredentialsDBPath returns the location of the shared credentials database
// inside the data directory.
func CredentialsDBPath(dataDir string) string {
	return filepath.Join(dataDir, "users.db")
}

// UserDBPath deterministically derives the private database file for a
// username inside the data directory.
func UserDBPath(dataDir, username string) string {
	return filepath.Join(dataDir, fmt.Sprintf("property_management_%s.db", username))
}
