package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/yourorg/rentledger/internal/observability/metrics"
)

// SessionManager hands out at most one open Session per username. Sessions
// are opened lazily on first use and stay open until Close or CloseAll.
type SessionManager struct {
	mu       sync.Mutex
	dataDir  string
	logger   *slog.Logger
	sessions map[string]*Session
}

// NewSessionManager creates a session manager rooted at dataDir
func NewSessionManager(dataDir string, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		dataDir:  dataDir,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Get returns the open session for username, opening it if needed
func (m *SessionManager) Get(ctx context.Context, username string) (*Session, error) {
	if username == "" {
		return nil, fmt.Errorf("username required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[username]; ok {
		return s, nil
	}

	s, err := OpenSession(ctx, username, UserDBPath(m.dataDir, username), m.logger)
	if err != nil {
		return nil, err
	}

	m.logger.Info("session opened",
		slog.String("username", username),
		slog.String("path", s.Path()),
	)
	m.sessions[username] = s
	metrics.SetOpenSessions(len(m.sessions))
	return s, nil
}

// Provision creates the private database file and schema for a newly
// registered username. Safe to call for an existing file; schema creation is
// idempotent.
func (m *SessionManager) Provision(ctx context.Context, username string) error {
	db, err := Open(ctx, UserDBPath(m.dataDir, username), m.logger)
	if err != nil {
		return fmt.Errorf("failed to provision database for %s: %w", username, err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("failed to provision schema for %s: %w", username, err)
	}

	m.logger.Info("database provisioned", slog.String("username", username))
	return nil
}

// Deprovision removes a provisioned database file. Used to roll back a
// registration that failed after provisioning.
func (m *SessionManager) Deprovision(username string) error {
	m.mu.Lock()
	if s, ok := m.sessions[username]; ok {
		s.Close()
		delete(m.sessions, username)
		metrics.SetOpenSessions(len(m.sessions))
	}
	m.mu.Unlock()

	if err := os.Remove(UserDBPath(m.dataDir, username)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database for %s: %w", username, err)
	}
	return nil
}

// Close shuts the session for one username, if open
func (m *SessionManager) Close(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[username]
	if !ok {
		return nil
	}
	delete(m.sessions, username)
	metrics.SetOpenSessions(len(m.sessions))
	return s.Close()
}

// CloseAll shuts every open session; called on server shutdown
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for username, s := range m.sessions {
		if err := s.Close(); err != nil {
			m.logger.Error("failed to close session",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
		delete(m.sessions, username)
	}
	metrics.SetOpenSessions(0)
}
