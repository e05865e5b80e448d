package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/repository"
)

type memUserRepo struct {
	byUsername map[string]*domain.User
	nextID     int64
	createErr  error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byUsername: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	u.ID = m.nextID
	m.byUsername[u.Username] = u
	return nil
}

func (m *memUserRepo) GetByUsername(username string) (*domain.User, error) {
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) UpdatePassword(username, passwordHash string) error {
	u, ok := m.byUsername[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memUserRepo) UpdateEmail(username, email string) error {
	u, ok := m.byUsername[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Email = email
	return nil
}

func (m *memUserRepo) UsernameExists(username string) (bool, error) {
	_, ok := m.byUsername[username]
	return ok, nil
}

type fakeProvisioner struct {
	provisioned   map[string]bool
	provisionErr  error
	deprovisioned []string
}

func newFakeProvisioner() *fakeProvisioner {
	return &fakeProvisioner{provisioned: map[string]bool{}}
}

func (f *fakeProvisioner) Provision(ctx context.Context, username string) error {
	if f.provisionErr != nil {
		return f.provisionErr
	}
	f.provisioned[username] = true
	return nil
}

func (f *fakeProvisioner) Deprovision(username string) error {
	delete(f.provisioned, username)
	f.deprovisioned = append(f.deprovisioned, username)
	return nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newMemUserRepo()
	prov := newFakeProvisioner()
	s := NewAuthService(repo, prov, nil)

	user, err := s.Register(context.Background(), "alice", "Password123", "alice@example.com", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned user id")
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.PasswordHash == "Password123" {
		t.Fatalf("password must be stored hashed")
	}
	if !prov.provisioned["alice"] {
		t.Fatalf("expected database provisioned for alice")
	}

	// Duplicate username
	if _, err := s.Register(context.Background(), "alice", "Other123", "", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// Authenticate ok
	if _, err := s.Authenticate("alice", "Password123"); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	// Wrong password
	if _, err := s.Authenticate("alice", "Wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown username
	if _, err := s.Authenticate("ghost", "Password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown username, got %v", err)
	}
}

// A provisioning failure must roll the database file back and fail the
// registration as a whole.
func TestRegister_ProvisionFailureRollsBack(t *testing.T) {
	repo := newMemUserRepo()
	prov := newFakeProvisioner()
	prov.provisionErr = errors.New("disk full")
	s := NewAuthService(repo, prov, nil)

	if _, err := s.Register(context.Background(), "bob", "Password123", "", ""); err == nil {
		t.Fatalf("expected registration to fail when provisioning fails")
	}
	if len(prov.deprovisioned) != 1 || prov.deprovisioned[0] != "bob" {
		t.Fatalf("expected deprovision of bob, got %v", prov.deprovisioned)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMemUserRepo()
	prov := newFakeProvisioner()
	s := NewAuthService(repo, prov, nil)

	if _, err := s.Register(context.Background(), "carol", "OldPass123", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong old password
	if err := s.ChangePassword("carol", "bad", "NewPass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Good change
	if err := s.ChangePassword("carol", "OldPass123", "NewPass123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	// Old password should no longer work
	if _, err := s.Authenticate("carol", "OldPass123"); err == nil {
		t.Fatalf("expected old password to fail after change")
	}
	if _, err := s.Authenticate("carol", "NewPass123"); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}
}

func TestUpdateEmail(t *testing.T) {
	repo := newMemUserRepo()
	s := NewAuthService(repo, newFakeProvisioner(), nil)

	if _, err := s.Register(context.Background(), "dave", "Password123", "old@example.com", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := s.UpdateEmail("dave", "new@example.com"); err != nil {
		t.Fatalf("update email failed: %v", err)
	}
	u, err := repo.GetByUsername("dave")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if u.Email != "new@example.com" {
		t.Fatalf("expected updated email, got %s", u.Email)
	}
}
