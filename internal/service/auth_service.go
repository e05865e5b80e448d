package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/rentledger/internal/domain"
	"github.com/yourorg/rentledger/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrUsernameTaken is returned when registering an existing username
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials is returned on a failed authentication attempt
var ErrInvalidCredentials = errors.New("invalid credentials")

// Provisioner creates and removes per-user database files
type Provisioner interface {
	Provision(ctx context.Context, username string) error
	Deprovision(username string) error
}

// AuthService handles account registration and authentication against the
// shared credentials database, and provisions a private portfolio database
// for each new account.
type AuthService struct {
	userRepo    domain.UserRepository
	provisioner Provisioner
	logger      *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo domain.UserRepository, provisioner Provisioner, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:    userRepo,
		provisioner: provisioner,
		logger:      logger,
	}
}

// Register creates a new account and provisions its private database.
// When the username is already taken, no row is written and no database file
// is created.
func (s *AuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	if role == "" {
		role = "user"
	}

	exists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, errors.New("failed to register user")
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.provisioner.Provision(ctx, username); err != nil {
		s.logger.Error("failed to provision user database",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		// Don't leave a half-created database file behind
		if derr := s.provisioner.Deprovision(username); derr != nil {
			s.logger.Error("failed to clean up database after provision failure",
				slog.String("username", username),
				slog.String("error", derr.Error()),
			)
		}
		return nil, fmt.Errorf("failed to provision database: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	return user, nil
}

// Authenticate verifies a username/password pair and returns the matching
// account, or ErrInvalidCredentials
func (s *AuthService) Authenticate(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Info("login attempt for unknown username", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// UsernameExists reports whether an account exists for username
func (s *AuthService) UsernameExists(username string) (bool, error) {
	return s.userRepo.UsernameExists(username)
}

// ChangePassword re-authenticates with the old password before storing a new
// hash
func (s *AuthService) ChangePassword(username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password is required")
	}

	if _, err := s.Authenticate(username, oldPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.String("error", err.Error()))
		return errors.New("failed to change password")
	}

	if err := s.userRepo.UpdatePassword(username, string(hash)); err != nil {
		s.logger.Error("failed to update password",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("user changed password", slog.String("username", username))
	return nil
}

// UpdateEmail replaces the contact email stored for username
func (s *AuthService) UpdateEmail(username, email string) error {
	if err := s.userRepo.UpdateEmail(username, email); err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}
	return nil
}
