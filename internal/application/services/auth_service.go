package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vibeshot/core/internal/application/store"
	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

// AuthService handles signup, login and logout. Credentials are compared and
// stored in plaintext: the system deliberately has no real auth security,
// and the persisted format depends on it.
type AuthService struct {
	store    *store.Store
	validate *validator.Validate
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, log *logger.Logger) *AuthService {
	return &AuthService{
		store:    st,
		validate: validator.New(),
		logger:   log.WithComponent("auth"),
	}
}

// Signup creates a new account and signs it in. A taken email fails with
// entities.ErrEmailTaken and leaves the existing account untouched.
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (*entities.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid signup request: %w", err)
	}

	if _, exists := s.store.UserByEmail(req.Email); exists {
		return nil, fmt.Errorf("signup %s: %w", req.Email, entities.ErrEmailTaken)
	}

	user := &entities.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Following: []string{},
	}

	s.store.AppendUser(user)
	s.store.SetSession(user)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.Infow("User registered", "email", user.Email, "name", user.Name)
	return user, nil
}

// Login authenticates by exact email and password match. The session becomes
// the matched list entry itself, so later session mutations are visible in
// the list.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*entities.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	user, ok := s.store.UserByEmail(req.Email)
	if !ok || user.Password != req.Password {
		s.logger.Warnw("Failed login attempt", "email", req.Email)
		return nil, fmt.Errorf("login %s: %w", req.Email, entities.ErrInvalidCredentials)
	}

	s.store.SetSession(user)
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	s.logger.Infow("User logged in", "email", user.Email)
	return user, nil
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context) error {
	s.store.SetSession(nil)
	if err := s.store.Save(ctx); err != nil {
		return err
	}
	s.logger.Infow("User logged out")
	return nil
}
