// Package services contains server-side business logic. This file implements
// UserService: credential verification, token minting, and user management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/server/auth"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// Actor identifies the authenticated caller of a service method.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsManager() bool {
	return a.Role == models.RoleManager
}

// UserService handles login and user administration. Passwords are write-only:
// they enter as plain text, are hashed with bcrypt, and never leave the server.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Login verifies the email/password pair and mints a signed token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Name, user.Role, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := s.validate(user); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.NewValidationError("senha é obrigatória")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}
	user.PasswordHash = string(hash)

	return s.repomanager.Users(s.db).Create(ctx, user)
}

// Update replaces the user's data. A blank password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := s.validate(user); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	current, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = current.PasswordHash
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = string(hash)
	}

	return repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

// EnsureDefaultManager seeds a manager account when the users table is empty,
// so a fresh install can be logged into.
func (s *UserService) EnsureDefaultManager(ctx context.Context, email, password string) error {
	repo := s.repomanager.Users(s.db)
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &models.User{
		Name:         "Gestor",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	})
	return err
}

func (s *UserService) validate(user *models.User) error {
	if user.Name == "" {
		return common.NewValidationError("nome é obrigatório")
	}
	if user.Email == "" {
		return common.NewValidationError("email é obrigatório")
	}
	if !models.ValidRole(user.Role) {
		return common.NewValidationError("tipo de usuário inválido")
	}
	return nil
}
