package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var ErrPasswordTooShort = fmt.Errorf("%w: password is too short", ErrValidationFailed)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	// EnsureAdmin creates the admin account if no user has that email yet.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, handleRepositoryError(err, "find user by email")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return handleRepositoryError(err, "find admin user")
	}

	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil
		}
		return handleRepositoryError(err, "create admin user")
	}
	s.logger.InfoContext(ctx, "Admin account created", slog.String("email", email))
	return nil
}
