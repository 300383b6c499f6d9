package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/7lsnyc/notaryfindernow2/internal/auth"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

// AuthService validates operator credentials and issues admin tokens.
type AuthService struct {
	users repository.UsersRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Login validates credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	errs := fieldErrors{}
	if email == "" {
		errs.add("email", "is required")
	}
	if password == "" {
		errs.add("password", "is required")
	}
	if err := errs.err(); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
