package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/7lsnyc/notaryfindernow2/internal/auth"
	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

const minPasswordLength = 8

// UserService manages operator accounts.
type UserService struct {
	repo repository.UsersRepository
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers returns all operator accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:    u.ID.String(),
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return responses, nil
}

// CreateUser hashes the password and stores a new account. Role defaults to admin.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	errs := fieldErrors{}
	email := requireEmail(errs, "email", req.Email)
	if len(req.Password) < minPasswordLength {
		errs.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = auth.RoleAdmin
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, email, string(hashed), role)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &dto.UserResponse{ID: user.ID.String(), Email: user.Email, Role: user.Role}, nil
}
