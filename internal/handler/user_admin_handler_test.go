package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

func newUserAdminHandler(repo repository.UsersRepository) *UserAdminHandler {
	return NewUserAdminHandler(service.NewUserService(repo))
}

func TestUserAdminHandler_List(t *testing.T) {
	repo := &stubUsersRepo{
		list: func(ctx context.Context) ([]entity.User, error) {
			return []entity.User{{ID: uuid.New(), Email: "admin@example.com", Role: "admin"}}, nil
		},
	}

	c, rec := newContext(http.MethodGet, "/admin/users", nil)
	if err := newUserAdminHandler(repo).List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if data := decodeResponse(t, rec).Data.([]any); len(data) != 1 {
		t.Fatalf("expected one user, got %v", data)
	}

	failing := &stubUsersRepo{list: func(ctx context.Context) ([]entity.User, error) { return nil, errors.New("db down") }}
	c, rec = newContext(http.MethodGet, "/admin/users", nil)
	_ = newUserAdminHandler(failing).List(c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestUserAdminHandler_Create(t *testing.T) {
	repo := &stubUsersRepo{
		create: func(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
			if email == "taken@example.com" {
				return nil, repository.ErrEmailDuplicate
			}
			return &entity.User{ID: uuid.New(), Email: email, Role: role}, nil
		},
	}

	tests := map[string]struct {
		body       any
		wantStatus int
	}{
		"created":         {body: map[string]string{"email": "ops@example.com", "password": "long-enough"}, wantStatus: http.StatusCreated},
		"duplicate":       {body: map[string]string{"email": "taken@example.com", "password": "long-enough"}, wantStatus: http.StatusConflict},
		"short password":  {body: map[string]string{"email": "ops@example.com", "password": "x"}, wantStatus: http.StatusBadRequest},
		"invalid payload": {body: "{", wantStatus: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/admin/users", tt.body)
			if err := newUserAdminHandler(repo).Create(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
