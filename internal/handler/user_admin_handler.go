package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// UserAdminHandler exposes operator account management.
type UserAdminHandler struct {
	users *service.UserService
}

// NewUserAdminHandler constructs a handler instance.
func NewUserAdminHandler(users *service.UserService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

// List returns all operator accounts.
func (h *UserAdminHandler) List(c echo.Context) error {
	records, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return respond(c, err, "failed to list users")
	}
	return Success(c, http.StatusOK, "users retrieved", records)
}

// Create provisions a new operator account.
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.CreateUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return Error(c, http.StatusConflict, "email already exists")
		}
		return respond(c, err, "failed to create user")
	}

	return Success(c, http.StatusCreated, "user created", user)
}
