package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// AuthHandler exposes the operator login endpoint.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return respond(c, err, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "login successful", dto.LoginResponse{AccessToken: token, TokenType: "Bearer"})
}
