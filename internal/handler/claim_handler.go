package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// ClaimHandler accepts listing claims.
type ClaimHandler struct {
	claims *service.ClaimService
}

// NewClaimHandler constructs a ClaimHandler.
func NewClaimHandler(claims *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Submit handles POST /claims.
func (h *ClaimHandler) Submit(c echo.Context) error {
	var req dto.ClaimRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.claims.Submit(c.Request().Context(), req); err != nil {
		return respond(c, err, "failed to submit claim", notaryNotFound)
	}
	return Success(c, http.StatusAccepted, "claim submitted", nil)
}
