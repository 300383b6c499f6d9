package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// FeaturedHandler exposes featured listings and placement requests.
type FeaturedHandler struct {
	featured *service.FeaturedService
}

// NewFeaturedHandler constructs a FeaturedHandler.
func NewFeaturedHandler(featured *service.FeaturedService) *FeaturedHandler {
	return &FeaturedHandler{featured: featured}
}

// Featured handles GET /featured-notaries.
func (h *FeaturedHandler) Featured(c echo.Context) error {
	p := queryParser{c: c, fields: map[string]string{}}
	lat, lng, limit := p.float("latitude"), p.float("longitude"), p.int("limit")
	if len(p.fields) > 0 {
		return ValidationFailed(c, &service.ValidationError{Fields: p.fields})
	}

	notaries, err := h.featured.Featured(c.Request().Context(), lat, lng, limit)
	if err != nil {
		return respond(c, err, "failed to fetch featured notaries")
	}
	return Success(c, http.StatusOK, "featured notaries retrieved", notaries)
}

// SubmitRequest handles POST /featured-requests.
func (h *FeaturedHandler) SubmitRequest(c echo.Context) error {
	var req dto.FeaturedRequestInput
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	created, err := h.featured.SubmitRequest(c.Request().Context(), req)
	if err != nil {
		return respond(c, err, "failed to submit featured request", notaryNotFound)
	}
	return Success(c, http.StatusCreated, "featured request submitted", created)
}

// ListRequests handles GET /admin/featured-requests?status=.
func (h *FeaturedHandler) ListRequests(c echo.Context) error {
	requests, err := h.featured.ListRequests(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return respond(c, err, "failed to list featured requests")
	}
	return Success(c, http.StatusOK, "featured requests retrieved", requests)
}

// Review handles PATCH /admin/featured-requests/:id.
func (h *FeaturedHandler) Review(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.featured.Review(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respond(c, err, "failed to review featured request", notFound{err: repository.ErrFeaturedRequestNotFound, message: "featured request not found"})
	}
	return Success(c, http.StatusOK, "featured request updated", updated)
}
