package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// BookingHandler exposes booking endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /bookings?notaryId=&clientEmail=.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context(), c.QueryParam("notaryId"), c.QueryParam("clientEmail"))
	if err != nil {
		return respond(c, err, "failed to fetch bookings")
	}
	return Success(c, http.StatusOK, "bookings retrieved", bookings)
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	booking, err := h.bookings.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrConfirmationEmail) {
			return Error(c, http.StatusInternalServerError, "booking saved but confirmation email could not be sent")
		}
		return respond(c, err, "failed to create booking", notaryNotFound)
	}
	return Success(c, http.StatusCreated, "booking created successfully", booking)
}

// UpdateStatus handles PATCH /admin/bookings/:id.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	booking, err := h.bookings.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return respond(c, err, "failed to update booking", notFound{err: repository.ErrBookingNotFound, message: "booking not found"})
	}
	return Success(c, http.StatusOK, "booking updated", booking)
}
