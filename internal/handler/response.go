package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/middleware"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// ValidationFailed sends a 400 listing the offending fields under data.fields.
func ValidationFailed(c echo.Context, verr *service.ValidationError) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Message: "validation failed",
		Data:    map[string]any{"fields": verr.Fields},
	})
}

// notFound pairs a sentinel with the message returned for it.
type notFound struct {
	err     error
	message string
}

// respond maps service errors onto status codes. Anything unrecognised is logged and becomes a 500.
func respond(c echo.Context, err error, fallback string, missing ...notFound) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return ValidationFailed(c, verr)
	}
	for _, nf := range missing {
		if errors.Is(err, nf.err) {
			return Error(c, http.StatusNotFound, nf.message)
		}
	}

	log.Printf("request_id=%s path=%s err=%q", middleware.RequestIDFromContext(c), c.Path(), err.Error())
	return Error(c, http.StatusInternalServerError, fallback)
}
