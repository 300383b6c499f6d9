package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
	"github.com/7lsnyc/notaryfindernow2/internal/service"
)

var notaryNotFound = notFound{err: repository.ErrNotaryNotFound, message: "notary not found"}

// NotaryHandler exposes directory search and profile endpoints.
type NotaryHandler struct {
	search *service.SearchService
}

// NewNotaryHandler constructs a NotaryHandler.
func NewNotaryHandler(search *service.SearchService) *NotaryHandler {
	return &NotaryHandler{search: search}
}

// Search handles GET /notaries/search.
func (h *NotaryHandler) Search(c echo.Context) error {
	q, verr := searchQueryFromParams(c)
	if verr != nil {
		return ValidationFailed(c, verr)
	}
	return h.run(c, q)
}

// SearchBody handles POST /notaries/search with a {"filters": {...}} body.
func (h *NotaryHandler) SearchBody(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	return h.run(c, searchQueryFromFilters(req.Filters))
}

// Locate handles GET /notaries?location=lat,lng&filters={json}.
func (h *NotaryHandler) Locate(c echo.Context) error {
	location := strings.TrimSpace(c.QueryParam("location"))
	if location == "" {
		return Error(c, http.StatusBadRequest, "location parameter is required")
	}
	lat, lng, err := service.ParseLocation(location)
	if err != nil {
		return respond(c, err, "failed to search notaries")
	}

	var filters dto.SearchFilters
	if raw := c.QueryParam("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			return ValidationFailed(c, &service.ValidationError{Fields: map[string]string{"filters": "must be a JSON object"}})
		}
	}
	filters.Latitude = &lat
	filters.Longitude = &lng

	return h.run(c, searchQueryFromFilters(filters))
}

// Get handles GET /notaries/:id.
func (h *NotaryHandler) Get(c echo.Context) error {
	notary, err := h.search.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond(c, err, "failed to load notary", notaryNotFound)
	}
	return Success(c, http.StatusOK, "notary retrieved", notary)
}

func (h *NotaryHandler) run(c echo.Context, q service.SearchQuery) error {
	notaries, err := h.search.Search(c.Request().Context(), q)
	if err != nil {
		return respond(c, err, "failed to search notaries")
	}
	return Success(c, http.StatusOK, "notaries retrieved", notaries)
}

func searchQueryFromFilters(f dto.SearchFilters) service.SearchQuery {
	return service.SearchQuery{
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		RadiusMiles:   f.Radius,
		MinRating:     f.Rating,
		Services:      f.Services,
		AvailableNow:  f.IsAvailableNow,
		OnlineBooking: f.OnlineBooking,
		Limit:         f.Limit,
		Offset:        f.Offset,
	}
}

// searchQueryFromParams reads the query string form of a search.
func searchQueryFromParams(c echo.Context) (service.SearchQuery, *service.ValidationError) {
	p := queryParser{c: c, fields: map[string]string{}}
	q := service.SearchQuery{
		Latitude:      p.float("latitude"),
		Longitude:     p.float("longitude"),
		RadiusMiles:   p.float("radius"),
		MinRating:     p.float("rating"),
		Services:      splitList(c.QueryParam("services")),
		AvailableNow:  p.bool("is_available_now"),
		OnlineBooking: p.bool("online_booking"),
		Limit:         p.int("limit"),
		Offset:        p.int("offset"),
	}
	if len(p.fields) > 0 {
		return q, &service.ValidationError{Fields: p.fields}
	}
	return q, nil
}

type queryParser struct {
	c      echo.Context
	fields map[string]string
}

func (p queryParser) float(name string) *float64 {
	raw := strings.TrimSpace(p.c.QueryParam(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fields[name] = "must be a number"
		return nil
	}
	return &v
}

func (p queryParser) int(name string) *int {
	raw := strings.TrimSpace(p.c.QueryParam(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fields[name] = "must be an integer"
		return nil
	}
	return &v
}

func (p queryParser) bool(name string) bool {
	raw := strings.TrimSpace(p.c.QueryParam(name))
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fields[name] = "must be true or false"
		return false
	}
	return v
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
