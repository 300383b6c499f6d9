package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

// Search defaults and bounds, in miles where applicable.
const (
	DefaultRadiusMiles = 25.0
	MaxRadiusMiles     = 500.0
	DefaultLimit       = 10
	MaxLimit           = 100
	MaxRating          = 5.0
)

// SearchQuery is a geo-radius search with optional client-side filters.
// Nil pointers mean the caller did not supply the value.
type SearchQuery struct {
	Latitude      *float64
	Longitude     *float64
	RadiusMiles   *float64
	MinRating     *float64
	Services      []string
	AvailableNow  bool
	OnlineBooking bool
	Limit         *int
	Offset        *int
}

// SearchService answers notary directory queries.
type SearchService struct {
	notaries repository.NotariesRepository
}

// NewSearchService constructs a SearchService.
func NewSearchService(notaries repository.NotariesRepository) *SearchService {
	return &SearchService{notaries: notaries}
}

// Search validates q, runs the radius search and applies the tag filters.
// A query without coordinates returns an empty list without touching the store.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]entity.Notary, error) {
	if q.Latitude == nil || q.Longitude == nil {
		return []entity.Notary{}, nil
	}

	params, err := q.params()
	if err != nil {
		return nil, err
	}

	notaries, err := s.notaries.SearchTier1(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search notaries: %w", err)
	}

	return filterNotaries(notaries, q, params.MinRating), nil
}

func (q SearchQuery) params() (repository.SearchParams, error) {
	errs := fieldErrors{}
	params := repository.SearchParams{
		Latitude:    *q.Latitude,
		Longitude:   *q.Longitude,
		RadiusMiles: DefaultRadiusMiles,
		Limit:       DefaultLimit,
	}

	if !inRange(params.Latitude, -90, 90) {
		errs.add("latitude", "must be between -90 and 90")
	}
	if !inRange(params.Longitude, -180, 180) {
		errs.add("longitude", "must be between -180 and 180")
	}
	if q.RadiusMiles != nil {
		if *q.RadiusMiles <= 0 || !inRange(*q.RadiusMiles, 0, MaxRadiusMiles) {
			errs.add("radius", "must be between 0 and 500 miles")
		}
		params.RadiusMiles = *q.RadiusMiles
	}
	if q.MinRating != nil {
		if !inRange(*q.MinRating, 0, MaxRating) {
			errs.add("rating", "must be between 0 and 5")
		}
		params.MinRating = *q.MinRating
	}
	if q.Limit != nil {
		if *q.Limit < 1 || *q.Limit > MaxLimit {
			errs.add("limit", "must be between 1 and 100")
		}
		params.Limit = *q.Limit
	}
	if q.Offset != nil {
		if *q.Offset < 0 {
			errs.add("offset", "must not be negative")
		}
		params.Offset = *q.Offset
	}

	return params, errs.err()
}

func filterNotaries(notaries []entity.Notary, q SearchQuery, minRating float64) []entity.Notary {
	out := make([]entity.Notary, 0, len(notaries))
	for _, n := range notaries {
		if !n.HasAnyService(q.Services) {
			continue
		}
		if q.AvailableNow && !n.IsAvailableNow {
			continue
		}
		if q.OnlineBooking && !n.ServiceTypes.HasOnlineBooking {
			continue
		}
		if n.Rating < minRating {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Get returns a single notary by id.
func (s *SearchService) Get(ctx context.Context, rawID string) (*entity.Notary, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, invalidField("id", "must be a valid id")
	}

	notary, err := s.notaries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotaryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get notary: %w", err)
	}
	return notary, nil
}

// ParseLocation reads a "lat,lng" pair.
func ParseLocation(value string) (float64, float64, error) {
	latRaw, lngRaw, ok := strings.Cut(value, ",")
	if !ok {
		return 0, 0, invalidField("location", `expected "latitude,longitude"`)
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if latErr != nil || lngErr != nil {
		return 0, 0, invalidField("location", `expected "latitude,longitude"`)
	}
	if !inRange(lat, -90, 90) {
		return 0, 0, invalidField("location", "latitude must be between -90 and 90")
	}
	if !inRange(lng, -180, 180) {
		return 0, 0, invalidField("location", "longitude must be between -180 and 180")
	}
	return lat, lng, nil
}
