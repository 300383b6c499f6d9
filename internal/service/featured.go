package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

// Tier-1 featured selection. Without coordinates the search centres on San Francisco.
const (
	FeaturedDefaultLatitude  = 37.7749
	FeaturedDefaultLongitude = -122.4194
	FeaturedDefaultLimit     = 3
	FeaturedRadiusMiles      = 25.0
	FeaturedMinRating        = 4.0
)

// FeaturedService selects featured notaries and handles placement requests.
type FeaturedService struct {
	notaries repository.NotariesRepository
	requests repository.FeaturedRequestsRepository
}

// NewFeaturedService constructs a FeaturedService.
func NewFeaturedService(notaries repository.NotariesRepository, requests repository.FeaturedRequestsRepository) *FeaturedService {
	return &FeaturedService{notaries: notaries, requests: requests}
}

// Featured returns the best rated notaries within 25 miles of the point.
func (s *FeaturedService) Featured(ctx context.Context, latitude, longitude *float64, limit *int) ([]entity.Notary, error) {
	params := repository.SearchParams{
		Latitude:    FeaturedDefaultLatitude,
		Longitude:   FeaturedDefaultLongitude,
		RadiusMiles: FeaturedRadiusMiles,
		MinRating:   FeaturedMinRating,
		Limit:       FeaturedDefaultLimit,
	}

	errs := fieldErrors{}
	if latitude != nil {
		if !inRange(*latitude, -90, 90) {
			errs.add("latitude", "must be between -90 and 90")
		}
		params.Latitude = *latitude
	}
	if longitude != nil {
		if !inRange(*longitude, -180, 180) {
			errs.add("longitude", "must be between -180 and 180")
		}
		params.Longitude = *longitude
	}
	if limit != nil {
		if *limit < 1 || *limit > MaxLimit {
			errs.add("limit", "must be between 1 and 100")
		}
		params.Limit = *limit
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	notaries, err := s.notaries.SearchTier1(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search featured notaries: %w", err)
	}
	return notaries, nil
}

// SubmitRequest stores a pending featured placement request for an existing notary.
func (s *FeaturedService) SubmitRequest(ctx context.Context, req dto.FeaturedRequestInput) (*entity.FeaturedRequest, error) {
	errs := fieldErrors{}
	input := &entity.FeaturedRequest{
		NotaryID:       requireUUID(errs, "notaryId", req.NotaryID),
		RequesterID:    requireText(errs, "requesterId", req.RequesterID),
		RequesterEmail: requireEmail(errs, "requesterEmail", req.RequesterEmail),
		RequesterPhone: optionalPhone(errs, "requesterPhone", req.RequesterPhone),
		Message:        optionalText(req.Message),
		Status:         entity.FeaturedPending,
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if _, err := s.notaries.GetByID(ctx, input.NotaryID); err != nil {
		if errors.Is(err, repository.ErrNotaryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load notary: %w", err)
	}

	created, err := s.requests.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create featured request: %w", err)
	}
	return created, nil
}

// ListRequests returns requests, optionally narrowed to one status.
func (s *FeaturedService) ListRequests(ctx context.Context, rawStatus string) ([]entity.FeaturedRequest, error) {
	var status *entity.FeaturedRequestStatus
	if trimmed := strings.ToLower(strings.TrimSpace(rawStatus)); trimmed != "" {
		st := entity.FeaturedRequestStatus(trimmed)
		if !st.Valid() {
			return nil, invalidField("status", "must be one of pending, approved, rejected")
		}
		status = &st
	}

	requests, err := s.requests.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list featured requests: %w", err)
	}
	return requests, nil
}

// Review sets the status of a request. Approval also marks the notary featured.
func (s *FeaturedService) Review(ctx context.Context, rawID, rawStatus string) (*entity.FeaturedRequest, error) {
	errs := fieldErrors{}
	id := requireUUID(errs, "id", rawID)
	status := entity.FeaturedRequestStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		errs.add("status", "must be one of pending, approved, rejected")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrFeaturedRequestNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("review featured request: %w", err)
	}
	return updated, nil
}
