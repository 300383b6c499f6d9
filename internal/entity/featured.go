package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeaturedRequestStatus tracks the review state of a featured placement request.
type FeaturedRequestStatus string

const (
	FeaturedPending  FeaturedRequestStatus = "pending"
	FeaturedApproved FeaturedRequestStatus = "approved"
	FeaturedRejected FeaturedRequestStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s FeaturedRequestStatus) Valid() bool {
	switch s {
	case FeaturedPending, FeaturedApproved, FeaturedRejected:
		return true
	}
	return false
}

// FeaturedRequest is a business owner's request for featured placement.
type FeaturedRequest struct {
	ID             uuid.UUID             `json:"id"`
	NotaryID       uuid.UUID             `json:"notary_id"`
	RequesterID    string                `json:"requester_id"`
	RequesterEmail string                `json:"requester_email"`
	RequesterPhone *string               `json:"requester_phone,omitempty"`
	Message        *string               `json:"message,omitempty"`
	Status         FeaturedRequestStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
}
