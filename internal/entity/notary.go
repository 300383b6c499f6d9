package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultService is the service tag every ingested notary carries.
const DefaultService = "Notary Public"

// ServiceTypes are the service flags derived from listing text.
type ServiceTypes struct {
	IsMobile                  bool `json:"is_mobile"`
	Is24Hour                  bool `json:"is_24_hour"`
	IsRemote                  bool `json:"is_remote"`
	IsFreeInitialConsultation bool `json:"is_free_initial_consultation"`
	OffersLoanSigning         bool `json:"offers_loan_signing"`
	OffersApostille           bool `json:"offers_apostille"`
	OffersRealEstate          bool `json:"offers_real_estate"`
	OffersWedding             bool `json:"offers_wedding"`
	HasOnlineBooking          bool `json:"has_online_booking"`
}

// DiversityIndicators are ownership/friendliness flags derived from listing text.
type DiversityIndicators struct {
	IsBlackOwned    bool `json:"is_black_owned"`
	IsLGBTQFriendly bool `json:"is_lgbtq_friendly"`
	IsWomenOwned    bool `json:"is_women_owned"`
}

// BookingInfo records where a notary takes online bookings, when known.
type BookingInfo struct {
	BookingURL      string `json:"booking_url,omitempty"`
	BookingPlatform string `json:"booking_platform,omitempty"`
}

// Photo is the resolved listing photo.
type Photo struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
}

// Review is an excerpt of a public review.
type Review struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Time   string  `json:"time"`
}

// Notary is a directory listing stored in the notaries table.
type Notary struct {
	ID                  uuid.UUID           `json:"id"`
	PlaceID             string              `json:"place_id"`
	Name                string              `json:"name"`
	Email               *string             `json:"email,omitempty"`
	Address             string              `json:"address"`
	City                string              `json:"city"`
	State               string              `json:"state"`
	Latitude            float64             `json:"latitude"`
	Longitude           float64             `json:"longitude"`
	Rating              float64             `json:"rating"`
	ReviewCount         int                 `json:"review_count"`
	Phone               *string             `json:"phone,omitempty"`
	Website             *string             `json:"website,omitempty"`
	BusinessType        *string             `json:"business_type,omitempty"`
	Services            []string            `json:"services"`
	IsAvailableNow      bool                `json:"is_available_now"`
	BusinessHours       json.RawMessage     `json:"business_hours"`
	ServiceTypes        ServiceTypes        `json:"service_types"`
	DiversityIndicators DiversityIndicators `json:"diversity_indicators"`
	BookingInfo         BookingInfo         `json:"booking_info"`
	Photo               *Photo              `json:"photo,omitempty"`
	Reviews             []Review            `json:"reviews"`
	Featured            bool                `json:"featured"`
	Distance            *float64            `json:"distance,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// HasAnyService reports whether the notary carries at least one of the given tags.
func (n *Notary) HasAnyService(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(n.Services))
	for _, s := range n.Services {
		have[s] = struct{}{}
	}
	for _, tag := range tags {
		if _, ok := have[tag]; ok {
			return true
		}
	}
	return false
}
