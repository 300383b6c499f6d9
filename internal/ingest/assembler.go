package ingest

import (
	"encoding/json"
	"time"

	"github.com/7lsnyc/notaryfindernow2/internal/classifier"
	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/places"
)

// MaxReviews caps the review excerpts stored per notary.
const MaxReviews = 10

var emptyHours = json.RawMessage(`{}`)

// Assembler turns place details into notary records.
type Assembler struct {
	now func() time.Time
}

// NewAssembler returns an assembler stamping records with now; nil uses time.Now.
func NewAssembler(now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{now: now}
}

// Assemble builds the record for detail. It performs no I/O.
func (a *Assembler) Assemble(detail *places.PlaceDetail) *entity.Notary {
	reviewTexts := make([]string, 0, len(detail.Reviews))
	for _, r := range detail.Reviews {
		reviewTexts = append(reviewTexts, r.Text)
	}
	in := classifier.Input{
		Name:        detail.Name,
		Description: detail.EditorialSummary,
		Reviews:     reviewTexts,
	}

	booking := classifier.DetectBooking(in, detail.Website)
	services := classifier.DetectServices(in)
	services.HasOnlineBooking = booking.HasOnlineBooking

	city, state := ParseCityState(detail.FormattedAddress)
	ts := a.now().UTC()

	n := &entity.Notary{
		PlaceID:             detail.ID,
		Name:                SanitizeText(detail.Name),
		Address:             SanitizeText(detail.FormattedAddress),
		City:                SanitizeText(city),
		State:               SanitizeText(state),
		Latitude:            detail.Location.Latitude,
		Longitude:           detail.Location.Longitude,
		Rating:              detail.Rating,
		ReviewCount:         detail.UserRatingCount,
		Phone:               optional(detail.Phone),
		Website:             optional(detail.Website),
		BusinessType:        optional(detail.PrimaryType),
		Services:            []string{entity.DefaultService},
		IsAvailableNow:      detail.OpenNow,
		BusinessHours:       emptyHours,
		ServiceTypes:        services,
		DiversityIndicators: classifier.DetectDiversity(in),
		BookingInfo: entity.BookingInfo{
			BookingURL:      SanitizeText(booking.Info.BookingURL),
			BookingPlatform: booking.Info.BookingPlatform,
		},
		Reviews:   assembleReviews(detail.Reviews),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if len(detail.OpeningPeriods) > 0 {
		n.BusinessHours = detail.OpeningPeriods
	}
	if detail.Photo != nil && detail.Photo.URL != "" {
		n.Photo = &entity.Photo{
			URL:         SanitizeText(detail.Photo.URL),
			Attribution: SanitizeText(detail.Photo.Attribution),
		}
	}
	return n
}

func assembleReviews(in []places.Review) []entity.Review {
	if len(in) > MaxReviews {
		in = in[:MaxReviews]
	}
	out := make([]entity.Review, 0, len(in))
	for _, r := range in {
		out = append(out, entity.Review{
			Author: SanitizeText(r.Author),
			Rating: r.Rating,
			Text:   SanitizeText(r.Text),
			Time:   SanitizeText(r.RelativeTime),
		})
	}
	return out
}

func optional(s string) *string {
	s = SanitizeText(s)
	if s == "" {
		return nil
	}
	return &s
}
