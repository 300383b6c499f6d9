package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a client appointment request for a notary.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	NotaryID    uuid.UUID     `json:"notary_id"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
	ClientPhone *string       `json:"client_phone,omitempty"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Service     string        `json:"service"`
	Location    string        `json:"location"`
	Notes       *string       `json:"notes,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
