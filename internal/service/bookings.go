package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/mailer"
	"github.com/7lsnyc/notaryfindernow2/internal/middleware"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

// ErrConfirmationEmail wraps a failed client confirmation. The booking is already stored.
var ErrConfirmationEmail = errors.New("send booking confirmation")

// BookingService stores booking requests and sends their emails.
type BookingService struct {
	bookings repository.BookingsRepository
	notaries repository.NotariesRepository
	sender   mailer.Sender
	composer *mailer.Composer
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings repository.BookingsRepository, notaries repository.NotariesRepository, sender mailer.Sender, composer *mailer.Composer) *BookingService {
	return &BookingService{bookings: bookings, notaries: notaries, sender: sender, composer: composer}
}

// Create stores a pending booking and emails the client a confirmation.
// When the confirmation fails the created booking is returned together with ErrConfirmationEmail.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*entity.Booking, error) {
	errs := fieldErrors{}
	booking := &entity.Booking{
		NotaryID:    requireUUID(errs, "notaryId", req.NotaryID),
		Date:        requireText(errs, "date", req.Date),
		Time:        requireText(errs, "time", req.Time),
		Service:     requireText(errs, "service", req.Service),
		ClientName:  requireText(errs, "clientName", req.ClientName),
		ClientEmail: requireEmail(errs, "clientEmail", req.ClientEmail),
		ClientPhone: optionalPhone(errs, "clientPhone", req.ClientPhone),
		Location:    requireText(errs, "location", req.Location),
		Notes:       optionalText(req.Notes),
		Status:      entity.BookingPending,
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	notary, err := s.notaries.GetByID(ctx, booking.NotaryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotaryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load notary: %w", err)
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.sendConfirmation(ctx, created, notary); err != nil {
		log.Printf("event=booking_confirmation_failed request_id=%s booking_id=%s err=%v", middleware.RequestIDFrom(ctx), created.ID, err)
		return created, fmt.Errorf("%w: %v", ErrConfirmationEmail, err)
	}

	s.notifyNotary(ctx, created, notary)

	return created, nil
}

func (s *BookingService) sendConfirmation(ctx context.Context, b *entity.Booking, notary *entity.Notary) error {
	msg, err := s.composer.BookingConfirmation(b, notary)
	if err != nil {
		return err
	}
	_, err = s.sender.Send(ctx, msg)
	return err
}

// notifyNotary is best effort; failures are only logged.
func (s *BookingService) notifyNotary(ctx context.Context, b *entity.Booking, notary *entity.Notary) {
	if notary.Email == nil || *notary.Email == "" {
		return
	}
	msg, err := s.composer.BookingNotification(b, notary)
	if err == nil {
		_, err = s.sender.Send(ctx, msg)
	}
	if err != nil {
		log.Printf("event=booking_notification_failed request_id=%s booking_id=%s notary_id=%s err=%v", middleware.RequestIDFrom(ctx), b.ID, notary.ID, err)
	}
}

// List returns bookings by notary, client email, or both. At least one is required.
func (s *BookingService) List(ctx context.Context, notaryID, clientEmail string) ([]entity.Booking, error) {
	notaryID = strings.TrimSpace(notaryID)
	clientEmail = strings.TrimSpace(clientEmail)
	if notaryID == "" && clientEmail == "" {
		return nil, invalidField("query", "must provide either notaryId or clientEmail")
	}

	var filter repository.BookingFilter
	if notaryID != "" {
		id, err := uuid.Parse(notaryID)
		if err != nil {
			return nil, invalidField("notaryId", "must be a valid id")
		}
		filter.NotaryID = &id
	}
	filter.ClientEmail = clientEmail

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets any known status. Transitions are not checked.
func (s *BookingService) UpdateStatus(ctx context.Context, rawID, rawStatus string) (*entity.Booking, error) {
	errs := fieldErrors{}
	id := requireUUID(errs, "id", rawID)
	status := entity.BookingStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		errs.add("status", "must be one of pending, confirmed, completed, cancelled")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	booking, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return booking, nil
}
