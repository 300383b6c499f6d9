package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/7lsnyc/notaryfindernow2/internal/dto"
	"github.com/7lsnyc/notaryfindernow2/internal/mailer"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

// ClaimService forwards listing claims to the support inbox.
type ClaimService struct {
	notaries repository.NotariesRepository
	sender   mailer.Sender
	composer *mailer.Composer
}

// NewClaimService constructs a ClaimService.
func NewClaimService(notaries repository.NotariesRepository, sender mailer.Sender, composer *mailer.Composer) *ClaimService {
	return &ClaimService{notaries: notaries, sender: sender, composer: composer}
}

// Submit validates the claim and emails support. Nothing is persisted.
func (s *ClaimService) Submit(ctx context.Context, req dto.ClaimRequest) error {
	errs := fieldErrors{}
	notaryID := requireUUID(errs, "notaryId", req.NotaryID)
	name := requireText(errs, "name", req.Name)
	email := requireEmail(errs, "email", req.Email)
	phone := optionalPhone(errs, "phone", req.Phone)
	if err := errs.err(); err != nil {
		return err
	}

	notary, err := s.notaries.GetByID(ctx, notaryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotaryNotFound) {
			return err
		}
		return fmt.Errorf("load notary: %w", err)
	}

	claim := &mailer.Claim{
		NotaryID:      notary.ID,
		ListingName:   notary.Name,
		ClaimantName:  name,
		ClaimantEmail: email,
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Message:       strings.TrimSpace(req.Message),
	}
	if phone != nil {
		claim.ClaimantPhone = *phone
	}

	msg, err := s.composer.ClaimNotification(claim)
	if err != nil {
		return fmt.Errorf("compose claim notification: %w", err)
	}
	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send claim notification: %w", err)
	}
	return nil
}
