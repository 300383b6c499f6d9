package service

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "US"

var (
	errInvalidEmail = errors.New("invalid email format")
	errInvalidPhone = errors.New("invalid phone number")
)

// normalizeEmail lower-cases the address and converts an internationalised domain to ASCII.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "", errInvalidEmail
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return "", errInvalidEmail
	}
	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return "", errInvalidEmail
	}
	return email, nil
}

// normalizePhone returns the E.164 form of a valid number, defaulting to US numbering.
func normalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errInvalidPhone
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", errInvalidPhone
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return "", errInvalidPhone
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

// optionalPhone validates a phone only when one was supplied.
func optionalPhone(errs fieldErrors, field, raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	phone, err := normalizePhone(raw, defaultPhoneRegion)
	if err != nil {
		errs.add(field, err.Error())
		return nil
	}
	return &phone
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func requireText(errs fieldErrors, field, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		errs.add(field, "is required")
	}
	return trimmed
}

func requireEmail(errs fieldErrors, field, raw string) string {
	if strings.TrimSpace(raw) == "" {
		errs.add(field, "is required")
		return ""
	}
	email, err := normalizeEmail(raw)
	if err != nil {
		errs.add(field, err.Error())
	}
	return email
}

func requireUUID(errs fieldErrors, field, raw string) uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.add(field, "is required")
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		errs.add(field, "must be a valid id")
		return uuid.Nil
	}
	return id
}

// inRange reports whether v is a finite number within [min, max].
func inRange(v, min, max float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= min && v <= max
}
