package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/mailer"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

type stubUsersRepo struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if s.create != nil {
		return s.create(ctx, email, passwordHash, role)
	}
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) List(ctx context.Context) ([]entity.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

type stubNotariesRepo struct {
	getByID     func(ctx context.Context, id uuid.UUID) (*entity.Notary, error)
	searchTier1 func(ctx context.Context, params repository.SearchParams) ([]entity.Notary, error)
}

func (s *stubNotariesRepo) Upsert(ctx context.Context, notary *entity.Notary) error {
	return errors.New("not implemented")
}

func (s *stubNotariesRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notary, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubNotariesRepo) SearchTier1(ctx context.Context, params repository.SearchParams) ([]entity.Notary, error) {
	if s.searchTier1 != nil {
		return s.searchTier1(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (s *stubNotariesRepo) Coverage(ctx context.Context, topCities int) (*repository.CoverageReport, error) {
	return nil, errors.New("not implemented")
}

type stubBookingsRepo struct {
	create       func(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	list         func(ctx context.Context, filter repository.BookingFilter) ([]entity.Booking, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

func (s *stubBookingsRepo) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if s.create != nil {
		return s.create(ctx, booking)
	}
	return nil, errors.New("not implemented")
}

func (s *stubBookingsRepo) List(ctx context.Context, filter repository.BookingFilter) ([]entity.Booking, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (s *stubBookingsRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status)
	}
	return nil, errors.New("not implemented")
}

type stubFeaturedRepo struct {
	create       func(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error)
	list         func(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error)
}

func (s *stubFeaturedRepo) Create(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error) {
	if s.create != nil {
		return s.create(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (s *stubFeaturedRepo) List(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error) {
	if s.list != nil {
		return s.list(ctx, status)
	}
	return nil, errors.New("not implemented")
}

func (s *stubFeaturedRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error) {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status)
	}
	return nil, errors.New("not implemented")
}

type stubSender struct {
	sent []mailer.Message
	err  error
}

func (s *stubSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "id", nil
}

func testComposer() *mailer.Composer {
	return mailer.NewComposer("from@notaryfindernow.com", "support@notaryfindernow.com")
}

// newContext builds an echo context; a non-nil body is sent as JSON.
func newContext(method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = bytes.NewBufferString(v)
		default:
			raw, _ := json.Marshal(v)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

// fieldsOf extracts data.fields from a validation response.
func fieldsOf(t *testing.T, payload APIResponse) map[string]any {
	t.Helper()
	data, ok := payload.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", payload.Data)
	}
	fields, ok := data["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected data.fields, got %v", data)
	}
	return fields
}
