package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
	"github.com/7lsnyc/notaryfindernow2/internal/mailer"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, email, passwordHash, role)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

type mockNotariesRepository struct {
	getByID     func(ctx context.Context, id uuid.UUID) (*entity.Notary, error)
	searchTier1 func(ctx context.Context, params repository.SearchParams) ([]entity.Notary, error)
	searchCalls int
}

func (m *mockNotariesRepository) Upsert(ctx context.Context, notary *entity.Notary) error {
	return errors.New("upsert not implemented")
}

func (m *mockNotariesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notary, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, errors.New("getByID not implemented")
}

func (m *mockNotariesRepository) SearchTier1(ctx context.Context, params repository.SearchParams) ([]entity.Notary, error) {
	m.searchCalls++
	if m.searchTier1 != nil {
		return m.searchTier1(ctx, params)
	}
	return nil, errors.New("searchTier1 not implemented")
}

func (m *mockNotariesRepository) Coverage(ctx context.Context, topCities int) (*repository.CoverageReport, error) {
	return nil, errors.New("coverage not implemented")
}

type mockBookingsRepository struct {
	create       func(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	list         func(ctx context.Context, filter repository.BookingFilter) ([]entity.Booking, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

func (m *mockBookingsRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if m.create != nil {
		return m.create(ctx, booking)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockBookingsRepository) List(ctx context.Context, filter repository.BookingFilter) ([]entity.Booking, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockBookingsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return nil, errors.New("updateStatus not implemented")
}

type mockFeaturedRepository struct {
	create       func(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error)
	list         func(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error)
}

func (m *mockFeaturedRepository) Create(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error) {
	if m.create != nil {
		return m.create(ctx, req)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockFeaturedRepository) List(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error) {
	if m.list != nil {
		return m.list(ctx, status)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockFeaturedRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error) {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return nil, errors.New("updateStatus not implemented")
}

// recordingSender captures messages and fails for recipients listed in failFor.
type recordingSender struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failFor map[string]error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, to := range msg.To {
		if err, ok := s.failFor[to]; ok {
			return "", err
		}
	}
	s.sent = append(s.sent, msg)
	return "msg-" + msg.To[0], nil
}

func testNotary(id uuid.UUID, email string) *entity.Notary {
	n := &entity.Notary{ID: id, Name: "Bay Notary", Services: []string{entity.DefaultService}}
	if email != "" {
		n.Email = &email
	}
	return n
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
