package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// ErrNotaryNotFound indicates no notary matches the identifier.
var ErrNotaryNotFound = errors.New("notary not found")

// NotariesRepository describes persistence operations for notaries.
type NotariesRepository interface {
	Upsert(ctx context.Context, notary *entity.Notary) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notary, error)
	SearchTier1(ctx context.Context, params SearchParams) ([]entity.Notary, error)
	Coverage(ctx context.Context, topCities int) (*CoverageReport, error)
}

// SearchParams are the arguments of the search_tier1_notaries function.
type SearchParams struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	MinRating   float64
	Limit       int
	Offset      int
}

// PGXNotariesRepository implements NotariesRepository using pgx.
type PGXNotariesRepository struct {
	pool pgxPool
}

// NewPGXNotariesRepository wires a pgx backed repository.
func NewPGXNotariesRepository(pool *pgxpool.Pool) *PGXNotariesRepository {
	return &PGXNotariesRepository{pool: pool}
}

const notaryColumns = `
            id,
            place_id,
            name,
            email,
            address,
            city,
            state,
            latitude,
            longitude,
            rating,
            review_count,
            phone,
            website,
            business_type,
            services,
            is_available_now,
            business_hours,
            service_types,
            diversity_indicators,
            booking_info,
            photo,
            reviews,
            featured,
            created_at,
            updated_at`

const upsertNotarySQL = `
        INSERT INTO notaries (
            place_id,
            name,
            address,
            city,
            state,
            latitude,
            longitude,
            rating,
            review_count,
            phone,
            website,
            business_type,
            services,
            is_available_now,
            business_hours,
            service_types,
            diversity_indicators,
            booking_info,
            photo,
            reviews,
            created_at,
            updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
            $12, $13, $14, $15::jsonb, $16::jsonb, $17::jsonb, $18::jsonb, $19::jsonb, $20::jsonb,
            $21, $21
        )
        ON CONFLICT (place_id) DO UPDATE SET
            name = EXCLUDED.name,
            address = EXCLUDED.address,
            city = EXCLUDED.city,
            state = EXCLUDED.state,
            latitude = EXCLUDED.latitude,
            longitude = EXCLUDED.longitude,
            rating = EXCLUDED.rating,
            review_count = EXCLUDED.review_count,
            phone = EXCLUDED.phone,
            website = EXCLUDED.website,
            business_type = EXCLUDED.business_type,
            services = EXCLUDED.services,
            is_available_now = EXCLUDED.is_available_now,
            business_hours = EXCLUDED.business_hours,
            service_types = EXCLUDED.service_types,
            diversity_indicators = EXCLUDED.diversity_indicators,
            booking_info = EXCLUDED.booking_info,
            photo = EXCLUDED.photo,
            reviews = EXCLUDED.reviews,
            updated_at = EXCLUDED.updated_at;
    `

// Upsert inserts or overwrites a notary keyed by place_id. The email and
// featured columns are owned by the application and left untouched, and
// created_at keeps the value from the first ingestion of that place.
func (r *PGXNotariesRepository) Upsert(ctx context.Context, notary *entity.Notary) error {
	if notary == nil {
		return fmt.Errorf("notary payload is nil")
	}
	if notary.PlaceID == "" {
		return fmt.Errorf("notary place_id must not be empty")
	}

	hours := notary.BusinessHours
	if len(hours) == 0 {
		hours = json.RawMessage("{}")
	}
	serviceTypes, err := json.Marshal(notary.ServiceTypes)
	if err != nil {
		return fmt.Errorf("marshal service types: %w", err)
	}
	diversity, err := json.Marshal(notary.DiversityIndicators)
	if err != nil {
		return fmt.Errorf("marshal diversity indicators: %w", err)
	}
	booking, err := json.Marshal(notary.BookingInfo)
	if err != nil {
		return fmt.Errorf("marshal booking info: %w", err)
	}
	var photo any
	if notary.Photo != nil {
		raw, err := json.Marshal(notary.Photo)
		if err != nil {
			return fmt.Errorf("marshal photo: %w", err)
		}
		photo = raw
	}
	reviews, err := jsonOrDefault(notary.Reviews, "[]")
	if err != nil {
		return fmt.Errorf("marshal reviews: %w", err)
	}

	_, err = r.pool.Exec(ctx, upsertNotarySQL,
		notary.PlaceID,
		notary.Name,
		notary.Address,
		notary.City,
		notary.State,
		notary.Latitude,
		notary.Longitude,
		notary.Rating,
		notary.ReviewCount,
		stringOrNil(notary.Phone),
		stringOrNil(notary.Website),
		stringOrNil(notary.BusinessType),
		stringSliceOrEmpty(notary.Services),
		notary.IsAvailableNow,
		[]byte(hours),
		serviceTypes,
		diversity,
		booking,
		photo,
		reviews,
		notary.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert notary %s: %w", notary.PlaceID, err)
	}
	return nil
}

// GetByID fetches a notary by its identifier.
func (r *PGXNotariesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notary, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+notaryColumns+` FROM notaries WHERE id = $1`, id)

	notary, err := scanNotary(row, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotaryNotFound
		}
		return nil, fmt.Errorf("query notary by id: %w", err)
	}
	return notary, nil
}

// SearchTier1 calls search_tier1_notaries, which filters by great circle
// distance in miles and rating floor and orders by distance then rating.
func (r *PGXNotariesRepository) SearchTier1(ctx context.Context, params SearchParams) ([]entity.Notary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+notaryColumns+`, distance FROM search_tier1_notaries($1, $2, $3, $4, $5, $6)`,
		params.Latitude,
		params.Longitude,
		params.RadiusMiles,
		params.Limit,
		params.MinRating,
		params.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("search tier1 notaries: %w", err)
	}
	defer rows.Close()

	notaries := make([]entity.Notary, 0)
	for rows.Next() {
		notary, err := scanNotary(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan notary row: %w", err)
		}
		notaries = append(notaries, *notary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notaries: %w", err)
	}
	return notaries, nil
}

func scanNotary(row pgx.Row, withDistance bool) (*entity.Notary, error) {
	var (
		n            entity.Notary
		email        sql.NullString
		phone        sql.NullString
		website      sql.NullString
		businessType sql.NullString
		hours        []byte
		serviceTypes []byte
		diversity    []byte
		booking      []byte
		photo        []byte
		reviews      []byte
		distance     sql.NullFloat64
	)

	dest := []any{
		&n.ID,
		&n.PlaceID,
		&n.Name,
		&email,
		&n.Address,
		&n.City,
		&n.State,
		&n.Latitude,
		&n.Longitude,
		&n.Rating,
		&n.ReviewCount,
		&phone,
		&website,
		&businessType,
		&n.Services,
		&n.IsAvailableNow,
		&hours,
		&serviceTypes,
		&diversity,
		&booking,
		&photo,
		&reviews,
		&n.Featured,
		&n.CreatedAt,
		&n.UpdatedAt,
	}
	if withDistance {
		dest = append(dest, &distance)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	n.Email = nullStringToPtr(email)
	n.Phone = nullStringToPtr(phone)
	n.Website = nullStringToPtr(website)
	n.BusinessType = nullStringToPtr(businessType)
	if distance.Valid {
		d := distance.Float64
		n.Distance = &d
	}

	n.BusinessHours = json.RawMessage("{}")
	if len(hours) > 0 {
		n.BusinessHours = json.RawMessage(hours)
	}
	if err := unmarshalIfPresent(serviceTypes, &n.ServiceTypes); err != nil {
		return nil, fmt.Errorf("decode service_types: %w", err)
	}
	if err := unmarshalIfPresent(diversity, &n.DiversityIndicators); err != nil {
		return nil, fmt.Errorf("decode diversity_indicators: %w", err)
	}
	if err := unmarshalIfPresent(booking, &n.BookingInfo); err != nil {
		return nil, fmt.Errorf("decode booking_info: %w", err)
	}
	if len(photo) > 0 && string(photo) != "null" {
		var p entity.Photo
		if err := json.Unmarshal(photo, &p); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		n.Photo = &p
	}
	if err := unmarshalIfPresent(reviews, &n.Reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	if n.Reviews == nil {
		n.Reviews = []entity.Review{}
	}
	n.Services = stringSliceOrEmpty(n.Services)

	return &n, nil
}

func unmarshalIfPresent(raw []byte, dest any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

var _ NotariesRepository = (*PGXNotariesRepository)(nil)
