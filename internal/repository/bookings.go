package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// ErrBookingNotFound indicates no booking matches the identifier.
var ErrBookingNotFound = errors.New("booking not found")

// BookingsRepository describes persistence operations for bookings.
type BookingsRepository interface {
	Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error)
}

// BookingFilter narrows a booking listing; empty fields are ignored.
type BookingFilter struct {
	NotaryID    *uuid.UUID
	ClientEmail string
}

// PGXBookingsRepository implements BookingsRepository using pgx.
type PGXBookingsRepository struct {
	pool pgxPool
}

// NewPGXBookingsRepository wires a pgx backed repository.
func NewPGXBookingsRepository(pool *pgxpool.Pool) *PGXBookingsRepository {
	return &PGXBookingsRepository{pool: pool}
}

const bookingColumns = `id, notary_id, client_name, client_email, client_phone, date, time, service, location, notes, status, created_at, updated_at`

// Create inserts a booking and returns the stored row.
func (r *PGXBookingsRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("booking payload is nil")
	}
	status := booking.Status
	if status == "" {
		status = entity.BookingPending
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO bookings (notary_id, client_name, client_email, client_phone, date, time, service, location, notes, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING `+bookingColumns,
		booking.NotaryID,
		booking.ClientName,
		booking.ClientEmail,
		stringOrNil(booking.ClientPhone),
		booking.Date,
		booking.Time,
		booking.Service,
		booking.Location,
		stringOrNil(booking.Notes),
		string(status),
	)

	stored, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return stored, nil
}

// List returns bookings matching filter, newest first.
func (r *PGXBookingsRepository) List(ctx context.Context, filter BookingFilter) ([]entity.Booking, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.NotaryID != nil {
		clauses = append(clauses, fmt.Sprintf("notary_id = $%d", idx))
		args = append(args, *filter.NotaryID)
		idx++
	}
	if filter.ClientEmail != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(client_email) = LOWER($%d)", idx))
		args = append(args, filter.ClientEmail)
		idx++
	}

	query := strings.Builder{}
	query.WriteString("SELECT " + bookingColumns + " FROM bookings")
	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]entity.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets the status of a booking.
func (r *PGXBookingsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*entity.Booking, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE bookings SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING `+bookingColumns, string(status), id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var (
		b      entity.Booking
		phone  sql.NullString
		notes  sql.NullString
		status string
	)
	if err := row.Scan(
		&b.ID,
		&b.NotaryID,
		&b.ClientName,
		&b.ClientEmail,
		&phone,
		&b.Date,
		&b.Time,
		&b.Service,
		&b.Location,
		&notes,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.ClientPhone = nullStringToPtr(phone)
	b.Notes = nullStringToPtr(notes)
	b.Status = entity.BookingStatus(status)
	return &b, nil
}

var _ BookingsRepository = (*PGXBookingsRepository)(nil)
