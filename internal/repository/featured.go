package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// ErrFeaturedRequestNotFound indicates no featured request matches the identifier.
var ErrFeaturedRequestNotFound = errors.New("featured request not found")

// FeaturedRequestsRepository describes persistence operations for featured placement requests.
type FeaturedRequestsRepository interface {
	Create(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error)
	List(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error)
}

// PGXFeaturedRequestsRepository implements FeaturedRequestsRepository using pgx.
type PGXFeaturedRequestsRepository struct {
	pool pgxPool
}

// NewPGXFeaturedRequestsRepository wires a pgx backed repository.
func NewPGXFeaturedRequestsRepository(pool *pgxpool.Pool) *PGXFeaturedRequestsRepository {
	return &PGXFeaturedRequestsRepository{pool: pool}
}

const featuredColumns = `id, notary_id, requester_id, requester_email, requester_phone, message, status, created_at`

// Create stores a new request in the pending state.
func (r *PGXFeaturedRequestsRepository) Create(ctx context.Context, req *entity.FeaturedRequest) (*entity.FeaturedRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("featured request payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO featured_requests (notary_id, requester_id, requester_email, requester_phone, message, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+featuredColumns,
		req.NotaryID,
		req.RequesterID,
		req.RequesterEmail,
		stringOrNil(req.RequesterPhone),
		stringOrNil(req.Message),
		string(entity.FeaturedPending),
	)

	stored, err := scanFeaturedRequest(row)
	if err != nil {
		return nil, fmt.Errorf("insert featured request: %w", err)
	}
	return stored, nil
}

// List returns requests, optionally restricted to one status, oldest first.
func (r *PGXFeaturedRequestsRepository) List(ctx context.Context, status *entity.FeaturedRequestStatus) ([]entity.FeaturedRequest, error) {
	query := `SELECT ` + featuredColumns + ` FROM featured_requests`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list featured requests: %w", err)
	}
	defer rows.Close()

	requests := make([]entity.FeaturedRequest, 0)
	for rows.Next() {
		fr, err := scanFeaturedRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan featured request row: %w", err)
		}
		requests = append(requests, *fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate featured requests: %w", err)
	}
	return requests, nil
}

// clearFeaturedSQL unfeatures a notary once none of its requests is approved.
const clearFeaturedSQL = `
        UPDATE notaries SET featured = FALSE, updated_at = NOW()
        WHERE id = $1 AND featured
          AND NOT EXISTS (SELECT 1 FROM featured_requests WHERE notary_id = $1 AND status = 'approved')`

// UpdateStatus records a review decision in one transaction. Approving a
// request marks the notary featured; rejecting or reopening one clears the
// flag unless another approved request remains for that notary.
func (r *PGXFeaturedRequestsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FeaturedRequestStatus) (*entity.FeaturedRequest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("start featured review tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
        UPDATE featured_requests SET status = $1
        WHERE id = $2
        RETURNING `+featuredColumns, string(status), id)

	fr, err := scanFeaturedRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeaturedRequestNotFound
		}
		return nil, fmt.Errorf("update featured request: %w", err)
	}

	if status == entity.FeaturedApproved {
		if _, err := tx.Exec(ctx, `UPDATE notaries SET featured = TRUE, updated_at = NOW() WHERE id = $1`, fr.NotaryID); err != nil {
			return nil, fmt.Errorf("mark notary featured: %w", err)
		}
	} else {
		if _, err := tx.Exec(ctx, clearFeaturedSQL, fr.NotaryID); err != nil {
			return nil, fmt.Errorf("clear notary featured: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit featured review tx: %w", err)
	}
	return fr, nil
}

func scanFeaturedRequest(row pgx.Row) (*entity.FeaturedRequest, error) {
	var (
		fr      entity.FeaturedRequest
		phone   sql.NullString
		message sql.NullString
		status  string
	)
	if err := row.Scan(&fr.ID, &fr.NotaryID, &fr.RequesterID, &fr.RequesterEmail, &phone, &message, &status, &fr.CreatedAt); err != nil {
		return nil, err
	}
	fr.RequesterPhone = nullStringToPtr(phone)
	fr.Message = nullStringToPtr(message)
	fr.Status = entity.FeaturedRequestStatus(status)
	return &fr, nil
}

var _ FeaturedRequestsRepository = (*PGXFeaturedRequestsRepository)(nil)
