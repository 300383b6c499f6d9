package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// ErrUserNotFound is returned when no user matches the lookup criteria.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailDuplicate = errors.New("email already exists")
)

// UsersRepository declares operations on admin accounts.
type UsersRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// PGXUsersRepository implements UsersRepository with pgx.
type PGXUsersRepository struct {
	pool pgxPool
}

// NewPGXUsersRepository instantiates a users repository.
func NewPGXUsersRepository(pool *pgxpool.Pool) *PGXUsersRepository {
	return &PGXUsersRepository{pool: pool}
}

// FindByEmail fetches a user by email if present.
func (r *PGXUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`, email)

	var user entity.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}

	return &user, nil
}

// Create inserts a new user row.
func (r *PGXUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO users (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, email, password_hash, role, created_at, updated_at
    `, email, passwordHash, role)

	var user entity.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Message, "users_email_key") {
			return nil, fmt.Errorf("%w: %v", ErrEmailDuplicate, pgErr)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// List returns all users ordered by creation date (desc).
func (r *PGXUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

var _ UsersRepository = (*PGXUsersRepository)(nil)
