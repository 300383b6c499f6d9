package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGXUsersRepository_FindByEmail(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
				created := time.Now()
				updated := created.Add(time.Minute)
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*string) = "user@example.com"
				*dest[2].(*string) = "hashed"
				*dest[3].(*string) = "admin"
				*dest[4].(*time.Time) = created
				*dest[5].(*time.Time) = updated
				return nil
			}}
		},
	}}

	user, err := repo.FindByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "user@example.com" || user.Role != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}
	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPGXUsersRepository_Create(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				id := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
				created := time.Now()
				updated := created
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*string) = "user@example.com"
				*dest[2].(*string) = "hashed"
				*dest[3].(*string) = "user"
				*dest[4].(*time.Time) = created
				*dest[5].(*time.Time) = updated
				return nil
			}}
		},
	}}

	user, err := repo.Create(context.Background(), "user@example.com", "hashed", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected created user, got %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
			}}
		},
	}
	if _, err := repo.Create(context.Background(), "user@example.com", "hashed", "admin"); !errors.Is(err, ErrEmailDuplicate) {
		t.Fatalf("expected ErrEmailDuplicate, got %v", err)
	}
}

func TestPGXUsersRepository_List(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
						created := time.Now()
						updated := created
						*dest[0].(*uuid.UUID) = id
						*dest[1].(*string) = "admin@example.com"
						*dest[2].(*string) = "hash"
						*dest[3].(*string) = "admin"
						*dest[4].(*time.Time) = created
						*dest[5].(*time.Time) = updated
						return nil
					},
				},
			}, nil
		},
	}}

	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "admin@example.com" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
