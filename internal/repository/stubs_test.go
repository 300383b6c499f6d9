package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	beginTxFunc  func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

func (s *stubPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	if s.beginTxFunc != nil {
		return s.beginTxFunc(ctx, txOptions)
	}
	return nil, errors.New("begin tx not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

type stubRows struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (s *stubRows) Close() {}

func (s *stubRows) Err() error { return s.err }

func (s *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *stubRows) Next() bool {
	if s.err != nil {
		return false
	}
	if s.idx < len(s.scans) {
		s.idx++
		return true
	}
	return false
}

func (s *stubRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.scans) {
		return errors.New("scan called out of order")
	}
	return s.scans[s.idx-1](dest...)
}

func (s *stubRows) Values() ([]any, error) { return nil, nil }

func (s *stubRows) RawValues() [][]byte { return nil }

func (s *stubRows) Conn() *pgx.Conn { return nil }

// stubTx embeds pgx.Tx so only the methods a test exercises need bodies.
type stubTx struct {
	pgx.Tx
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	committed    bool
	rolledBack   bool
}

func (s *stubTx) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return s.queryRowFunc(ctx, query, args...)
}

func (s *stubTx) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (s *stubTx) Commit(ctx context.Context) error {
	s.committed = true
	return nil
}

func (s *stubTx) Rollback(ctx context.Context) error {
	if !s.committed {
		s.rolledBack = true
	}
	return nil
}
