package docstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxQuerier is the subset of *pgxpool.Pool the Postgres backend uses
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBackend keeps documents as rows of the documents table.
// The table is created by the documents migration.
type PostgresBackend struct {
	db PgxQuerier
}

func NewPostgresBackend(db PgxQuerier) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := b.db.QueryRow(ctx, `SELECT body::text FROM documents WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return body, err
}

func (b *PostgresBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		name, string(data))
	return err
}
