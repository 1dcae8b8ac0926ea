package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repositorios funcionen con o sin transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner lo que TxRunner necesita del pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner es pgx.Row o pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
