package database

import (
	"context"
	"database/sql"
)

// Querier is satisfied by *sql.DB and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ReferenceLoader interface {
	LoadReferenceMaps(ctx context.Context) (*ReferenceMaps, error)
}

type ItemStore interface {
	ItemExists(ctx context.Context, filename, date string) (bool, error)
	CreateItem(ctx context.Context, item NewItem, seriesID int64) (int64, error)
}

type Session interface {
	ReferenceLoader
	ItemStore
	Close() error
}

type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

var (
	_ Connector = (*DB)(nil)
	_ Session   = (*session)(nil)
)
