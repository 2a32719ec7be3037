package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

// NewConnection opens a Postgres pool. A non-empty url takes precedence over
// the individual connection fields.
func NewConnection(url, host, port, user, password, name, sslMode string) (*DB, error) {
	dsn := url
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, name, sslMode)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Connect checks a single connection out of the pool. The returned session
// shares it between the reference load and every item write of one pass.
func (db *DB) Connect(ctx context.Context) (Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return &session{
		conn:                conn,
		ReferenceRepository: NewReferenceRepository(conn),
		ItemRepository:      NewItemRepository(conn),
	}, nil
}

type session struct {
	conn *sql.Conn
	*ReferenceRepository
	*ItemRepository
}

func (s *session) Close() error {
	return s.conn.Close()
}
