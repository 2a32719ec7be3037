package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNoItemInserted is returned when the item insert reports no generated id.
var ErrNoItemInserted = errors.New("item insert returned no row")

type ItemRepository struct {
	db Querier
}

func NewItemRepository(db Querier) *ItemRepository {
	return &ItemRepository{db: db}
}

// ItemExists reports whether an item with the given dedup key is stored.
func (r *ItemRepository) ItemExists(ctx context.Context, filename, date string) (bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM item
		WHERE filename = $1 AND pub_date = $2
		LIMIT 1
	`, filename, date).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing item: %w", err)
	}

	return true, nil
}

// CreateItem inserts the item and its series link in one transaction and
// returns the new item id. An already existing link is left as is.
func (r *ItemRepository) CreateItem(ctx context.Context, item NewItem, seriesID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO item (
			title, description, duration, url, date, pub_date,
			author_id, filename, url_type, co_authors
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, item.Title, item.Description, item.Duration, item.URL, item.Date, item.Date,
		item.AuthorID, item.Filename, item.URLType, item.CoAuthors).Scan(&itemID)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoItemInserted
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", describe(err))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO series_item (series_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_series_and_item DO NOTHING
	`, seriesID, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to link item to series: %w", describe(err))
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit item: %w", err)
	}

	return itemID, nil
}

// describe adds the Postgres error code and constraint to driver errors.
func describe(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Constraint != "" {
		return fmt.Errorf("%w (code %s, constraint %s)", err, pqErr.Code, pqErr.Constraint)
	}
	return fmt.Errorf("%w (code %s)", err, pqErr.Code)
}
