package database

import (
	"context"
	"fmt"
)

type ReferenceRepository struct {
	db Querier
}

func NewReferenceRepository(db Querier) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// LoadReferenceMaps reads the full author and series tables. Either read
// failing fails the whole load.
func (r *ReferenceRepository) LoadReferenceMaps(ctx context.Context) (*ReferenceMaps, error) {
	authors, err := r.LoadAuthors(ctx)
	if err != nil {
		return nil, err
	}

	series, err := r.LoadSeries(ctx)
	if err != nil {
		return nil, err
	}

	return NewReferenceMaps(authors, series), nil
}

func (r *ReferenceRepository) LoadAuthors(ctx context.Context) ([]Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM author`)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var author Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}

	return authors, nil
}

func (r *ReferenceRepository) LoadSeries(ctx context.Context) ([]Series, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title FROM series`)
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	defer rows.Close()

	var series []Series
	for rows.Next() {
		var s Series
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		series = append(series, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series rows: %w", err)
	}

	return series, nil
}
