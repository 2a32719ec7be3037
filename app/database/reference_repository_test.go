package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	authorsQuery = regexp.QuoteMeta(`SELECT id, name FROM author`)
	seriesQuery  = regexp.QuoteMeta(`SELECT id, title FROM series`)
)

func newMockReferenceRepository(t *testing.T) (*ReferenceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewReferenceRepository(db), mock
}

func TestLoadReferenceMaps(t *testing.T) {
	repo, mock := newMockReferenceRepository(t)

	mock.ExpectQuery(authorsQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Cheryl Brodersen").
		AddRow(2, "J. Smith"))
	mock.ExpectQuery(seriesQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
		AddRow(10, "Women Worth Knowing").
		AddRow(12, "Back to Basics Radio"))

	refs, err := repo.LoadReferenceMaps(context.Background())
	require.NoError(t, err)

	id, ok := refs.AuthorID("J. Smith")
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	id, ok = refs.SeriesID("Back to Basics")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	assert.Equal(t, 2, refs.AuthorCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReferenceMapsEmptyTables(t *testing.T) {
	repo, mock := newMockReferenceRepository(t)

	mock.ExpectQuery(authorsQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(seriesQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	refs, err := repo.LoadReferenceMaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, refs.AuthorCount())
	assert.Equal(t, 0, refs.SeriesCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReferenceMapsAuthorsError(t *testing.T) {
	repo, mock := newMockReferenceRepository(t)

	mock.ExpectQuery(authorsQuery).WillReturnError(errors.New(`relation "author" does not exist`))

	refs, err := repo.LoadReferenceMaps(context.Background())
	require.Error(t, err)
	assert.Nil(t, refs)
	assert.Contains(t, err.Error(), "failed to get authors")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReferenceMapsSeriesError(t *testing.T) {
	repo, mock := newMockReferenceRepository(t)

	mock.ExpectQuery(authorsQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Cheryl Brodersen"))
	mock.ExpectQuery(seriesQuery).WillReturnError(errors.New("connection reset"))

	refs, err := repo.LoadReferenceMaps(context.Background())
	require.Error(t, err)
	assert.Nil(t, refs)
	assert.Contains(t, err.Error(), "failed to get series")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReferenceMapsRowError(t *testing.T) {
	repo, mock := newMockReferenceRepository(t)

	mock.ExpectQuery(authorsQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Cheryl Brodersen").
		AddRow(2, "J. Smith").
		RowError(1, errors.New("network interrupted")))

	_, err := repo.LoadReferenceMaps(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error iterating author rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}
