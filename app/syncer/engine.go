// Package syncer writes a selected batch of normalized episodes to the store,
// one existence check and one insert transaction per episode.
package syncer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/episode-sync/app/database"
	"github.com/lysyi3m/episode-sync/app/feed"
)

var (
	ErrInvalidDate       = errors.New("publish date could not be parsed")
	ErrUnknownSeries     = errors.New("no series matches channel title")
	ErrMissingReferences = errors.New("pass has no reference maps")
)

type Outcome string

const (
	OutcomeSkipped  Outcome = "skipped"
	OutcomeInserted Outcome = "inserted"
	OutcomeFailed   Outcome = "failed"
)

// Pass is everything one feed contributes to a sync run. References is
// required.
type Pass struct {
	ChannelTitle string
	Dialect      feed.Dialect
	Episodes     []feed.Episode
	References   *database.ReferenceMaps
}

type Result struct {
	Filename string
	Title    string
	Outcome  Outcome
	ItemID   int64
	Err      error
}

type Summary struct {
	Results  []Result
	Inserted int
	Skipped  int
	Failed   int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeInserted:
		s.Inserted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

type Engine struct {
	items database.ItemStore
}

func NewEngine(items database.ItemStore) *Engine {
	return &Engine{items: items}
}

// Run processes the pass episodes in order. Write failures are recorded per
// episode and do not stop the batch; a failed existence check or a cancelled
// context does, and the summary so far is returned with the error.
func (e *Engine) Run(ctx context.Context, pass Pass) (*Summary, error) {
	summary := &Summary{}

	if pass.References == nil {
		return summary, ErrMissingReferences
	}

	seriesID, seriesFound := pass.References.SeriesID(pass.ChannelTitle)

	for _, episode := range pass.Episodes {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		result := Result{Filename: episode.Filename, Title: episode.Title}

		if !episode.FormattedDate.Valid {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("%w: %q", ErrInvalidDate, episode.PubDate)
			slog.Error("Could not write episode", "title", episode.Title, "filename", episode.Filename, "error", result.Err)
			summary.add(result)
			continue
		}

		exists, err := e.items.ItemExists(ctx, episode.Filename, episode.FormattedDate.Value)
		if err != nil {
			return summary, fmt.Errorf("failed to check episode %s: %w", episode.Filename, err)
		}

		if exists {
			slog.Debug("Episode exists, skipping", "filename", episode.Filename, "date", episode.FormattedDate.Value)
			result.Outcome = OutcomeSkipped
			summary.add(result)
			continue
		}

		slog.Info("Episode does not exist, adding it", "title", episode.Title, "filename", episode.Filename)

		if !seriesFound {
			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("%w: %q", ErrUnknownSeries, pass.ChannelTitle)
			slog.Error("Could not write episode", "title", episode.Title, "filename", episode.Filename, "error", result.Err)
			summary.add(result)
			continue
		}

		item := BuildItem(pass.Dialect, episode, pass.References)

		itemID, err := e.items.CreateItem(ctx, item, seriesID)
		if err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			slog.Error("Could not write episode", "title", episode.Title, "filename", episode.Filename, "error", err)
			summary.add(result)
			continue
		}

		slog.Info("Created series relation", "series", pass.ChannelTitle, "item_id", itemID)
		result.Outcome = OutcomeInserted
		result.ItemID = itemID
		summary.add(result)
	}

	return summary, nil
}

// BuildItem assembles the item columns for an episode. Authors missing from
// the reference maps leave author_id NULL.
func BuildItem(dialect feed.Dialect, episode feed.Episode, refs *database.ReferenceMaps) database.NewItem {
	authorship := dialect.Authorship(episode.Author)

	item := database.NewItem{
		Title:       episode.Title,
		Description: sql.NullString{String: episode.Description, Valid: episode.Description != ""},
		Duration:    sql.NullInt64{Int64: episode.DurationSeconds.Value, Valid: episode.DurationSeconds.Valid},
		URL:         episode.URL,
		Date:        episode.FormattedDate.Value,
		Filename:    episode.Filename,
		URLType:     episode.URLType,
		CoAuthors:   sql.NullString{String: authorship.CoAuthors, Valid: authorship.HasCoAuthors},
	}

	if id, ok := refs.AuthorID(authorship.LookupName); ok {
		item.AuthorID = sql.NullInt64{Int64: id, Valid: true}
	}

	return item
}
