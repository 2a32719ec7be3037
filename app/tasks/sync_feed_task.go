package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/episode-sync/app/database"
	"github.com/lysyi3m/episode-sync/app/feed"
	"github.com/lysyi3m/episode-sync/app/syncer"
)

// SyncDeps are the collaborators shared by every sync pass.
type SyncDeps struct {
	Fetcher   FeedFetcher
	Parser    *feed.Parser
	Rules     feed.DialectRules
	Connector database.Connector
}

type SyncFeedTask struct {
	Task
	FeedConfig *feed.Config
	deps       SyncDeps
	summary    *syncer.Summary
}

func NewSyncFeedTask(feedConfig *feed.Config, deps SyncDeps) *SyncFeedTask {
	return &SyncFeedTask{
		Task:       NewTask(TaskTypeSyncFeed, feedConfig.Name),
		FeedConfig: feedConfig,
		deps:       deps,
	}
}

// Summary returns the engine summary of the last Execute, or nil if the pass
// ended before the engine ran.
func (t *SyncFeedTask) Summary() *syncer.Summary {
	return t.summary
}

func (t *SyncFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	timeout := time.Duration(t.FeedConfig.Settings.Timeout) * time.Second
	data, err := t.deps.Fetcher.Fetch(ctx, t.FeedConfig.URL, timeout)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	channel, rawItems, err := t.deps.Parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	dialect := t.deps.Rules.Select(channel.Title)
	slog.Info("Processing items",
		"feed", t.FeedName,
		"title", channel.Title,
		"link", channel.Link,
		"language", channel.Language,
		"dialect", dialect.Name(),
		"items", len(rawItems))
	slog.Debug("Channel description", "feed", t.FeedName, "description", channel.Description)

	episodes := feed.Normalize(dialect, rawItems)
	batch := feed.SelectBatch(episodes, t.FeedConfig.Settings.BatchSize)
	if len(batch) == 0 {
		slog.Info("No items to parse", "feed", t.FeedName)
		return nil
	}

	session, err := t.deps.Connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer session.Close()

	refs, err := session.LoadReferenceMaps(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	slog.Debug("Reference data loaded", "feed", t.FeedName, "authors", refs.AuthorCount(), "series", refs.SeriesCount())

	summary, err := syncer.NewEngine(session).Run(ctx, syncer.Pass{
		ChannelTitle: channel.Title,
		Dialect:      dialect,
		Episodes:     batch,
		References:   refs,
	})
	t.summary = summary
	if err != nil {
		return fmt.Errorf("failed to sync episodes: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", len(batch),
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"new", summary.Inserted)

	return nil
}
