package tasks

import (
	"context"
	"time"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to run sync passes.
// Example usage:
//
//	scheduler := NewScheduler(configCache, deps, "* * * * *", 5*time.Minute)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueFeed("women-worth-knowing")
type TaskSchedulerInterface interface {
	Start() error
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueFeed(feedName string) error
	EnqueueAll() int
	LastRuns() []RunRecord
}

// FeedFetcher returns the raw feed document at url.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}
