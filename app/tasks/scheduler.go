package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/lysyi3m/episode-sync/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

var ErrAlreadyQueued = errors.New("feed already queued")

const DefaultTaskTimeout = 5 * time.Minute

// RunRecord is the outcome of the most recent pass of one feed.
type RunRecord struct {
	FeedName  string
	TaskID    string
	StartedAt time.Time
	Duration  time.Duration
	Inserted  int
	Skipped   int
	Failed    int
	Error     string
}

// Scheduler runs sync passes one at a time on a single worker. The cron
// schedule enqueues every enabled feed; the API can enqueue more.
type Scheduler struct {
	configCache *feed.ConfigCache
	deps        SyncDeps
	schedule    string
	taskTimeout time.Duration
	cron        *gocron.Scheduler
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	mu       sync.Mutex
	pending  map[string]bool
	lastRuns map[string]RunRecord
}

func NewScheduler(configCache *feed.ConfigCache, deps SyncDeps, schedule string, taskTimeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}

	return &Scheduler{
		configCache: configCache,
		deps:        deps,
		schedule:    schedule,
		taskTimeout: taskTimeout,
		cron:        gocron.NewScheduler(time.UTC),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
		pending:     make(map[string]bool),
		lastRuns:    make(map[string]RunRecord),
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.Cron(s.schedule).SingletonMode().Do(func() {
		slog.Info("Running scheduled sync", "date", time.Now().UTC().Format(time.DateOnly))
		s.EnqueueAll()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job %q: %w", s.schedule, err)
	}

	s.wg.Add(1)
	go s.worker()

	s.cron.StartAsync()
	slog.Info("Scheduler started", "schedule", s.schedule)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[task.GetFeedName()] {
		return ErrAlreadyQueued
	}

	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		s.pending[task.GetFeedName()] = true
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) EnqueueFeed(feedName string) error {
	feedConfig, err := s.configCache.GetConfig(feedName)
	if err != nil {
		return err
	}
	return s.EnqueueTask(NewSyncFeedTask(feedConfig, s.deps))
}

// EnqueueAll queues a pass for every enabled feed in configuration order and
// returns how many were queued.
func (s *Scheduler) EnqueueAll() int {
	feedConfigs := s.configCache.GetEnabledConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No enabled feed configurations found")
		return 0
	}

	queued := 0
	for _, feedConfig := range feedConfigs {
		err := s.EnqueueTask(NewSyncFeedTask(feedConfig, s.deps))
		if errors.Is(err, ErrAlreadyQueued) {
			slog.Debug("Feed already queued, skipping", "feed", feedConfig.Name)
			continue
		}
		if err != nil {
			slog.Warn("Failed to enqueue SyncFeedTask", "feed", feedConfig.Name, "error", err)
			continue
		}
		queued++
	}
	return queued
}

// LastRuns returns the most recent run of each feed in configuration order.
func (s *Scheduler) LastRuns() []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []RunRecord
	for _, feedConfig := range s.configCache.GetConfigs() {
		if record, ok := s.lastRuns[feedConfig.Name]; ok {
			records = append(records, record)
		}
	}
	return records
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, s.taskTimeout)
	defer cancel()

	err := task.Execute(taskCtx)
	if err != nil {
		slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedName(), "error", err)
	}

	s.record(task, err)
}

func (s *Scheduler) record(task TaskInterface, err error) {
	record := RunRecord{
		FeedName: task.GetFeedName(),
		TaskID:   task.GetID(),
		Duration: task.GetDuration(),
	}
	if startedAt := task.GetStartedAt(); startedAt != nil {
		record.StartedAt = *startedAt
	}
	if err != nil {
		record.Error = err.Error()
	}
	if syncTask, ok := task.(*SyncFeedTask); ok {
		if summary := syncTask.Summary(); summary != nil {
			record.Inserted = summary.Inserted
			record.Skipped = summary.Skipped
			record.Failed = summary.Failed
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, task.GetFeedName())
	s.lastRuns[task.GetFeedName()] = record
}
