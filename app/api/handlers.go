package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/episode-sync/app/feed"
	"github.com/lysyi3m/episode-sync/app/tasks"
)

func NewHandler(configCache *feed.ConfigCache, scheduler tasks.TaskSchedulerInterface, db Pinger, version string) *Handler {
	return &Handler{
		configCache: configCache,
		scheduler:   scheduler,
		db:          db,
		version:     version,
	}
}

func (h *Handler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "Episode Sync",
		"version":     h.version,
		"description": "Podcast feed normalization and episode sync",
		"endpoints": gin.H{
			"health": "/health",
			"feeds":  "/api/feeds (requires X-API-Key header)",
			"sync":   "/api/sync (POST, requires X-API-Key header)",
			"feed":   "/api/feeds/<name>/sync (POST, requires X-API-Key header)",
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp":             time.Now().In(time.Local).Format(time.RFC3339),
		"loaded_configurations": h.configCache.GetConfigCount(),
		"database":              "ok",
	}

	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		slog.Error("Database ping failed", "error", err)
		health["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, health)
}

func (h *Handler) APIListFeeds(c *gin.Context) {
	lastRuns := make(map[string]tasks.RunRecord)
	for _, record := range h.scheduler.LastRuns() {
		lastRuns[record.FeedName] = record
	}

	configs := h.configCache.GetConfigs()
	feeds := make([]gin.H, 0, len(configs))

	for _, feedConfig := range configs {
		feedInfo := gin.H{
			"name":       feedConfig.Name,
			"url":        feedConfig.URL,
			"enabled":    feedConfig.Settings.Enabled,
			"batch_size": feedConfig.Settings.BatchSize,
			"timeout":    (time.Duration(feedConfig.Settings.Timeout) * time.Second).String(),
		}

		if record, ok := lastRuns[feedConfig.Name]; ok {
			feedInfo["last_run"] = gin.H{
				"started_at": record.StartedAt,
				"ago":        humanize.Time(record.StartedAt),
				"duration":   record.Duration.String(),
				"inserted":   record.Inserted,
				"skipped":    record.Skipped,
				"failed":     record.Failed,
				"error":      record.Error,
			}
		}

		feeds = append(feeds, feedInfo)
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": feeds,
		"count": len(feeds),
	})
}

func (h *Handler) APISyncAll(c *gin.Context) {
	queued := h.scheduler.EnqueueAll()

	c.JSON(http.StatusAccepted, gin.H{
		"queued": queued,
	})
}

func (h *Handler) APISyncFeed(c *gin.Context) {
	name := c.Param("name")

	if _, err := h.configCache.GetConfig(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found", "feed": name})
		return
	}

	err := h.scheduler.EnqueueFeed(name)
	if errors.Is(err, tasks.ErrAlreadyQueued) {
		c.JSON(http.StatusConflict, gin.H{"error": "Feed already queued", "feed": name})
		return
	}
	if err != nil {
		slog.Error("Failed to enqueue sync", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue sync", "feed": name})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": 1, "feed": name})
}
