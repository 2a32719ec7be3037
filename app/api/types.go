package api

import (
	"github.com/lysyi3m/episode-sync/app/feed"
	"github.com/lysyi3m/episode-sync/app/tasks"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping() error
}

type Handler struct {
	configCache *feed.ConfigCache
	scheduler   tasks.TaskSchedulerInterface
	db          Pinger
	version     string
}
