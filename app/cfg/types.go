package cfg

import "time"

type Cfg struct {
	// Database configuration
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	Migrate    bool

	// Feed configuration
	FeedsDir      string
	FeedURLs      []string
	ShowTitle     string
	PrimaryAuthor string

	// Scheduling
	Schedule      string
	RunOnStart    bool
	TaskTimeout   time.Duration
	FetchInterval time.Duration

	// HTTP configuration
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
