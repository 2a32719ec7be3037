package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBURL      string `long:"db-url" env:"DB_URL" description:"Postgres connection string; overrides the individual DB settings"`
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"episode_sync" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" description:"Database password"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"episodes" description:"Database name"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable" description:"Postgres sslmode"`
	Migrate    bool   `long:"migrate" env:"MIGRATE" description:"Apply schema migrations on startup"`

	// Feed configuration
	FeedsDir      string   `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed configuration files"`
	FeedURLs      []string `long:"feed-url" env:"XML_URLS" env-delim:"," description:"Feed URL to sync (repeatable)"`
	ShowTitle     string   `long:"show-title" env:"SHOW_TITLE" default:"Women Worth Knowing" description:"Channel title of the show whose feed uses enclosure URLs and co-authors"`
	PrimaryAuthor string   `long:"primary-author" env:"PRIMARY_AUTHOR" default:"Cheryl Brodersen" description:"Primary author of that show"`

	// Scheduling
	Schedule      string `long:"schedule" env:"SCHEDULE" default:"* * * * *" description:"Cron expression for sync runs"`
	RunOnStart    bool   `long:"run-on-start" env:"RUN_ON_START" description:"Queue a sync of every feed at startup"`
	TaskTimeout   int    `long:"task-timeout" env:"TASK_TIMEOUT" default:"300" description:"Maximum duration of one feed pass in seconds"`
	FetchInterval int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"1000" description:"Minimum delay between feed fetches in milliseconds"`

	// HTTP configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Episode Sync/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.DBURL == "" && raw.DBPassword == "" {
		return nil, fmt.Errorf("either DB_URL or DB_PASSWORD must be set")
	}

	cfg := &Cfg{
		DBURL:         raw.DBURL,
		DBHost:        raw.DBHost,
		DBPort:        raw.DBPort,
		DBUser:        raw.DBUser,
		DBPassword:    raw.DBPassword,
		DBName:        raw.DBName,
		DBSSLMode:     raw.DBSSLMode,
		Migrate:       raw.Migrate,
		FeedsDir:      raw.FeedsDir,
		FeedURLs:      raw.FeedURLs,
		ShowTitle:     raw.ShowTitle,
		PrimaryAuthor: raw.PrimaryAuthor,
		Schedule:      raw.Schedule,
		RunOnStart:    raw.RunOnStart,
		TaskTimeout:   time.Duration(raw.TaskTimeout) * time.Second,
		FetchInterval: time.Duration(raw.FetchInterval) * time.Millisecond,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
