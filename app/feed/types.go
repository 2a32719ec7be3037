package feed

import (
	"time"
)

// Feed processing types

type Channel struct {
	Title       string
	Link        string
	Description string
	Language    string
}

type RawItem struct {
	Title        string
	Author       string
	Description  string
	Duration     string
	PubDate      string
	GUID         string
	EnclosureURL string
	HasEnclosure bool
}

type Episode struct {
	Title           string
	Author          string
	Description     string
	URL             string
	Duration        string
	DurationSeconds Seconds
	URLType         string
	Filename        string
	PubDate         string
	PublishedAt     time.Time // zero when PubDate could not be parsed
	FormattedDate   DateKey
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension) or from the URL for env feeds
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled   bool `yaml:"enabled"`
	Timeout   int  `yaml:"timeout"`    // seconds
	BatchSize int  `yaml:"batch_size"` // most recent episodes considered per run
}
