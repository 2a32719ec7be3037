package feed

import (
	"strings"
)

// Used for the URL type when a dialect's source URL is missing.
const fallbackURLType = "mp3"

func Normalize(dialect Dialect, items []RawItem) []Episode {
	episodes := make([]Episode, 0, len(items))
	for _, item := range items {
		episodes = append(episodes, NormalizeItem(dialect, item))
	}
	return episodes
}

func NormalizeItem(dialect Dialect, item RawItem) Episode {
	episode := Episode{
		Title:           strings.TrimSpace(item.Title),
		Author:          strings.TrimSpace(item.Author),
		Description:     strings.TrimSpace(item.Description),
		Duration:        item.Duration,
		DurationSeconds: ParseDurationSeconds(item.Duration),
		PubDate:         item.PubDate,
	}

	if source, ok := dialect.sourceURL(item); ok {
		episode.URL = UpgradeScheme(source)
		episode.URLType = ExtractExtension(episode.URL)
		episode.Filename = ExtractBasename(episode.URL)
	} else {
		episode.URLType = fallbackURLType
	}

	if published, err := ParsePubDate(item.PubDate); err == nil {
		episode.PublishedAt = published
		episode.FormattedDate = formatDateKey(published)
	}

	return episode
}
