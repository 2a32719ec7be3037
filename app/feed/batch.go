package feed

import (
	"sort"
)

const DefaultBatchSize = 10

// SelectBatch orders episodes by publish time and returns the size most
// recent ones, oldest first. Episodes with an unparseable date sort as the
// oldest. The input slice is not modified.
func SelectBatch(episodes []Episode, size int) []Episode {
	if size <= 0 {
		size = DefaultBatchSize
	}

	sorted := make([]Episode, len(episodes))
	copy(sorted, episodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	if len(sorted) > size {
		sorted = sorted[len(sorted)-size:]
	}
	return sorted
}
