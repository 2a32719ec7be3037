package feed

import (
	"fmt"
	"testing"
	"time"
)

func episodesAt(n int) []Episode {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	episodes := make([]Episode, 0, n)
	// Reverse order so the selector has to sort.
	for i := n - 1; i >= 0; i-- {
		at := base.AddDate(0, 0, i)
		episodes = append(episodes, Episode{
			Filename:      fmt.Sprintf("ep%d", i),
			PublishedAt:   at,
			FormattedDate: formatDateKey(at),
		})
	}
	return episodes
}

func TestSelectBatchKeepsLatestTen(t *testing.T) {
	batch := SelectBatch(episodesAt(15), 10)

	if len(batch) != 10 {
		t.Fatalf("Expected 10 episodes, got %d", len(batch))
	}
	for i, episode := range batch {
		want := fmt.Sprintf("ep%d", i+5)
		if episode.Filename != want {
			t.Errorf("batch[%d] = %s, want %s", i, episode.Filename, want)
		}
	}
}

func TestSelectBatchFewerThanWindow(t *testing.T) {
	batch := SelectBatch(episodesAt(3), 10)

	if len(batch) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(batch))
	}
	if batch[0].Filename != "ep0" || batch[2].Filename != "ep2" {
		t.Errorf("Expected ascending order, got %s..%s", batch[0].Filename, batch[2].Filename)
	}
}

func TestSelectBatchEmpty(t *testing.T) {
	if batch := SelectBatch(nil, 10); len(batch) != 0 {
		t.Errorf("Expected empty batch, got %d", len(batch))
	}
}

func TestSelectBatchDefaultSize(t *testing.T) {
	if batch := SelectBatch(episodesAt(12), 0); len(batch) != DefaultBatchSize {
		t.Errorf("Expected %d episodes, got %d", DefaultBatchSize, len(batch))
	}
}

func TestSelectBatchUnparseableDatesSortFirst(t *testing.T) {
	episodes := append(episodesAt(10), Episode{Filename: "undated"})

	batch := SelectBatch(episodes, 10)
	for _, episode := range batch {
		if episode.Filename == "undated" {
			t.Error("Expected undated episode to fall outside the window")
		}
	}
}

func TestSelectBatchDoesNotModifyInput(t *testing.T) {
	episodes := episodesAt(5)
	first := episodes[0].Filename

	SelectBatch(episodes, 10)

	if episodes[0].Filename != first {
		t.Errorf("Expected input order to be preserved, got %s first", episodes[0].Filename)
	}
}
