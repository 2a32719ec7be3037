package database

import (
	"testing"
)

func TestReferenceMapsLookups(t *testing.T) {
	refs := NewReferenceMaps(
		[]Author{{ID: 1, Name: "Cheryl Brodersen"}, {ID: 2, Name: "J. Smith"}},
		[]Series{{ID: 10, Title: "Women Worth Knowing"}, {ID: 11, Title: "Daily Bread"}},
	)

	if id, ok := refs.AuthorID("J. Smith"); !ok || id != 2 {
		t.Errorf("Expected author id 2, got %d (found=%v)", id, ok)
	}
	if _, ok := refs.AuthorID("j. smith"); ok {
		t.Error("Expected author lookup to be case sensitive")
	}
	if id, ok := refs.SeriesID("Daily Bread"); !ok || id != 11 {
		t.Errorf("Expected series id 11, got %d (found=%v)", id, ok)
	}
	if _, ok := refs.SeriesID("Unknown"); ok {
		t.Error("Expected unknown series to be missing")
	}
	if refs.AuthorCount() != 2 {
		t.Errorf("Expected 2 authors, got %d", refs.AuthorCount())
	}
}

func TestReferenceMapsSeriesAlias(t *testing.T) {
	refs := NewReferenceMaps(nil, []Series{{ID: 7, Title: "Back to Basics Radio"}})

	for _, title := range []string{"Back to Basics Radio", "Back to Basics"} {
		if id, ok := refs.SeriesID(title); !ok || id != 7 {
			t.Errorf("SeriesID(%q) = %d (found=%v), want 7", title, id, ok)
		}
	}
	if refs.SeriesCount() != 2 {
		t.Errorf("Expected 2 series keys, got %d", refs.SeriesCount())
	}
}

func TestReferenceMapsRealTitleBeatsAlias(t *testing.T) {
	refs := NewReferenceMaps(nil, []Series{
		{ID: 7, Title: "Back to Basics Radio"},
		{ID: 8, Title: "Back to Basics"},
	})

	if id, _ := refs.SeriesID("Back to Basics"); id != 8 {
		t.Errorf("Expected the real 'Back to Basics' row (8), got %d", id)
	}

	reversed := NewReferenceMaps(nil, []Series{
		{ID: 8, Title: "Back to Basics"},
		{ID: 7, Title: "Back to Basics Radio"},
	})
	if id, _ := reversed.SeriesID("Back to Basics"); id != 8 {
		t.Errorf("Expected the real 'Back to Basics' row (8) regardless of order, got %d", id)
	}
}
