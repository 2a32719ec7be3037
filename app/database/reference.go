package database

// Series reachable under a second title. Rows carrying the alias as their
// real title take precedence.
var seriesAliases = map[string]string{
	"Back to Basics Radio": "Back to Basics",
}

// ReferenceMaps is a read-only snapshot of author and series ids for one
// sync pass.
type ReferenceMaps struct {
	authors map[string]int64
	series  map[string]int64
}

func NewReferenceMaps(authors []Author, series []Series) *ReferenceMaps {
	m := &ReferenceMaps{
		authors: make(map[string]int64, len(authors)),
		series:  make(map[string]int64, len(series)+len(seriesAliases)),
	}

	for _, a := range authors {
		m.authors[a.Name] = a.ID
	}

	for _, s := range series {
		m.series[s.Title] = s.ID
	}
	for _, s := range series {
		alias, ok := seriesAliases[s.Title]
		if !ok {
			continue
		}
		if _, taken := m.series[alias]; !taken {
			m.series[alias] = s.ID
		}
	}

	return m
}

func (m *ReferenceMaps) AuthorID(name string) (int64, bool) {
	id, ok := m.authors[name]
	return id, ok
}

func (m *ReferenceMaps) SeriesID(title string) (int64, bool) {
	id, ok := m.series[title]
	return id, ok
}

func (m *ReferenceMaps) AuthorCount() int {
	return len(m.authors)
}

func (m *ReferenceMaps) SeriesCount() int {
	return len(m.series)
}
