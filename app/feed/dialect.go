package feed

import (
	"strings"
)

const (
	DefaultShowTitle     = "Women Worth Knowing"
	DefaultPrimaryAuthor = "Cheryl Brodersen"
)

// Dialect is the convention a source feed follows for the audio URL and
// for authorship. It is either EnclosureDialect or GUIDDialect.
type Dialect interface {
	Name() string
	Authorship(author string) Authorship
	sourceURL(item RawItem) (string, bool)
}

// Authorship is what a dialect extracts from an episode's author field.
// LookupName is resolved to author_id; CoAuthors is only set by dialects
// that record co-authors.
type Authorship struct {
	LookupName   string
	CoAuthors    string
	HasCoAuthors bool
}

// EnclosureDialect takes the audio URL from <enclosure url="..."> and treats
// the author field as a comma-separated list led by PrimaryAuthor.
type EnclosureDialect struct {
	PrimaryAuthor string
}

func (EnclosureDialect) Name() string { return "enclosure" }

func (d EnclosureDialect) sourceURL(item RawItem) (string, bool) {
	return item.EnclosureURL, item.HasEnclosure
}

func (d EnclosureDialect) Authorship(author string) Authorship {
	var coAuthors []string
	for _, name := range strings.Split(author, ",") {
		name = strings.TrimSpace(name)
		if name == "" || name == d.PrimaryAuthor {
			continue
		}
		coAuthors = append(coAuthors, name)
	}

	return Authorship{
		LookupName:   d.PrimaryAuthor,
		CoAuthors:    strings.Join(coAuthors, ", "),
		HasCoAuthors: true,
	}
}

// GUIDDialect takes the audio URL from the item GUID and the author field as
// a single name.
type GUIDDialect struct{}

func (GUIDDialect) Name() string { return "guid" }

func (GUIDDialect) sourceURL(item RawItem) (string, bool) {
	return item.GUID, item.GUID != ""
}

func (GUIDDialect) Authorship(author string) Authorship {
	return Authorship{LookupName: strings.TrimSpace(author)}
}

type DialectRules struct {
	ShowTitle     string
	PrimaryAuthor string
}

func NewDialectRules(showTitle, primaryAuthor string) DialectRules {
	if showTitle == "" {
		showTitle = DefaultShowTitle
	}
	if primaryAuthor == "" {
		primaryAuthor = DefaultPrimaryAuthor
	}
	return DialectRules{ShowTitle: showTitle, PrimaryAuthor: primaryAuthor}
}

// Select compares the trimmed channel title to the show title exactly; any
// other title, including case variants, falls to GUIDDialect.
func (r DialectRules) Select(channelTitle string) Dialect {
	if strings.TrimSpace(channelTitle) == r.ShowTitle {
		return EnclosureDialect{PrimaryAuthor: r.PrimaryAuthor}
	}
	return GUIDDialect{}
}
