package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed/rss"
)

type Parser struct {
	rssParser *rss.Parser
}

func NewParser() *Parser {
	return &Parser{
		rssParser: &rss.Parser{},
	}
}

func (p *Parser) Run(data []byte) (*Channel, []RawItem, error) {
	feed, err := p.rssParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channel := &Channel{
		Title:       strings.TrimSpace(feed.Title),
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.rawItem(item))
	}

	return channel, items, nil
}

func (p *Parser) rawItem(item *rss.Item) RawItem {
	raw := RawItem{
		Title:       item.Title,
		Description: item.Description,
		PubDate:     item.PubDate,
		Author:      item.Author,
	}

	if item.GUID != nil {
		raw.GUID = item.GUID.Value
	}

	if item.Enclosure != nil && item.Enclosure.URL != "" {
		raw.EnclosureURL = item.Enclosure.URL
		raw.HasEnclosure = true
	}

	if itunes := item.ITunesExt; itunes != nil {
		raw.Author = cmp.Or(itunes.Author, raw.Author)
		raw.Duration = itunes.Duration
		raw.Description = cmp.Or(raw.Description, itunes.Summary)
	}

	return raw
}
