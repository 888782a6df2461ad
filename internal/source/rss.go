package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
)

const (
	// DefaultRSSLimit is the number of feed entries shown per source.
	DefaultRSSLimit = 3

	rssEntryUnparsed = "Could not parse this RSS entry."
)

// ErrNoEntries is returned when a feed parses but lists no items.
var ErrNoEntries = errors.New("feed has no entries")

// ParseFeed parses an RSS, Atom or JSON feed document.
func ParseFeed(body []byte) (*gofeed.Feed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, ErrNoEntries
	}
	return feed, nil
}

// ExtractRSS returns up to limit entries in feed order. Items without a
// title or link become placeholder entries.
func ExtractRSS(feed *gofeed.Feed, limit int) []Entry {
	if feed == nil || limit <= 0 {
		return nil
	}
	items := lo.Slice(feed.Items, 0, limit)
	return lo.Map(items, func(item *gofeed.Item, _ int) Entry {
		return rssEntry(item)
	})
}

func rssEntry(item *gofeed.Item) Entry {
	if item == nil || strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Link) == "" {
		return Entry{Placeholder: rssEntryUnparsed}
	}
	return Entry{Fields: []Field{
		{Label: "Published", Value: itemPublishedDate(item)},
		{Label: "Title", Value: strings.TrimSpace(item.Title), Emphasis: true},
		{Label: "Link", Value: strings.TrimSpace(item.Link)},
	}}
}

// itemPublishedDate prefers the raw published string. gofeed knows a few
// layouts dateparse does not, so its parsed time is the fallback.
func itemPublishedDate(item *gofeed.Item) string {
	if d := NormalizeDate(item.Published); d != NoDate {
		return d
	}
	if item.Published != "" && item.PublishedParsed != nil {
		return item.PublishedParsed.Format(dateLayout)
	}
	return NoDate
}
