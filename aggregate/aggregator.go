// Package aggregate runs the per-area pipeline: extract candidate
// links from every configured source, parse each article, then merge,
// dedupe, sort and cap the results.
package aggregate

import (
	"context"
	"log"
	"sort"

	"wavefeeds/article"
	"wavefeeds/config"
	"wavefeeds/fetch"
	"wavefeeds/links"
	"wavefeeds/types"
)

// Aggregator collects items for topic areas. Sources and articles are
// processed sequentially; a failing source or article is logged and
// skipped, never fatal.
type Aggregator struct {
	fetcher  *fetch.Fetcher
	parser   *article.Parser
	maxItems int
}

// New creates an Aggregator. maxItems caps every emitted feed.
func New(fetcher *fetch.Fetcher, parser *article.Parser, maxItems int) *Aggregator {
	if maxItems <= 0 {
		maxItems = config.DefaultMaxItems
	}
	return &Aggregator{fetcher: fetcher, parser: parser, maxItems: maxItems}
}

// BuildArea collects, dedupes, sorts and caps the items for one topic
// area. An empty result means the area has nothing new; callers skip
// writing output so previous files stay in place.
func (a *Aggregator) BuildArea(ctx context.Context, slug string, sources []config.Source) []*types.Item {
	var collected []*types.Item

	for _, src := range sources {
		body, err := a.fetcher.Fetch(ctx, src.Index)
		if err != nil {
			log.Printf("[%s] source %s unavailable: %v", slug, src.DisplayName(), err)
			continue
		}

		candidates := links.Extract(body, src)
		log.Printf("[%s] source %s: %d candidate link(s)", slug, src.DisplayName(), len(candidates))

		for i, link := range candidates {
			item, err := a.parser.Parse(ctx, link)
			if err != nil {
				log.Printf("[%s] [%d/%d] skipping %s: %v", slug, i+1, len(candidates), link, err)
				continue
			}
			item.Category = slug
			collected = append(collected, item)
		}
	}

	items := Cap(SortByDate(Dedupe(collected)), a.maxItems)
	log.Printf("[%s] %d item(s) after dedup/sort/cap", slug, len(items))
	return items
}

// MaxItems returns the configured per-feed cap.
func (a *Aggregator) MaxItems() int {
	return a.maxItems
}

// Dedupe drops items whose GUID was already seen, keeping the first
// occurrence and the input order. Idempotent.
func Dedupe(items []*types.Item) []*types.Item {
	seen := make(map[string]bool, len(items))
	out := make([]*types.Item, 0, len(items))
	for _, it := range items {
		if seen[it.GUID] {
			continue
		}
		seen[it.GUID] = true
		out = append(out, it)
	}
	return out
}

// SortByDate orders items newest first. Items without a usable publish
// date sink to the bottom and keep their relative input order, so
// undated items never crowd out dated ones.
func SortByDate(items []*types.Item) []*types.Item {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PubDate, items[j].PubDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return items
}

// Cap truncates items to at most n entries.
func Cap(items []*types.Item, n int) []*types.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
