package aggregate

import "wavefeeds/types"

// Derived feeds are computed from already-collected items; they never
// fetch anything. Each is optional: an empty result means the feed's
// files are not written this run.

// BuildAll merges the per-area item lists (in the given slug order for
// determinism), re-dedupes by GUID, re-sorts, and re-caps.
func BuildAll(byArea map[string][]*types.Item, order []string, maxItems int) []*types.Item {
	var merged []*types.Item
	for _, slug := range order {
		merged = append(merged, byArea[slug]...)
	}
	return Cap(SortByDate(Dedupe(merged)), maxItems)
}

// FilterVideos keeps items carrying a video attachment, with the same
// dedup/sort/cap treatment as any feed.
func FilterVideos(items []*types.Item, maxItems int) []*types.Item {
	var out []*types.Item
	for _, it := range items {
		if it.HasVideo() {
			out = append(out, it)
		}
	}
	return Cap(SortByDate(Dedupe(out)), maxItems)
}

// FilterCategories keeps items whose topic area is in the allow-list.
func FilterCategories(items []*types.Item, allowed []string, maxItems int) []*types.Item {
	set := make(map[string]bool, len(allowed))
	for _, slug := range allowed {
		set[slug] = true
	}
	var out []*types.Item
	for _, it := range items {
		if set[it.Category] {
			out = append(out, it)
		}
	}
	return Cap(SortByDate(Dedupe(out)), maxItems)
}
