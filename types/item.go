package types

import "time"

// Item is the normalized representation of one aggregated article.
// Link and GUID always hold the canonical absolute URL of the article;
// GUID doubles as the dedup key. An Item is never mutated after the
// aggregator tags it with its topic area.
type Item struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	GUID        string     `json:"guid"`
	Description string     `json:"description"`
	PubDate     *time.Time `json:"pub_date,omitempty"`
	Image       string     `json:"image,omitempty"`
	Video       string     `json:"video,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// HasVideo reports whether the item carries a video attachment.
func (it *Item) HasVideo() bool {
	return it.Video != ""
}
