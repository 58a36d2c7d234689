package feedgen

import (
	"encoding/json"
	"fmt"
	"time"

	"wavefeeds/types"
)

type jsonAttachment struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

type jsonItem struct {
	ID            string           `json:"id"`
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	ContentText   string           `json:"content_text"`
	DatePublished string           `json:"date_published,omitempty"`
	Attachments   []jsonAttachment `json:"attachments,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
}

type jsonDoc struct {
	Version     string     `json:"version"`
	Title       string     `json:"title"`
	HomePageURL string     `json:"home_page_url"`
	FeedURL     string     `json:"feed_url"`
	Items       []jsonItem `json:"items"`
}

// JSONFeed renders items as a JSON Feed v1 document. Attachments appear
// only when the item has media; tags only when it has a category. An
// empty item list renders as "items": [].
func JSONFeed(meta Meta, items []*types.Item) ([]byte, error) {
	doc := jsonDoc{
		Version:     "https://jsonfeed.org/version/1",
		Title:       meta.Title,
		HomePageURL: meta.HomeURL,
		FeedURL:     meta.SelfURL(meta.JSONPath()),
		Items:       make([]jsonItem, 0, len(items)),
	}

	for _, it := range items {
		ji := jsonItem{
			ID:          it.GUID,
			URL:         it.Link,
			Title:       types.CleanText(it.Title),
			ContentText: types.CleanText(it.Description),
		}
		if it.PubDate != nil {
			ji.DatePublished = it.PubDate.UTC().Format(time.RFC3339)
		}
		if it.Image != "" {
			ji.Attachments = append(ji.Attachments, jsonAttachment{
				URL:      it.Image,
				MimeType: GuessMIME(it.Image, "image/jpeg"),
			})
		}
		if it.Video != "" {
			ji.Attachments = append(ji.Attachments, jsonAttachment{
				URL:      it.Video,
				MimeType: GuessMIME(it.Video, "video/mp4"),
			})
		}
		if it.Category != "" {
			ji.Tags = []string{it.Category}
		}
		doc.Items = append(doc.Items, ji)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json feed: %w", err)
	}
	return append(out, '\n'), nil
}
