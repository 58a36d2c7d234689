package feedgen

import (
	"encoding/xml"
	"fmt"
	"time"

	"wavefeeds/types"
)

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length string `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssItem struct {
	Title       string         `xml:"title"`
	Link        string         `xml:"link"`
	GUID        rssGUID        `xml:"guid"`
	Description string         `xml:"description"`
	PubDate     string         `xml:"pubDate,omitempty"`
	Enclosures  []rssEnclosure `xml:"enclosure"`
	Category    string         `xml:"category,omitempty"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RSS renders items as an RSS 2.0 document. The output is validated by
// re-parsing before it is returned; a validation failure signals a
// serializer defect and is reported as an error.
func RSS(meta Meta, items []*types.Item, now time.Time) ([]byte, error) {
	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         meta.Title,
			Link:          meta.HomeURL,
			Description:   fmt.Sprintf("Aggregated feed for %s.", meta.Title),
			Language:      "en-us",
			LastBuildDate: now.UTC().Format(time.RFC1123Z),
			Items:         make([]rssItem, 0, len(items)),
		},
	}

	for _, it := range items {
		ri := rssItem{
			Title:       types.CleanText(it.Title),
			Link:        it.Link,
			GUID:        rssGUID{IsPermaLink: "true", Value: it.GUID},
			Description: types.CleanText(it.Description),
			Category:    it.Category,
		}
		if it.PubDate != nil {
			ri.PubDate = it.PubDate.Format(time.RFC1123Z)
		}
		if it.Image != "" {
			ri.Enclosures = append(ri.Enclosures, rssEnclosure{
				URL:    it.Image,
				Length: "0",
				Type:   GuessMIME(it.Image, "image/jpeg"),
			})
		}
		if it.Video != "" {
			ri.Enclosures = append(ri.Enclosures, rssEnclosure{
				URL:    it.Video,
				Length: "0",
				Type:   GuessMIME(it.Video, "video/mp4"),
			})
		}
		doc.Channel.Items = append(doc.Channel.Items, ri)
	}

	return renderXML(doc)
}

// renderXML marshals a feed document with the XML declaration and
// confirms the result re-parses as well-formed XML.
func renderXML(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	out = append(out, '\n')
	if err := ValidateXML(out); err != nil {
		return nil, fmt.Errorf("produced feed failed validation: %w", err)
	}
	return out, nil
}
