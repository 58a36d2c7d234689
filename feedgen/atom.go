package feedgen

import (
	"encoding/xml"
	"time"

	"wavefeeds/types"
)

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Link    atomLink `xml:"link"`
	ID      string   `xml:"id"`
	Summary string   `xml:"summary"`
	Updated string   `xml:"updated,omitempty"`
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Links   []atomLink  `xml:"link"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Entries []atomEntry `xml:"entry"`
}

// Atom renders items as an Atom feed. Timestamps use RFC 3339 as the
// Atom spec requires. Validated by re-parsing, like RSS.
func Atom(meta Meta, items []*types.Item, now time.Time) ([]byte, error) {
	doc := atomFeed{
		Xmlns: "http://www.w3.org/2005/Atom",
		Title: meta.Title,
		Links: []atomLink{
			{Href: meta.HomeURL},
			{Href: meta.SelfURL(meta.AtomPath()), Rel: "self"},
		},
		ID:      meta.AtomID(),
		Updated: now.UTC().Format(time.RFC3339),
		Entries: make([]atomEntry, 0, len(items)),
	}

	for _, it := range items {
		entry := atomEntry{
			Title:   types.CleanText(it.Title),
			Link:    atomLink{Href: it.Link},
			ID:      it.GUID,
			Summary: types.CleanText(it.Description),
		}
		if it.PubDate != nil {
			entry.Updated = it.PubDate.UTC().Format(time.RFC3339)
		}
		doc.Entries = append(doc.Entries, entry)
	}

	return renderXML(doc)
}
