// Package feedgen renders item lists into RSS 2.0, Atom, and JSON Feed
// documents, each independently valid even for an empty list.
package feedgen

import (
	"net/url"
	"strings"
)

// Meta is the feed-level metadata shared by the three serializers.
// Derived deterministically from the topic slug and site base; it never
// varies per item.
type Meta struct {
	// Slug names the feed and its output files (feeds/<slug>.*).
	Slug string
	// Title is the human-readable feed title.
	Title string
	// HomeURL is the page the feed links back to.
	HomeURL string
	// SiteBase is the public base URL feed files are served from,
	// with trailing slash.
	SiteBase string
	// Dir is the output subdirectory, "" for the site root.
	Dir string
}

// NewMeta builds feed metadata for a topic slug, with files under the
// standard feeds/ directory.
func NewMeta(slug, title, homeURL, siteBase string) Meta {
	if !strings.HasSuffix(siteBase, "/") {
		siteBase += "/"
	}
	return Meta{Slug: slug, Title: title, HomeURL: homeURL, SiteBase: siteBase, Dir: "feeds"}
}

// NewRootMeta is NewMeta for standalone feeds whose files live at the
// site root.
func NewRootMeta(slug, title, homeURL, siteBase string) Meta {
	m := NewMeta(slug, title, homeURL, siteBase)
	m.Dir = ""
	return m
}

func (m Meta) path(suffix string) string {
	if m.Dir == "" {
		return m.Slug + suffix
	}
	return m.Dir + "/" + m.Slug + suffix
}

// RSSPath is the output path of the RSS rendering, relative to the
// site root.
func (m Meta) RSSPath() string { return m.path(".xml") }

// AtomPath is the output path of the Atom rendering.
func (m Meta) AtomPath() string { return m.path(".atom.xml") }

// JSONPath is the output path of the JSON Feed rendering.
func (m Meta) JSONPath() string { return m.path(".json") }

// SelfURL returns the absolute URL of one of the feed's own files.
func (m Meta) SelfURL(relPath string) string {
	return m.SiteBase + relPath
}

// AtomID is the feed's stable identifier, namespaced by the site host.
func (m Meta) AtomID() string {
	host := "feeds"
	if u, err := url.Parse(m.SiteBase); err == nil && u.Host != "" {
		host = strings.ReplaceAll(u.Host, ".", "-")
	}
	return "urn:" + host + ":" + m.Slug
}
