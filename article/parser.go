// Package article fetches a single article page and extracts the
// normalized item record the feeds are built from.
package article

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"wavefeeds/config"
	"wavefeeds/fetch"
	"wavefeeds/links"
	"wavefeeds/types"
)

// videoHosts identify iframe embeds that count as a video attachment.
var videoHosts = []string{"youtube.com", "youtu.be", "youtube-nocookie.com", "vimeo.com"}

// Parser turns article URLs into Items. One Parser is shared across the
// whole run.
type Parser struct {
	fetcher   *fetch.Fetcher
	descLimit int
}

// New creates a Parser on top of the given fetcher.
func New(fetcher *fetch.Fetcher) *Parser {
	return &Parser{fetcher: fetcher, descLimit: config.DescriptionLimit}
}

// Parse fetches rawURL and extracts title, description, media and
// publish date. Any failure returns an error the caller logs and skips;
// one bad article never aborts a run.
func (p *Parser) Parse(ctx context.Context, rawURL string) (*types.Item, error) {
	body, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", rawURL, err)
	}

	canonical := links.Canonicalize(rawURL)

	title := types.CleanText(extractTitle(doc, rawURL))
	desc := types.CleanText(p.extractDescription(doc, body, pageURL))
	if desc == "" {
		desc = title
	}
	desc = types.Truncate(desc, p.descLimit)

	item := &types.Item{
		Title:       title,
		Link:        canonical,
		GUID:        canonical,
		Description: desc,
		Image:       extractImage(doc, pageURL),
		Video:       extractVideo(doc, pageURL),
		PubDate:     extractPubDate(doc),
	}
	return item, nil
}

// metaProperty returns the content of the first non-empty
// <meta property=...> tag with the given property.
func metaProperty(doc *goquery.Document, property string) string {
	var out string
	doc.Find(`meta[property="` + property + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if c := strings.TrimSpace(s.AttrOr("content", "")); c != "" {
			out = c
			return false
		}
		return true
	})
	return out
}

// metaName is metaProperty for name= metas (Twitter cards, pubdate).
func metaName(doc *goquery.Document, name string) string {
	var out string
	doc.Find(`meta[name="` + name + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if c := strings.TrimSpace(s.AttrOr("content", "")); c != "" {
			out = c
			return false
		}
		return true
	})
	return out
}

func extractTitle(doc *goquery.Document, rawURL string) string {
	if t := metaProperty(doc, "og:title"); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return rawURL
}

// extractDescription tries og:description, then the first paragraph
// inside <article> (or anywhere, failing that), then a readability
// excerpt of the whole page.
func (p *Parser) extractDescription(doc *goquery.Document, body string, pageURL *url.URL) string {
	if d := metaProperty(doc, "og:description"); d != "" {
		return d
	}

	para := doc.Find("article p").First()
	if para.Length() == 0 {
		para = doc.Find("p").First()
	}
	if t := strings.TrimSpace(para.Text()); t != "" {
		return t
	}

	if a, err := readability.FromReader(strings.NewReader(body), pageURL); err == nil {
		if e := strings.TrimSpace(a.Excerpt); e != "" {
			return e
		}
	}
	return ""
}

func extractImage(doc *goquery.Document, pageURL *url.URL) string {
	if v := metaProperty(doc, "og:image"); v != "" {
		return links.Absolute(pageURL, v)
	}
	if v := metaName(doc, "twitter:image"); v != "" {
		return links.Absolute(pageURL, v)
	}
	if v := strings.TrimSpace(doc.Find(`link[rel="image_src"]`).First().AttrOr("href", "")); v != "" {
		return links.Absolute(pageURL, v)
	}
	return ""
}

func extractVideo(doc *goquery.Document, pageURL *url.URL) string {
	for _, prop := range []string{"og:video:secure_url", "og:video:url", "og:video"} {
		if v := metaProperty(doc, prop); v != "" {
			return links.Absolute(pageURL, v)
		}
	}

	video := doc.Find("video").First()
	if v := strings.TrimSpace(video.AttrOr("src", "")); v != "" {
		return links.Absolute(pageURL, v)
	}
	if v := strings.TrimSpace(video.Find("source").First().AttrOr("src", "")); v != "" {
		return links.Absolute(pageURL, v)
	}

	var embed string
	doc.Find("iframe[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return true
		}
		full := links.Absolute(pageURL, src)
		if full == "" {
			return true
		}
		u, err := url.Parse(full)
		if err != nil {
			return true
		}
		host := strings.ToLower(u.Host)
		for _, vh := range videoHosts {
			if host == vh || strings.HasSuffix(host, "."+vh) {
				embed = full
				return false
			}
		}
		return true
	})
	return embed
}

// extractPubDate reads article:published_time (or a pubdate meta) as an
// ISO-8601 timestamp. Anything unparseable yields nil; an article never
// gets a made-up date.
func extractPubDate(doc *goquery.Document) *time.Time {
	raw := metaProperty(doc, "article:published_time")
	if raw == "" {
		raw = metaName(doc, "pubdate")
	}
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return &t
	}
	return nil
}
