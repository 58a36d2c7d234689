package links

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"wavefeeds/config"
)

// domainPatterns maps a host substring to the href prefixes its article
// links are known to use. New sites are added here, not as new code.
var domainPatterns = []struct {
	HostContains string
	Prefixes     []string
}{
	{"nanowerk.com", []string{"/news2/"}},
	{"phys.org", []string{"/news/"}},
	{"sciencedaily.com", []string{"/releases/"}},
	{"news.mit.edu", []string{"/20"}},
	{"berkeley.edu", []string{"/20"}},
}

// genericMarkers match article-looking paths on hosts with no dedicated
// pattern entry.
var genericMarkers = []string{"/news/", "/story/", "/releases/", "/202", "/20", "/blog/"}

// feedExtensions mark index URLs that are feeds rather than HTML pages.
var feedExtensions = []string{".rss", ".atom", ".xml"}

// IsFeedIndex reports whether a source index should be read as an
// RSS/Atom document: an explicit mode wins, then a feed-like URL
// extension, then a sniff of the body's opening characters.
func IsFeedIndex(src config.Source, body string) bool {
	switch src.Mode {
	case "feed":
		return true
	case "html":
		return false
	}

	lower := strings.ToLower(src.Index)
	for _, ext := range feedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	head := body
	if len(head) > 200 {
		head = head[:200]
	}
	return strings.Contains(head, "<rss") || strings.Contains(head, "<feed")
}

// Extract pulls candidate article URLs out of a fetched source index,
// choosing HTML scraping or feed parsing per IsFeedIndex. The result is
// ordered, deduplicated by canonical URL, and capped at the source's
// link limit. Failures degrade to an empty list.
func Extract(body string, src config.Source) []string {
	base, err := url.Parse(src.Base)
	if err != nil || base.Host == "" {
		return nil
	}
	if IsFeedIndex(src, body) {
		return ExtractFeed(body, base, src.LinkLimit())
	}
	return extractHTML(body, base, src.Prefix, src.LinkLimit())
}

// picker accumulates candidate links in document order, dropping
// cross-host links and canonical duplicates.
type picker struct {
	base  *url.URL
	host  string
	limit int
	seen  map[string]bool
	out   []string
}

func newPicker(base *url.URL, limit int) *picker {
	return &picker{
		base:  base,
		host:  base.Host,
		limit: limit,
		seen:  make(map[string]bool),
	}
}

func (p *picker) add(href string) {
	if p.full() {
		return
	}
	full := Absolute(p.base, href)
	if full == "" {
		return
	}
	u, err := url.Parse(full)
	if err != nil || u.Host != p.host {
		return
	}
	if p.seen[full] {
		return
	}
	p.seen[full] = true
	p.out = append(p.out, full)
}

func (p *picker) full() bool {
	return len(p.out) >= p.limit
}

// extractHTML applies the link-selection rules in priority order; the
// first rule yielding any link wins outright: preferred prefix, then
// the per-domain pattern table, then the generic path markers.
func extractHTML(body string, base *url.URL, prefix string, limit int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	anchors := doc.Find("a[href]")

	if prefix != "" {
		p := newPicker(base, limit)
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if strings.HasPrefix(href, prefix) {
				p.add(href)
			}
			return !p.full()
		})
		if len(p.out) > 0 {
			return p.out
		}
	}

	host := strings.ToLower(base.Host)
	for _, dp := range domainPatterns {
		if !strings.Contains(host, dp.HostContains) {
			continue
		}
		p := newPicker(base, limit)
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			for _, pat := range dp.Prefixes {
				if strings.HasPrefix(href, pat) {
					p.add(href)
					break
				}
			}
			return !p.full()
		})
		if len(p.out) > 0 {
			return p.out
		}
	}

	p := newPicker(base, limit)
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		for _, marker := range genericMarkers {
			if strings.Contains(href, marker) {
				p.add(href)
				break
			}
		}
		return !p.full()
	})
	return p.out
}

// ExtractFeed reads article links from an RSS or Atom document,
// resolving each against base. Malformed documents yield an empty list
// rather than an error; a broken upstream feed is routine.
func ExtractFeed(body string, base *url.URL, limit int) []string {
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil
	}

	p := newPicker(base, limit)
	// Feed entries may point off-host (syndicated content), so bypass
	// the picker's same-host check by resolving first.
	for _, item := range feed.Items {
		if p.full() {
			break
		}
		full := Absolute(base, item.Link)
		if full == "" || p.seen[full] {
			continue
		}
		p.seen[full] = true
		p.out = append(p.out, full)
	}
	return p.out
}
