// Command singlefeed builds the RSS, Atom, and JSON feed files for a
// single source site, without the area configuration of the main
// builder. Useful for one-off feeds like a vendor blog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wavefeeds/article"
	"wavefeeds/config"
	"wavefeeds/feedgen"
	"wavefeeds/fetch"
	"wavefeeds/links"
	"wavefeeds/publish"
	"wavefeeds/types"
)

func main() {
	_ = godotenv.Load()

	index := flag.String("index", "", "Index page or feed URL to pull article links from (required)")
	base := flag.String("base", "", "Site base URL; candidate links must share its host (required)")
	prefix := flag.String("prefix", "", "Preferred href prefix for candidate links")
	limit := flag.Int("limit", config.DefaultLinkLimit, "Maximum number of articles")
	slug := flag.String("name", "feed", "Output basename: <name>.xml, <name>.atom.xml, <name>.json")
	title := flag.String("title", "", "Feed title (defaults to the name)")
	home := flag.String("home", "", "Feed home page URL (defaults to the index URL)")
	siteBase := flag.String("site-base", "", "Public base URL the feed files are served from (required)")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *index == "" || *base == "" || *siteBase == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *title == "" {
		*title = *slug
	}
	if *home == "" {
		*home = *index
	}

	src := config.Source{Index: *index, Base: *base, Prefix: *prefix, Limit: *limit}
	fetcher := fetch.New(config.FetchTimeout)
	parser := article.New(fetcher)
	ctx := context.Background()

	body, err := fetcher.Fetch(ctx, src.Index)
	if err != nil {
		log.Fatalf("Failed to fetch index: %v", err)
	}
	candidates := links.Extract(body, src)
	log.Printf("Found %d candidate link(s)", len(candidates))

	var items []*types.Item
	for i, link := range candidates {
		item, err := parser.Parse(ctx, link)
		if err != nil {
			log.Printf("[%d/%d] skipping %s: %v", i+1, len(candidates), link, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		log.Printf("No items parsed; leaving previous files untouched")
		return
	}

	meta := feedgen.NewRootMeta(*slug, *title, *home, *siteBase)
	writer := publish.NewWriter(*outDir)
	now := time.Now()

	rss, err := feedgen.RSS(meta, items, now)
	if err != nil {
		log.Fatalf("RSS serialization failed: %v", err)
	}
	atom, err := feedgen.Atom(meta, items, now)
	if err != nil {
		log.Fatalf("Atom serialization failed: %v", err)
	}
	jf, err := feedgen.JSONFeed(meta, items)
	if err != nil {
		log.Fatalf("JSON serialization failed: %v", err)
	}

	for _, out := range []struct {
		path string
		data []byte
	}{
		{meta.RSSPath(), rss},
		{meta.AtomPath(), atom},
		{meta.JSONPath(), jf},
	} {
		if err := writer.Write(out.path, out.data); err != nil {
			log.Fatalf("Failed to write %s: %v", out.path, err)
		}
		log.Printf("Wrote %s with %d item(s)", out.path, len(items))
	}
}
