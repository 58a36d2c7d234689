package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wavefeeds/aggregate"
	"wavefeeds/article"
	"wavefeeds/config"
	"wavefeeds/feedgen"
	"wavefeeds/fetch"
	"wavefeeds/publish"
	"wavefeeds/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	configPath := flag.String("config", "feeds.yaml", "Path to the feeds configuration file")
	outDir := flag.String("out", ".", "Output directory (feeds/ and index.html are written under it)")
	flag.Parse()

	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Loaded %d area(s) from %s", len(cfg.Areas), *configPath)

	fetcher := fetch.New(config.FetchTimeout)
	parser := article.New(fetcher)
	agg := aggregate.New(fetcher, parser, cfg.MaxItemsPerArea)
	writer := publish.NewWriter(*outDir)
	ctx := context.Background()
	now := time.Now()

	// Step 1: Build each topic area
	var listing []publish.FeedLink
	byArea := make(map[string][]*types.Item)
	slugs := cfg.AreaSlugs()
	for _, slug := range slugs {
		log.Printf("=== Area %s ===", slug)
		items := agg.BuildArea(ctx, slug, cfg.Areas[slug])
		if len(items) == 0 {
			log.Printf("[%s] no items; previous output left untouched", slug)
			continue
		}
		byArea[slug] = items

		meta := feedgen.NewMeta(slug, feedTitle(slug), cfg.HomeURL, cfg.SiteBase)
		if err := writeFeedSet(writer, meta, items, now); err != nil {
			log.Fatalf("[%s] feed serialization failed: %v", slug, err)
		}
		listing = append(listing, feedLink(meta))
	}

	// Step 2: Derived feeds over the union of everything collected
	all := aggregate.BuildAll(byArea, slugs, agg.MaxItems())
	derived := []struct {
		slug  string
		title string
		items []*types.Item
	}{
		{"all", "All Areas", all},
		{"videos", "Videos", aggregate.FilterVideos(all, agg.MaxItems())},
		{"tech-leaders", "Tech Leaders", aggregate.FilterCategories(all, cfg.TechLeaders, agg.MaxItems())},
	}
	for _, d := range derived {
		if len(d.items) == 0 {
			log.Printf("[%s] empty; skipped", d.slug)
			continue
		}
		meta := feedgen.NewMeta(d.slug, feedTitle(d.slug), cfg.HomeURL, cfg.SiteBase)
		if err := writeFeedSet(writer, meta, d.items, now); err != nil {
			log.Fatalf("[%s] feed serialization failed: %v", d.slug, err)
		}
		listing = append(listing, feedLink(meta))
		log.Printf("[%s] wrote %d item(s)", d.slug, len(d.items))
	}

	// Step 3: Homepage lists every feed written this run
	if err := writer.WriteHomepage("WaveFeeds", listing); err != nil {
		log.Fatalf("Failed to write homepage: %v", err)
	}

	// Step 4: Mirror outputs to S3 if configured
	mirrorOutputs(ctx, writer)

	log.Printf("=== Build complete: %d file(s) written ===", len(writer.Written()))
}

// writeFeedSet renders and writes the RSS, Atom, and JSON files for one
// feed. Serializers validate their XML before returning, so any error
// here is a logic defect and the caller aborts the run.
func writeFeedSet(w *publish.Writer, meta feedgen.Meta, items []*types.Item, now time.Time) error {
	rss, err := feedgen.RSS(meta, items, now)
	if err != nil {
		return err
	}
	atom, err := feedgen.Atom(meta, items, now)
	if err != nil {
		return err
	}
	jf, err := feedgen.JSONFeed(meta, items)
	if err != nil {
		return err
	}

	if err := w.Write(meta.RSSPath(), rss); err != nil {
		return err
	}
	if err := w.Write(meta.AtomPath(), atom); err != nil {
		return err
	}
	return w.Write(meta.JSONPath(), jf)
}

// feedTitle turns an area slug into a displayable feed title.
func feedTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func feedLink(meta feedgen.Meta) publish.FeedLink {
	return publish.FeedLink{
		Slug:  meta.Slug,
		Title: meta.Title,
		RSS:   meta.RSSPath(),
		Atom:  meta.AtomPath(),
		JSON:  meta.JSONPath(),
	}
}

// mirrorOutputs uploads this run's files to S3 when configured.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX,
// S3_USE_PATH_STYLE=true. Upload failures are logged, never fatal; the
// local files are the source of truth.
func mirrorOutputs(ctx context.Context, w *publish.Writer) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Printf("S3 not configured; skipping mirror")
		return
	}

	cfg := publish.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := publish.NewS3(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (mirror disabled)", err)
		return
	}

	prefix := strings.TrimSpace(os.Getenv("S3_PREFIX"))
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}

	uploaded := 0
	for _, relPath := range w.Written() {
		data, err := os.ReadFile(filepath.Join(w.Root(), filepath.FromSlash(relPath)))
		if err != nil {
			log.Printf("S3 mirror: read %s: %v", relPath, err)
			continue
		}
		upCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = client.Put(upCtx, bucket, prefix+relPath, strings.NewReader(string(data)), contentTypeFor(relPath), "public, max-age=300")
		cancel()
		if err != nil {
			log.Printf("S3 mirror: upload %s: %v", relPath, err)
			continue
		}
		uploaded++
	}
	log.Printf("S3 mirror complete: %d file(s)", uploaded)
}

func contentTypeFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".atom.xml"):
		return "application/atom+xml"
	case strings.HasSuffix(path, ".xml"):
		return "application/rss+xml"
	case strings.HasSuffix(path, ".json"):
		return "application/feed+json"
	case strings.HasSuffix(path, ".html"):
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
