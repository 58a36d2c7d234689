package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wavefeeds/fetch"
)

func serve(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestParser() *Parser {
	return New(fetch.New(5 * time.Second))
}

func TestParseOpenGraphMetadata(t *testing.T) {
	srv := serve(t, map[string]string{
		"/post": `<html><head>
			<meta property="og:title" content="Hello">
			<meta property="og:description" content="A greeting.">
			<meta property="og:image" content="/img/hero.png">
			<meta property="og:video" content="v.mp4">
			<meta property="article:published_time" content="2025-06-01T12:00:00Z">
		</head><body><p>ignored</p></body></html>`,
	})

	item, err := newTestParser().Parse(context.Background(), srv.URL+"/post?utm_source=x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if item.Title != "Hello" {
		t.Errorf("Title = %q", item.Title)
	}
	if item.Description != "A greeting." {
		t.Errorf("Description = %q", item.Description)
	}
	if want := srv.URL + "/post"; item.Link != want || item.GUID != want {
		t.Errorf("Link/GUID = %q/%q, want canonical %q", item.Link, item.GUID, want)
	}
	if want := srv.URL + "/img/hero.png"; item.Image != want {
		t.Errorf("Image = %q, want %q", item.Image, want)
	}
	if want := srv.URL + "/v.mp4"; item.Video != want {
		t.Errorf("Video = %q, want %q", item.Video, want)
	}
	if item.PubDate == nil {
		t.Fatal("PubDate is nil")
	}
	if got := item.PubDate.UTC().Format(time.RFC3339); got != "2025-06-01T12:00:00Z" {
		t.Errorf("PubDate = %s", got)
	}
}

func TestParseFallbacks(t *testing.T) {
	srv := serve(t, map[string]string{
		"/titled": `<html><head><title> Page Title </title></head>
			<body><article><p>First paragraph text.</p><p>Second.</p></article></body></html>`,
		"/bare": `<html><head></head><body></body></html>`,
	})
	p := newTestParser()

	item, err := p.Parse(context.Background(), srv.URL+"/titled")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if item.Title != "Page Title" {
		t.Errorf("Title = %q, want document title", item.Title)
	}
	if item.Description != "First paragraph text." {
		t.Errorf("Description = %q, want first article paragraph", item.Description)
	}

	item, err = p.Parse(context.Background(), srv.URL+"/bare")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if item.Title != srv.URL+"/bare" {
		t.Errorf("Title = %q, want URL fallback", item.Title)
	}
	if item.Description != item.Title {
		t.Errorf("Description = %q, want title fallback", item.Description)
	}
	if item.PubDate != nil {
		t.Errorf("PubDate = %v, want nil when no timestamp", item.PubDate)
	}
}

func TestParseVideoElementAndEmbed(t *testing.T) {
	srv := serve(t, map[string]string{
		"/native": `<html><body>
			<video><source src="/media/clip.webm"></video>
		</body></html>`,
		"/embed": `<html><body>
			<iframe src="https://tracker.example.net/pixel"></iframe>
			<iframe src="https://www.youtube.com/embed/abc123"></iframe>
		</body></html>`,
	})
	p := newTestParser()

	item, err := p.Parse(context.Background(), srv.URL+"/native")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := srv.URL + "/media/clip.webm"; item.Video != want {
		t.Errorf("Video = %q, want %q", item.Video, want)
	}

	item, err = p.Parse(context.Background(), srv.URL+"/embed")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := "https://www.youtube.com/embed/abc123"; item.Video != want {
		t.Errorf("Video = %q, want known-host embed %q", item.Video, want)
	}
}

func TestParseBadTimestampYieldsNoDate(t *testing.T) {
	srv := serve(t, map[string]string{
		"/post": `<html><head>
			<meta property="og:title" content="T">
			<meta property="article:published_time" content="next tuesday-ish">
		</head><body></body></html>`,
	})

	item, err := newTestParser().Parse(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if item.PubDate != nil {
		t.Errorf("PubDate = %v, want nil for unparseable timestamp", item.PubDate)
	}
}

func TestParseScrubsControlCharacters(t *testing.T) {
	srv := serve(t, map[string]string{
		"/post": "<html><head><meta property=\"og:title\" content=\"\uFEFFbad\x08title\"></head><body></body></html>",
	})

	item, err := newTestParser().Parse(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if item.Title != "badtitle" {
		t.Errorf("Title = %q, want control chars and BOM stripped", item.Title)
	}
}

func TestParseTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv := serve(t, map[string]string{
		"/post": `<html><head><meta property="og:description" content="` + long + `"></head><body></body></html>`,
	})

	item, err := newTestParser().Parse(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(item.Description) != 800 {
		t.Errorf("Description length = %d, want 800", len(item.Description))
	}
}

func TestParseFetchFailure(t *testing.T) {
	srv := serve(t, map[string]string{})
	if _, err := newTestParser().Parse(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404 article")
	}
}
