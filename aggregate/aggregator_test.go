package aggregate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"wavefeeds/article"
	"wavefeeds/config"
	"wavefeeds/fetch"
	"wavefeeds/types"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func item(guid string, pub *time.Time) *types.Item {
	return &types.Item{Title: guid, Link: guid, GUID: guid, Description: guid, PubDate: pub}
}

func guids(items []*types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.GUID
	}
	return out
}

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	a1 := item("https://e.com/a", nil)
	a1.Category = "first"
	a2 := item("https://e.com/a", nil)
	a2.Category = "second"
	b := item("https://e.com/b", nil)

	got := Dedupe([]*types.Item{a1, a2, b})
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0] != a1 {
		t.Error("dedup kept the later occurrence")
	}
	if got[1] != b {
		t.Error("dedup disturbed input order")
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []*types.Item{
		item("https://e.com/a", nil),
		item("https://e.com/b", nil),
		item("https://e.com/a", nil),
	}
	once := Dedupe(in)
	twice := Dedupe(once)
	if !reflect.DeepEqual(guids(once), guids(twice)) {
		t.Errorf("dedup not idempotent: %v then %v", guids(once), guids(twice))
	}
}

func TestSortByDateUndatedSink(t *testing.T) {
	undatedA := item("https://e.com/undated-a", nil)
	undatedB := item("https://e.com/undated-b", nil)
	old := item("https://e.com/old", ts("2020-01-01T00:00:00Z"))
	newer := item("https://e.com/new", ts("2025-01-01T00:00:00Z"))

	got := SortByDate([]*types.Item{undatedA, old, undatedB, newer})
	want := []string{
		"https://e.com/new",
		"https://e.com/old",
		"https://e.com/undated-a",
		"https://e.com/undated-b",
	}
	if !reflect.DeepEqual(guids(got), want) {
		t.Errorf("order = %v, want %v", guids(got), want)
	}
}

func TestCap(t *testing.T) {
	in := []*types.Item{
		item("https://e.com/a", nil),
		item("https://e.com/b", nil),
		item("https://e.com/c", nil),
	}
	if got := Cap(in, 2); len(got) != 2 {
		t.Errorf("got %d, want 2", len(got))
	}
	if got := Cap(in, 10); len(got) != 3 {
		t.Errorf("got %d, want all 3", len(got))
	}
}

func TestBuildAreaEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="/news/one">One</a>
			<a href="/news/two">Two</a>
		</body></html>`))
	})
	mux.HandleFunc("/news/one", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="One">
			<meta property="article:published_time" content="2025-03-01T00:00:00Z">
		</head><body></body></html>`))
	})
	mux.HandleFunc("/news/two", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Two">
			<meta property="article:published_time" content="2025-04-01T00:00:00Z">
		</head><body></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher := fetch.New(5 * time.Second)
	agg := New(fetcher, article.New(fetcher), 50)

	sources := []config.Source{{
		Name:   "test source",
		Index:  srv.URL + "/",
		Base:   srv.URL,
		Prefix: "/news/",
		Mode:   "html",
	}}
	items := agg.BuildArea(context.Background(), "robotics", sources)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// newest first
	if items[0].Title != "Two" || items[1].Title != "One" {
		t.Errorf("order = %s, %s", items[0].Title, items[1].Title)
	}
	for _, it := range items {
		if it.Category != "robotics" {
			t.Errorf("Category = %q, want area slug", it.Category)
		}
	}
}

func TestBuildAreaUnavailableSource(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	fetcher := fetch.New(5 * time.Second)
	agg := New(fetcher, article.New(fetcher), 50)

	sources := []config.Source{{Index: srv.URL + "/gone", Base: srv.URL, Mode: "html"}}
	if items := agg.BuildArea(context.Background(), "quiet", sources); len(items) != 0 {
		t.Errorf("got %d items from a dead source, want 0", len(items))
	}
}
