package aggregate

import (
	"reflect"
	"testing"

	"wavefeeds/types"
)

func taggedItem(guid, category, video string) *types.Item {
	it := item(guid, nil)
	it.Category = category
	it.Video = video
	return it
}

func TestBuildAllMergesAndDedupes(t *testing.T) {
	shared := "https://e.com/shared"
	byArea := map[string][]*types.Item{
		"robotics": {taggedItem(shared, "robotics", ""), taggedItem("https://e.com/r1", "robotics", "")},
		"quantum":  {taggedItem(shared, "quantum", ""), taggedItem("https://e.com/q1", "quantum", "")},
	}

	got := BuildAll(byArea, []string{"quantum", "robotics"}, 50)
	want := []string{shared, "https://e.com/q1", "https://e.com/r1"}
	if !reflect.DeepEqual(guids(got), want) {
		t.Errorf("BuildAll = %v, want %v", guids(got), want)
	}
	// the first-encountered copy (quantum, per merge order) survives
	if got[0].Category != "quantum" {
		t.Errorf("kept copy from %q, want quantum", got[0].Category)
	}
}

func TestFilterVideos(t *testing.T) {
	items := []*types.Item{
		taggedItem("https://e.com/plain", "robotics", ""),
		taggedItem("https://e.com/clip", "robotics", "https://e.com/clip.mp4"),
	}

	got := FilterVideos(items, 50)
	if len(got) != 1 || got[0].GUID != "https://e.com/clip" {
		t.Errorf("FilterVideos = %v", guids(got))
	}
}

func TestFilterCategories(t *testing.T) {
	items := []*types.Item{
		taggedItem("https://e.com/bd", "boston-dynamics", ""),
		taggedItem("https://e.com/nano", "nanotech", ""),
		taggedItem("https://e.com/oai", "openai", ""),
	}

	got := FilterCategories(items, []string{"boston-dynamics", "openai"}, 50)
	want := []string{"https://e.com/bd", "https://e.com/oai"}
	if !reflect.DeepEqual(guids(got), want) {
		t.Errorf("FilterCategories = %v, want %v", guids(got), want)
	}
}

func TestDerivedFeedsEmptyInput(t *testing.T) {
	if got := BuildAll(nil, nil, 50); len(got) != 0 {
		t.Errorf("BuildAll(nil) = %v", got)
	}
	if got := FilterVideos(nil, 50); len(got) != 0 {
		t.Errorf("FilterVideos(nil) = %v", got)
	}
	if got := FilterCategories(nil, []string{"x"}, 50); len(got) != 0 {
		t.Errorf("FilterCategories(nil) = %v", got)
	}
}
