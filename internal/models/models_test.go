// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestDefaultWatchProviders_SerializesEmptyArrays(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultWatchProviders())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"link":null,"flatrate":[],"free":[]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestWatchProviders_Normalize(t *testing.T) {
	t.Parallel()

	link := "https://www.themoviedb.org/movie/603/watch?locale=FR"
	wp := WatchProviders{Link: &link}.Normalize()
	if wp.Flatrate == nil || wp.Free == nil {
		t.Fatal("Normalize() left a nil list")
	}
	if wp.Link == nil || *wp.Link != link {
		t.Error("Normalize() must keep the link")
	}
}

func TestEnrichedMovie_FlattensMovie(t *testing.T) {
	t.Parallel()

	em := EnrichedMovie{
		Movie:          Movie{ID: 603, Title: "Matrix", ReleaseDate: ReleaseDateUnknown},
		WatchProviders: DefaultWatchProviders(),
	}
	data, err := json.Marshal(em)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"id":603`, `"poster_url":null`, `"release_date":"N/A"`, `"watch_providers":{`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestHybridRecommendation_OmitsProvidersWhenAbsent(t *testing.T) {
	t.Parallel()

	hr := HybridRecommendation{Candidate: Candidate{ItemID: 7, Title: "Heat", Source: SourceContent}}
	data, err := json.Marshal(hr)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "watch_providers") {
		t.Errorf("watch_providers should be omitted: %s", data)
	}
	if !strings.Contains(string(data), `"source":"content"`) {
		t.Errorf("expected source field: %s", data)
	}
}
