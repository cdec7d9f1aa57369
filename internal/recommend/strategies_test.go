// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

func itemIDs(cands []models.Candidate) []int {
	ids := make([]int, len(cands))
	for i, c := range cands {
		ids[i] = c.ItemID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecommendBySimilarity(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(testCatalog(), testPreferences())

	tests := []struct {
		name    string
		userID  int
		k       int
		wantIDs []int
	}{
		{"nearest neighbour's unliked item", 1, 5, []int{4}},
		{"absent user", 999, 5, []int{}},
		{"zero k", 1, 0, []int{}},
		{"no positive neighbours", 4, 5, []int{}},
		{"all-zero row", 5, 5, []int{}},
		{"neighbour adds nothing new", 2, 5, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := s.RecommendBySimilarity(tt.userID, tt.k)
			if got == nil {
				t.Fatal("result must be non-nil")
			}
			if !equalInts(itemIDs(got), tt.wantIDs) {
				t.Errorf("RecommendBySimilarity(%d,%d) = %v, want %v", tt.userID, tt.k, itemIDs(got), tt.wantIDs)
			}
		})
	}

	got := s.RecommendBySimilarity(1, 5)
	if got[0].Reason != "liked by similar user (ID: 2, similarity: 0.82)" {
		t.Errorf("Reason = %q", got[0].Reason)
	}
	if got[0].Source != models.SourceCollaborative || got[0].Title != "Alien" || got[0].Genre != "SciFi" {
		t.Errorf("candidate = %+v", got[0])
	}
}

func TestRecommendBySimilarity_StopsAtTwiceK(t *testing.T) {
	t.Parallel()

	var items []models.Item
	for i := 1; i <= 20; i++ {
		items = append(items, models.Item{ID: i, Title: "T", Genre: "G"})
	}
	prefs := []models.Preference{
		{UserID: 1, ItemID: 1, Liked: 1},
		// Neighbour 2 is closest and contributes 4 new items.
		{UserID: 2, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 2, Liked: 1},
		{UserID: 2, ItemID: 3, Liked: 1},
		{UserID: 2, ItemID: 4, Liked: 1},
		{UserID: 2, ItemID: 5, Liked: 1},
		// Neighbour 3 is less similar; its items must not be reached for k=2.
		{UserID: 3, ItemID: 1, Liked: 1},
		{UserID: 3, ItemID: 10, Liked: 1},
		{UserID: 3, ItemID: 11, Liked: 1},
		{UserID: 3, ItemID: 12, Liked: 1},
		{UserID: 3, ItemID: 13, Liked: 1},
		{UserID: 3, ItemID: 14, Liked: 1},
		{UserID: 3, ItemID: 15, Liked: 1},
	}
	s := NewSnapshot(items, prefs)

	got := s.RecommendBySimilarity(1, 2)
	if !equalInts(itemIDs(got), []int{2, 3}) {
		t.Errorf("k=2 = %v, want [2 3]", itemIDs(got))
	}

	got = s.RecommendBySimilarity(1, 3)
	// 4 raw candidates < 6, so neighbour 3 is visited too; head(3) is still neighbour 2's.
	if !equalInts(itemIDs(got), []int{2, 3, 4}) {
		t.Errorf("k=3 = %v, want [2 3 4]", itemIDs(got))
	}
}

func TestRecommendBySimilarity_SkipsItemsOutsideCatalog(t *testing.T) {
	t.Parallel()

	items := []models.Item{{ID: 1, Title: "A", Genre: "Action"}, {ID: 3, Title: "C", Genre: "Drama"}}
	prefs := []models.Preference{
		{UserID: 1, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 2, Liked: 1}, // not in catalog
		{UserID: 2, ItemID: 3, Liked: 1},
	}
	s := NewSnapshot(items, prefs)

	if got := s.RecommendBySimilarity(1, 5); !equalInts(itemIDs(got), []int{3}) {
		t.Errorf("got %v, want [3]", itemIDs(got))
	}
}

func TestRecommendBySimilarity_IdenticalUsers(t *testing.T) {
	t.Parallel()

	items := []models.Item{{ID: 1, Title: "A", Genre: "Action"}, {ID: 2, Title: "B", Genre: "Drama"}}
	prefs := []models.Preference{
		{UserID: 1, ItemID: 1, Liked: 1},
		{UserID: 1, ItemID: 2, Liked: 1},
		{UserID: 2, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 2, Liked: 1},
	}
	s := NewSnapshot(items, prefs)

	if sim, _ := s.Similarity(1, 2); sim != 1 {
		t.Errorf("identical liked sets: similarity = %v, want exactly 1", sim)
	}
	if got := s.RecommendBySimilarity(1, 5); len(got) != 0 {
		t.Errorf("identical liked sets leave nothing to recommend, got %v", itemIDs(got))
	}
}

func TestRecommendBySimilarity_ReasonRoundsToOne(t *testing.T) {
	t.Parallel()

	// 400 shared likes plus one extra: similarity 400/sqrt(400*401) ~ 0.99875.
	var items []models.Item
	var prefs []models.Preference
	for i := 1; i <= 401; i++ {
		items = append(items, models.Item{ID: i, Title: "T", Genre: "G"})
		prefs = append(prefs, models.Preference{UserID: 2, ItemID: i, Liked: 1})
		if i <= 400 {
			prefs = append(prefs, models.Preference{UserID: 1, ItemID: i, Liked: 1})
		}
	}
	s := NewSnapshot(items, prefs)

	got := s.RecommendBySimilarity(1, 5)
	if len(got) != 1 || got[0].ItemID != 401 {
		t.Fatalf("got %v, want [401]", itemIDs(got))
	}
	if !strings.Contains(got[0].Reason, "similarity: 1.00") {
		t.Errorf("Reason = %q, want similarity 1.00", got[0].Reason)
	}
}

func TestRecommendByContent(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(testCatalog(), testPreferences())

	tests := []struct {
		name    string
		userID  int
		k       int
		wantIDs []int
	}{
		// User 1 likes Action (1,2); Ronin is the only unliked Action title.
		{"genre match", 1, 5, []int{7}},
		// User 2 likes Action and SciFi, discovered in catalog order.
		{"genre discovery order", 2, 5, []int{7, 8}},
		{"truncated to k", 2, 1, []int{7}},
		{"unknown user", 999, 5, []int{}},
		{"user without likes", 5, 5, []int{}},
		{"zero k", 1, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := s.RecommendByContent(tt.userID, tt.k)
			if !equalInts(itemIDs(got), tt.wantIDs) {
				t.Errorf("RecommendByContent(%d,%d) = %v, want %v", tt.userID, tt.k, itemIDs(got), tt.wantIDs)
			}
		})
	}

	got := s.RecommendByContent(2, 5)
	if got[1].Reason != "similar to your genre preferences (SciFi)" {
		t.Errorf("Reason = %q", got[1].Reason)
	}
	if got[0].Source != models.SourceContent || got[0].Score != 0 {
		t.Errorf("content candidate = %+v", got[0])
	}
}

func TestRecommendByContent_NoUnlikedInPreferredGenres(t *testing.T) {
	t.Parallel()

	items := []models.Item{{ID: 1, Title: "A", Genre: "Action"}, {ID: 2, Title: "B", Genre: "Drama"}}
	prefs := []models.Preference{{UserID: 1, ItemID: 1, Liked: 1}}
	s := NewSnapshot(items, prefs)

	if got := s.RecommendByContent(1, 5); len(got) != 0 {
		t.Errorf("got %v, want []", itemIDs(got))
	}
}

func TestGetRecommendations_MergeOrder(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ID: 1, Title: "A", Genre: "Action"},
		{ID: 2, Title: "B", Genre: "Action"},
		{ID: 3, Title: "C", Genre: "Action"},
	}
	prefs := []models.Preference{
		{UserID: 1, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 1, Liked: 1},
		{UserID: 2, ItemID: 3, Liked: 1},
	}
	s := NewSnapshot(items, prefs)

	got := s.GetRecommendations(1, 5)
	// Collaborative first (3), then content adds 2; 3 from content is a duplicate.
	if !equalInts(itemIDs(got), []int{3, 2}) {
		t.Fatalf("got %v, want [3 2]", itemIDs(got))
	}
	if got[0].Source != models.SourceCollaborative {
		t.Errorf("collision must keep the collaborative candidate, got %s", got[0].Source)
	}
	if got[1].Source != models.SourceContent {
		t.Errorf("second candidate source = %s, want content", got[1].Source)
	}
}

func TestGetRecommendations_Invariants(t *testing.T) {
	t.Parallel()

	snapshots := []*Snapshot{
		NewSnapshot(testCatalog(), testPreferences()),
		randomSnapshot(1, 30, 25),
		randomSnapshot(7, 60, 12),
	}

	for si, s := range snapshots {
		for _, userID := range append(append([]int{}, s.userIDs...), 9999) {
			for n := 0; n <= 8; n++ {
				got := s.GetRecommendations(userID, n)

				if len(got) > n {
					t.Fatalf("snapshot %d user %d n=%d: %d results exceed n", si, userID, n, len(got))
				}
				seen := make(map[int]bool)
				for _, c := range got {
					if s.Liked(userID, c.ItemID) {
						t.Fatalf("snapshot %d user %d: liked item %d returned", si, userID, c.ItemID)
					}
					if seen[c.ItemID] {
						t.Fatalf("snapshot %d user %d: duplicate item %d", si, userID, c.ItemID)
					}
					seen[c.ItemID] = true
				}

				// When short, the result is every unique unliked candidate.
				if len(got) < n {
					pool := make(map[int]bool)
					for _, c := range s.RecommendBySimilarity(userID, 2*n) {
						if !s.Liked(userID, c.ItemID) {
							pool[c.ItemID] = true
						}
					}
					for _, c := range s.RecommendByContent(userID, 2*n) {
						if !s.Liked(userID, c.ItemID) {
							pool[c.ItemID] = true
						}
					}
					if len(got) != len(pool) {
						t.Fatalf("snapshot %d user %d n=%d: got %d, want all %d unique candidates",
							si, userID, n, len(got), len(pool))
					}
				}
			}
		}
	}
}
