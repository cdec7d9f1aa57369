// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/cinematch/internal/models"
)

// neighbor is another user ranked by similarity to the target.
type neighbor struct {
	userID     int
	similarity float64
}

// neighbors returns every other user ordered by descending similarity.
// Ties keep ascending user ID order.
func (s *Snapshot) neighbors(userID int) []neighbor {
	pos := s.userPos[userID]
	row := s.similarity[pos]

	out := make([]neighbor, 0, len(s.userIDs)-1)
	for j, other := range s.userIDs {
		if other == userID {
			continue
		}
		out = append(out, neighbor{userID: other, similarity: row[j]})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].similarity > out[b].similarity
	})
	return out
}

// RecommendBySimilarity returns up to k items liked by users similar to
// userID that userID has not liked.
//
// Neighbours are visited from most to least similar and only while their
// similarity is positive. Collection stops once at least 2k raw candidates
// are gathered; the list is then deduplicated by item ID and cut to k.
// Items missing from the catalog are skipped.
func (s *Snapshot) RecommendBySimilarity(userID, k int) []models.Candidate {
	if k <= 0 || len(s.matrix) == 0 || !s.HasUser(userID) {
		return []models.Candidate{}
	}

	raw := make([]models.Candidate, 0, 2*k)
	for _, nb := range s.neighbors(userID) {
		if nb.similarity <= 0 {
			// Sorted descending: nothing positive remains.
			break
		}
		for _, itemID := range s.likedItems[nb.userID] {
			if s.Liked(userID, itemID) {
				continue
			}
			item, ok := s.Item(itemID)
			if !ok {
				continue
			}
			raw = append(raw, models.Candidate{
				ItemID: item.ID,
				Title:  item.Title,
				Genre:  item.Genre,
				Reason: fmt.Sprintf("liked by similar user (ID: %d, similarity: %.2f)", nb.userID, nb.similarity),
				Score:  nb.similarity,
				Source: models.SourceCollaborative,
			})
		}
		if len(raw) >= 2*k {
			break
		}
	}

	return firstByItem(raw, k)
}

// RecommendByContent returns up to k unliked catalog items whose genre matches
// one of the user's liked items.
//
// Preferred genres are taken from the liked items in catalog order, each genre
// once. Genres are exhausted in that order, and items within a genre follow
// catalog order.
func (s *Snapshot) RecommendByContent(userID, k int) []models.Candidate {
	liked := s.likedSet[userID]
	if k <= 0 || len(s.catalog) == 0 || len(liked) == 0 {
		return []models.Candidate{}
	}

	var genres []string
	seenGenre := make(map[string]struct{})
	for _, it := range s.catalog {
		if _, ok := liked[it.ID]; !ok {
			continue
		}
		if _, ok := seenGenre[it.Genre]; ok {
			continue
		}
		seenGenre[it.Genre] = struct{}{}
		genres = append(genres, it.Genre)
	}

	out := make([]models.Candidate, 0, k)
	for _, genre := range genres {
		for _, it := range s.catalog {
			if len(out) >= k {
				return out
			}
			if it.Genre != genre {
				continue
			}
			if _, ok := liked[it.ID]; ok {
				continue
			}
			out = append(out, models.Candidate{
				ItemID: it.ID,
				Title:  it.Title,
				Genre:  it.Genre,
				Reason: fmt.Sprintf("similar to your genre preferences (%s)", genre),
				Source: models.SourceContent,
			})
		}
	}
	return out
}

// GetRecommendations merges collaborative and content candidates for userID
// and returns at most n of them.
//
// Each strategy is asked for 2n candidates. Collaborative candidates come
// first; on an item ID collision the earlier candidate is kept. Items the user
// already liked are removed before truncation. Fewer than n results are
// returned as-is.
func (s *Snapshot) GetRecommendations(userID, n int) []models.Candidate {
	return s.recommend(userID, n, nil)
}

func (s *Snapshot) recommend(userID, n int, keep func(models.Candidate) bool) []models.Candidate {
	if n <= 0 || s.IsEmpty() {
		return []models.Candidate{}
	}

	collaborative := s.RecommendBySimilarity(userID, 2*n)
	content := s.RecommendByContent(userID, 2*n)

	merged := make([]models.Candidate, 0, len(collaborative)+len(content))
	merged = append(merged, collaborative...)
	merged = append(merged, content...)

	out := make([]models.Candidate, 0, n)
	seen := make(map[int]struct{}, len(merged))
	for _, c := range merged {
		if _, dup := seen[c.ItemID]; dup {
			continue
		}
		seen[c.ItemID] = struct{}{}
		if s.Liked(userID, c.ItemID) {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}

// firstByItem drops later duplicates of an item ID and keeps at most k.
func firstByItem(cands []models.Candidate, k int) []models.Candidate {
	out := make([]models.Candidate, 0, min(k, len(cands)))
	seen := make(map[int]struct{}, len(cands))
	for _, c := range cands {
		if len(out) == k {
			break
		}
		if _, dup := seen[c.ItemID]; dup {
			continue
		}
		seen[c.ItemID] = struct{}{}
		out = append(out, c)
	}
	return out
}
