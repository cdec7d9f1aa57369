// Cinematch - Movie Recommendation and Streaming Availability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Snapshot is an immutable, internally consistent view of the recommender's
// data. The zero value is not usable; call NewSnapshot or EmptySnapshot.
type Snapshot struct {
	// catalog in source order, first occurrence of each item ID
	catalog   []models.Item
	itemIndex map[int]int // item ID -> position in catalog

	// matrix[user][item] is the liked value; missing means 0
	matrix map[int]map[int]float64

	// userIDs ascending; userPos maps a user ID to its row in similarity
	userIDs []int
	userPos map[int]int

	// likedItems[user] is the user's liked item IDs in ascending order
	likedItems map[int][]int
	likedSet   map[int]map[int]struct{}

	// similarity[i][j] is the cosine similarity of userIDs[i] and userIDs[j]
	similarity [][]float64

	preferences int
	builtAt     time.Time
}

// EmptySnapshot returns a snapshot with no data. Every query on it yields an
// empty result.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil)
}

// NewSnapshot derives the user-item matrix, the similarity matrix and the
// liked sets from the catalog and preference rows.
//
// Duplicate catalog IDs keep their first occurrence. Duplicate preference rows
// for the same (user, item) collapse to the maximum liked value.
func NewSnapshot(items []models.Item, prefs []models.Preference) *Snapshot {
	s := &Snapshot{
		catalog:    make([]models.Item, 0, len(items)),
		itemIndex:  make(map[int]int, len(items)),
		matrix:     make(map[int]map[int]float64),
		userPos:    make(map[int]int),
		likedItems: make(map[int][]int),
		likedSet:   make(map[int]map[int]struct{}),
		builtAt:    time.Now(),
	}

	for _, it := range items {
		if _, dup := s.itemIndex[it.ID]; dup {
			continue
		}
		s.itemIndex[it.ID] = len(s.catalog)
		s.catalog = append(s.catalog, it)
	}

	for _, p := range prefs {
		row, ok := s.matrix[p.UserID]
		if !ok {
			row = make(map[int]float64)
			s.matrix[p.UserID] = row
		}
		v := float64(p.Liked)
		if cur, seen := row[p.ItemID]; !seen || v > cur {
			row[p.ItemID] = v
		}
	}
	s.preferences = len(prefs)

	s.userIDs = make([]int, 0, len(s.matrix))
	for uid := range s.matrix {
		s.userIDs = append(s.userIDs, uid)
	}
	sort.Ints(s.userIDs)
	for i, uid := range s.userIDs {
		s.userPos[uid] = i
	}

	for uid, row := range s.matrix {
		var liked []int
		set := make(map[int]struct{})
		for itemID, v := range row {
			if v == 1 {
				liked = append(liked, itemID)
				set[itemID] = struct{}{}
			}
		}
		sort.Ints(liked)
		s.likedItems[uid] = liked
		s.likedSet[uid] = set
	}

	s.similarity = cosineMatrix(s.userIDs, s.matrix)
	return s
}

// cosineMatrix computes pairwise cosine similarity between user rows. Each
// pair is computed once and mirrored, so the result is exactly symmetric. The
// diagonal is set to 1 for every user, including users whose row is all zeros;
// any other pair involving a zero-norm row is 0.
func cosineMatrix(userIDs []int, matrix map[int]map[int]float64) [][]float64 {
	n := len(userIDs)
	norms := make([]float64, n)
	for i, uid := range userIDs {
		var sq float64
		for _, v := range matrix[uid] {
			sq += v * v
		}
		norms[i] = sq
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
		sim[i][i] = 1
	}

	for i := 0; i < n; i++ {
		a := matrix[userIDs[i]]
		for j := i + 1; j < n; j++ {
			var v float64
			if norms[i] > 0 && norms[j] > 0 {
				b := matrix[userIDs[j]]
				// Iterate the shorter row.
				small, large := a, b
				if len(small) > len(large) {
					small, large = large, small
				}
				var dot float64
				for itemID, x := range small {
					dot += x * large[itemID]
				}
				v = dot / math.Sqrt(norms[i]*norms[j])
			}
			sim[i][j] = v
			sim[j][i] = v
		}
	}
	return sim
}

// Similarity returns the cosine similarity of two users and whether both are
// present in the matrix.
func (s *Snapshot) Similarity(a, b int) (float64, bool) {
	i, ok := s.userPos[a]
	if !ok {
		return 0, false
	}
	j, ok := s.userPos[b]
	if !ok {
		return 0, false
	}
	return s.similarity[i][j], true
}

// HasUser reports whether the user has at least one preference row.
func (s *Snapshot) HasUser(userID int) bool {
	_, ok := s.matrix[userID]
	return ok
}

// Liked reports whether the user liked the item.
func (s *Snapshot) Liked(userID, itemID int) bool {
	_, ok := s.likedSet[userID][itemID]
	return ok
}

// LikedItems returns a copy of the user's liked item IDs in ascending order.
func (s *Snapshot) LikedItems(userID int) []int {
	return append([]int(nil), s.likedItems[userID]...)
}

// Item returns the catalog entry for an ID.
func (s *Snapshot) Item(itemID int) (models.Item, bool) {
	pos, ok := s.itemIndex[itemID]
	if !ok {
		return models.Item{}, false
	}
	return s.catalog[pos], true
}

// IsEmpty reports whether the snapshot lacks the matrix, the catalog or the
// preferences, in which case hybrid recommendations are always empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.matrix) == 0 || len(s.catalog) == 0 || s.preferences == 0
}

// Stats summarizes the snapshot.
func (s *Snapshot) Stats() models.SnapshotStats {
	return models.SnapshotStats{
		Users:       len(s.userIDs),
		Items:       len(s.catalog),
		Preferences: s.preferences,
		BuiltAtUnix: s.builtAt.Unix(),
	}
}
