// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"testing"
	"time"
)

func scoredAt(id string, total float64, createdAt time.Time) ScoredPost {
	return ScoredPost{
		Post:  Post{ID: id, AuthorID: "author-" + id, CreatedAt: createdAt},
		Score: Score{Total: total},
	}
}

func idsOf(items []ScoredPost) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Post.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
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

func TestSortByScore(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		items []ScoredPost
		want  []string
	}{
		{
			name: "score descending",
			items: []ScoredPost{
				scoredAt("low", 0.1, base),
				scoredAt("high", 0.9, base),
				scoredAt("mid", 0.5, base),
			},
			want: []string{"high", "mid", "low"},
		},
		{
			name: "equal scores break by newer first",
			items: []ScoredPost{
				scoredAt("old", 0.5, base.Add(-2*time.Hour)),
				scoredAt("new", 0.5, base),
			},
			want: []string{"new", "old"},
		},
		{
			name: "equal scores and timestamps break by id descending",
			items: []ScoredPost{
				scoredAt("aaa", 0.5, base),
				scoredAt("zzz", 0.5, base),
				scoredAt("mmm", 0.5, base),
			},
			want: []string{"zzz", "mmm", "aaa"},
		},
		{
			name:  "empty input",
			items: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortByScore(tt.items)
			if got := idsOf(tt.items); !equalIDs(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByScore_Deterministic(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	build := func() []ScoredPost {
		return []ScoredPost{
			scoredAt("b", 0.5, base),
			scoredAt("a", 0.5, base),
			scoredAt("d", 0.7, base.Add(-time.Hour)),
			scoredAt("c", 0.7, base),
			scoredAt("e", 0.5, base),
		}
	}

	first := build()
	SortByScore(first)
	for i := 0; i < 50; i++ {
		again := build()
		SortByScore(again)
		if !equalIDs(idsOf(first), idsOf(again)) {
			t.Fatalf("run %d: order %v differs from %v", i, idsOf(again), idsOf(first))
		}
	}
}
