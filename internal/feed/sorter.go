// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import "sort"

// SortByScore orders scored candidates in place by total score descending,
// then creation time descending, then id descending. The three-level
// tie-break yields a strict total order even when scores and timestamps
// collide, which cursor stability requires: two requests with identical
// inputs must produce byte-identical order.
func SortByScore(items []ScoredPost) {
	sort.Slice(items, func(i, j int) bool {
		return lessScored(items[j], items[i])
	})
}

// lessScored reports whether a orders strictly before b in ascending
// (score, createdAt, id) order.
func lessScored(a, b ScoredPost) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total < b.Score.Total
	}
	if !a.Post.CreatedAt.Equal(b.Post.CreatedAt) {
		return a.Post.CreatedAt.Before(b.Post.CreatedAt)
	}
	return a.Post.ID < b.Post.ID
}
