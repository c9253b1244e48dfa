// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

// Dedupe drops candidates whose id is in seen, preserving relative order.
// It is idempotent: deduping an already-deduped sequence against the same
// seen set is a no-op.
func Dedupe(items []ScoredPost, seen map[string]struct{}) []ScoredPost {
	if len(seen) == 0 {
		return items
	}
	out := make([]ScoredPost, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Post.ID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

// DedupeWithin collapses duplicate ids within a single sequence, keeping
// the first occurrence. The same post can arrive through more than one
// bucket, e.g. a trending post that is also recent.
func DedupeWithin(items []ScoredPost) []ScoredPost {
	seen := make(map[string]struct{}, len(items))
	out := make([]ScoredPost, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Post.ID]; ok {
			continue
		}
		seen[it.Post.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
