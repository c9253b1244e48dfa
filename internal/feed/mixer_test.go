// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"fmt"
	"testing"
)

func bucketPosts(prefix string, n int) []ScoredPost {
	items := make([]ScoredPost, n)
	for i := range items {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		items[i] = ScoredPost{Post: Post{ID: id, AuthorID: "author-" + id}}
	}
	return items
}

func TestInterleave_PatternWithInjection(t *testing.T) {
	// seed 0 starts the pattern at slot 0; every 5th emission is a forced
	// new-creators item while supply lasts.
	got := Interleave(bucketPosts("r", 6), bucketPosts("t", 2), bucketPosts("n", 2), 0, 10, 5)

	want := []string{"r1", "r2", "r3", "t1", "n1", "r4", "n2", "r5", "t2", "r6"}
	if !equalIDs(idsOf(got.Items), want) {
		t.Errorf("mix = %v, want %v", idsOf(got.Items), want)
	}
	if got.Drawn != [numBuckets]int{6, 2, 2} {
		t.Errorf("drawn = %v, want [6 2 2]", got.Drawn)
	}
}

func TestInterleave_SeedShiftsStart(t *testing.T) {
	recent := bucketPosts("r", 10)
	trending := bucketPosts("t", 10)
	newCreators := bucketPosts("n", 10)

	// Slot 3 of the pattern is trending.
	got := Interleave(recent, trending, newCreators, 3, 1, 0)
	if want := []string{"t1"}; !equalIDs(idsOf(got.Items), want) {
		t.Errorf("mix = %v, want %v", idsOf(got.Items), want)
	}

	// Seeds wrap modulo the pattern length.
	a := Interleave(recent, trending, newCreators, 2, 10, 0)
	b := Interleave(recent, trending, newCreators, 12, 10, 0)
	if !equalIDs(idsOf(a.Items), idsOf(b.Items)) {
		t.Errorf("seed 2 (%v) and seed 12 (%v) must produce identical mixes",
			idsOf(a.Items), idsOf(b.Items))
	}
}

func TestInterleave_FallbackOnExhaustedBucket(t *testing.T) {
	// No recent posts at all: every recent slot falls through to trending,
	// then new creators.
	got := Interleave(nil, bucketPosts("t", 1), bucketPosts("n", 2), 0, 3, 0)

	want := []string{"t1", "n1", "n2"}
	if !equalIDs(idsOf(got.Items), want) {
		t.Errorf("mix = %v, want %v", idsOf(got.Items), want)
	}
}

func TestInterleave_StopsWhenAllExhausted(t *testing.T) {
	got := Interleave(bucketPosts("r", 2), bucketPosts("t", 1), nil, 0, 20, 5)

	if len(got.Items) != 3 {
		t.Fatalf("emitted %d items, want 3 (total supply)", len(got.Items))
	}
	if got.Drawn != [numBuckets]int{2, 1, 0} {
		t.Errorf("drawn = %v, want [2 1 0]", got.Drawn)
	}
}

func TestInterleave_Empty(t *testing.T) {
	got := Interleave(nil, nil, nil, 7, 20, 5)
	if len(got.Items) != 0 {
		t.Errorf("emitted %d items from empty buckets", len(got.Items))
	}
}

func TestInterleave_InjectionFloor(t *testing.T) {
	// With ample new-creator supply, every 5th emission comes from the
	// new-creators bucket regardless of seed.
	for seed := uint32(0); seed < 10; seed++ {
		got := Interleave(bucketPosts("r", 50), bucketPosts("t", 50), bucketPosts("n", 50), seed, 25, 5)
		for i := 4; i < len(got.Items); i += 5 {
			if id := got.Items[i].Post.ID; id[0] != 'n' {
				t.Errorf("seed %d: emission %d = %s, want a new-creators item", seed, i+1, id)
			}
		}
	}
}

func TestInterleave_Deterministic(t *testing.T) {
	first := Interleave(bucketPosts("r", 30), bucketPosts("t", 10), bucketPosts("n", 10), 42, 20, 5)
	for i := 0; i < 50; i++ {
		again := Interleave(bucketPosts("r", 30), bucketPosts("t", 10), bucketPosts("n", 10), 42, 20, 5)
		if !equalIDs(idsOf(first.Items), idsOf(again.Items)) {
			t.Fatalf("run %d: mix %v differs from %v", i, idsOf(again.Items), idsOf(first.Items))
		}
	}
}

func TestInterleave_PreservesWithinBucketOrder(t *testing.T) {
	got := Interleave(bucketPosts("r", 8), bucketPosts("t", 4), bucketPosts("n", 4), 6, 16, 4)

	next := map[byte]int{'r': 1, 't': 1, 'n': 1}
	for _, it := range got.Items {
		id := it.Post.ID
		want := fmt.Sprintf("%c%d", id[0], next[id[0]])
		if id != want {
			t.Fatalf("bucket %c out of order: got %s, want %s", id[0], id, want)
		}
		next[id[0]]++
	}
}
