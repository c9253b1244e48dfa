// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/linksideapp/linkside/internal/feed"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(feed.DefaultConfig(), zerolog.Nop())
	s.now = func() time.Time { return testNow }
	return s
}

func post(id, author string, age time.Duration) feed.Post {
	return feed.Post{ID: id, AuthorID: author, CreatedAt: testNow.Add(-age)}
}

func idsOf(posts []feed.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func equalIDs(a []string, b []feed.Post) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i].ID {
			return false
		}
	}
	return true
}

func TestAddPost_RejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name string
		p    feed.Post
	}{
		{"empty id", feed.Post{AuthorID: "a", CreatedAt: testNow}},
		{"empty author", feed.Post{ID: "p1", CreatedAt: testNow}},
		{"zero timestamp", feed.Post{ID: "p1", AuthorID: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.AddPost(tt.p); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
	if s.PostCount() != 0 {
		t.Errorf("PostCount = %d, want 0", s.PostCount())
	}
}

func TestAddPost_MaintainsAuthorStats(t *testing.T) {
	s := newTestStore(t)

	for i, id := range []string{"p1", "p2", "p3"} {
		if err := s.AddPost(post(id, "a1", time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("AddPost: %v", err)
		}
	}
	// Replacing an existing post must not bump the count.
	if err := s.AddPost(post("p2", "a1", time.Hour)); err != nil {
		t.Fatalf("AddPost replace: %v", err)
	}

	stats, err := s.AuthorStats(context.Background(), []string{"a1"})
	if err != nil {
		t.Fatalf("AuthorStats: %v", err)
	}
	if got := stats["a1"].PostCount; got != 3 {
		t.Errorf("PostCount = %d, want 3", got)
	}
	// Account opened two hours ago with three posts: both thresholds hold.
	if !stats["a1"].IsNewAuthor {
		t.Error("author with 3 fresh posts should classify as new")
	}
}

func TestFriendsCandidates(t *testing.T) {
	s := newTestStore(t)
	window := testNow.AddDate(0, 0, -7)

	mustAdd(t, s,
		post("p1", "followed", 1*time.Hour),
		post("p2", "followed", 3*time.Hour),
		post("p3", "stranger", 2*time.Hour),
		post("p4", "followed", 10*24*time.Hour), // outside window
	)
	s.Follow("viewer", "followed")

	got, err := s.FriendsCandidates(context.Background(), "viewer", window, 10)
	if err != nil {
		t.Fatalf("FriendsCandidates: %v", err)
	}
	if !equalIDs([]string{"p1", "p2"}, got) {
		t.Errorf("got %v, want [p1 p2]", idsOf(got))
	}

	s.Unfollow("viewer", "followed")
	got, err = s.FriendsCandidates(context.Background(), "viewer", window, 10)
	if err != nil {
		t.Fatalf("FriendsCandidates after unfollow: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("after unfollow got %v, want empty", idsOf(got))
	}
}

func TestRecentCandidates_OrderLimitAndTiebreak(t *testing.T) {
	s := newTestStore(t)
	window := testNow.AddDate(0, 0, -7)

	// p2 and p3 share a timestamp; the ID tiebreak keeps order stable.
	mustAdd(t, s,
		post("p1", "a1", 1*time.Hour),
		post("p2", "a2", 2*time.Hour),
		post("p3", "a3", 2*time.Hour),
		post("p4", "a4", 5*time.Hour),
	)

	got, err := s.RecentCandidates(context.Background(), window, 3)
	if err != nil {
		t.Fatalf("RecentCandidates: %v", err)
	}
	if !equalIDs([]string{"p1", "p3", "p2"}, got) {
		t.Errorf("got %v, want [p1 p3 p2]", idsOf(got))
	}
}

func TestTrendingCandidates_OrderedByHotScore(t *testing.T) {
	s := newTestStore(t)
	window := testNow.AddDate(0, 0, -7)

	mustAdd(t, s,
		post("p1", "a1", 1*time.Hour),
		post("p2", "a2", 2*time.Hour),
		post("p3", "a3", 3*time.Hour),
	)
	s.SetPostStats("p1", feed.PostStats{HotScore: 5})
	s.SetPostStats("p2", feed.PostStats{HotScore: 50})
	s.SetPostStats("p3", feed.PostStats{HotScore: 20})

	got, err := s.TrendingCandidates(context.Background(), window, 10)
	if err != nil {
		t.Fatalf("TrendingCandidates: %v", err)
	}
	if !equalIDs([]string{"p2", "p3", "p1"}, got) {
		t.Errorf("got %v, want [p2 p3 p1]", idsOf(got))
	}
}

func TestNewCreatorCandidates(t *testing.T) {
	s := newTestStore(t)
	window := testNow.AddDate(0, 0, -7)

	mustAdd(t, s,
		post("p1", "rookie", 1*time.Hour),
		post("p2", "veteran", 2*time.Hour),
	)
	s.SetAuthorStats("rookie", feed.AuthorStats{
		AccountCreatedAt: testNow.Add(-2 * 24 * time.Hour),
		PostCount:        1,
	})
	s.SetAuthorStats("veteran", feed.AuthorStats{
		AccountCreatedAt: testNow.Add(-400 * 24 * time.Hour),
		PostCount:        50,
	})

	got, err := s.NewCreatorCandidates(context.Background(), window, 10)
	if err != nil {
		t.Fatalf("NewCreatorCandidates: %v", err)
	}
	if !equalIDs([]string{"p1"}, got) {
		t.Errorf("got %v, want [p1]", idsOf(got))
	}

	// Advancing the clock past the age threshold ages the rookie out
	// without any write.
	s.now = func() time.Time { return testNow.Add(20 * 24 * time.Hour) }
	window = s.now().AddDate(0, 0, -30)
	got, err = s.NewCreatorCandidates(context.Background(), window, 10)
	if err != nil {
		t.Fatalf("NewCreatorCandidates: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("aged-out rookie still returned: %v", idsOf(got))
	}
}

func TestDeletePost_SoftDelete(t *testing.T) {
	s := newTestStore(t)
	window := testNow.AddDate(0, 0, -7)

	mustAdd(t, s, post("p1", "a1", time.Hour), post("p2", "a1", 2*time.Hour))
	s.DeletePost("p1")
	s.DeletePost("missing")

	got, err := s.RecentCandidates(context.Background(), window, 10)
	if err != nil {
		t.Fatalf("RecentCandidates: %v", err)
	}
	if !equalIDs([]string{"p2"}, got) {
		t.Errorf("got %v, want [p2]", idsOf(got))
	}
	// The tombstone stays.
	if s.PostCount() != 2 {
		t.Errorf("PostCount = %d, want 2", s.PostCount())
	}
}

func TestPostStats_UnknownResolvesZero(t *testing.T) {
	s := newTestStore(t)
	s.SetPostStats("p1", feed.PostStats{Upvotes: 10, Comments: 2})

	got, err := s.PostStats(context.Background(), []string{"p1", "missing"})
	if err != nil {
		t.Fatalf("PostStats: %v", err)
	}
	if got["p1"].Upvotes != 10 {
		t.Errorf("p1 upvotes = %d, want 10", got["p1"].Upvotes)
	}
	if got["missing"] != (feed.PostStats{}) {
		t.Errorf("missing = %+v, want zero value", got["missing"])
	}
}

func TestAuthorStats_UnknownDefaultsToNewAccount(t *testing.T) {
	s := newTestStore(t)

	got, err := s.AuthorStats(context.Background(), []string{"ghost"})
	if err != nil {
		t.Fatalf("AuthorStats: %v", err)
	}
	as := got["ghost"]
	if !as.IsNewAuthor {
		t.Error("unknown author must default to a new account")
	}
	if as.PostCount != 0 {
		t.Errorf("PostCount = %d, want 0", as.PostCount)
	}
}

func TestCandidates_ContextCanceled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.RecentCandidates(ctx, testNow, 10); err == nil {
		t.Error("want error for canceled context")
	}
	if _, err := s.PostStats(ctx, nil); err == nil {
		t.Error("want error for canceled context")
	}
}

func TestSeedDemoData(t *testing.T) {
	s := newTestStore(t)
	if err := s.SeedDemoData(testNow); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}
	if s.PostCount() == 0 {
		t.Fatal("seed produced no posts")
	}

	window := testNow.AddDate(0, 0, -30)
	friends, err := s.FriendsCandidates(context.Background(), "viewer-demo", window, 100)
	if err != nil {
		t.Fatalf("FriendsCandidates: %v", err)
	}
	if len(friends) == 0 {
		t.Error("demo viewer has no friends candidates")
	}

	rookies, err := s.NewCreatorCandidates(context.Background(), window, 100)
	if err != nil {
		t.Fatalf("NewCreatorCandidates: %v", err)
	}
	if len(rookies) == 0 {
		t.Error("seed produced no new-creator candidates")
	}

	// Seeding twice with the same clock is deterministic: posts replace
	// themselves and counts stay put.
	before := s.PostCount()
	if err := s.SeedDemoData(testNow); err != nil {
		t.Fatalf("SeedDemoData again: %v", err)
	}
	if s.PostCount() != before {
		t.Errorf("reseed changed PostCount from %d to %d", before, s.PostCount())
	}
}

func mustAdd(t *testing.T, s *MemoryStore, posts ...feed.Post) {
	t.Helper()
	for _, p := range posts {
		if err := s.AddPost(p); err != nil {
			t.Fatalf("AddPost(%s): %v", p.ID, err)
		}
	}
}
