// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeCandidates serves fixed pools and records the window starts it was
// asked for, so tests can observe window escalation.
type fakeCandidates struct {
	friends     []Post
	recent      []Post
	trending    []Post
	newCreators []Post

	friendsWindows []time.Time
	err            error
}

func (f *fakeCandidates) window(posts []Post, windowStart time.Time, limit int) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.CreatedAt.After(windowStart) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func (f *fakeCandidates) FriendsCandidates(_ context.Context, _ string, windowStart time.Time, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.friendsWindows = append(f.friendsWindows, windowStart)
	return f.window(f.friends, windowStart, limit), nil
}

func (f *fakeCandidates) RecentCandidates(_ context.Context, windowStart time.Time, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.window(f.recent, windowStart, limit), nil
}

func (f *fakeCandidates) TrendingCandidates(_ context.Context, windowStart time.Time, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.window(f.trending, windowStart, limit), nil
}

func (f *fakeCandidates) NewCreatorCandidates(_ context.Context, windowStart time.Time, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.window(f.newCreators, windowStart, limit), nil
}

type fakeStats struct {
	posts   map[string]PostStats
	authors map[string]AuthorStats
	err     error
}

func (f *fakeStats) PostStats(_ context.Context, postIDs []string) (map[string]PostStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]PostStats, len(postIDs))
	for _, id := range postIDs {
		out[id] = f.posts[id]
	}
	return out, nil
}

func (f *fakeStats) AuthorStats(_ context.Context, authorIDs []string) (map[string]AuthorStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]AuthorStats, len(authorIDs))
	for _, id := range authorIDs {
		out[id] = f.authors[id]
	}
	return out, nil
}

func newTestService(t *testing.T, cfg *Config, candidates *fakeCandidates, stats *fakeStats) *Service {
	t.Helper()
	engine := newTestEngine(t, cfg)
	svc := NewService(engine, candidates, stats, zerolog.Nop())
	svc.now = func() time.Time { return scoreNow }
	return svc
}

func TestService_FriendsFeed(t *testing.T) {
	candidates := &fakeCandidates{friends: timeline("p", 8, scoreNow.Add(-time.Hour))}
	svc := newTestService(t, smallConfig(), candidates, &fakeStats{})

	page, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, "")
	if err != nil {
		t.Fatalf("FriendsFeed: %v", err)
	}
	if want := []string{"p1", "p2", "p3", "p4", "p5"}; !equalIDs(idsOf(page.Items), want) {
		t.Errorf("page = %v, want %v", idsOf(page.Items), want)
	}
	if !page.HasMore {
		t.Error("want HasMore with 8 candidates and page size 5")
	}
}

func TestService_FriendsFeed_WindowEscalation(t *testing.T) {
	cfg := smallConfig()
	// Three posts inside the primary window, the rest only in the extended
	// one; a full page needs the escalation.
	friends := timeline("old", 8, scoreNow.AddDate(0, 0, -(cfg.Windows.FallbackDays+10)))
	friends = append(friends, timeline("new", 3, scoreNow.Add(-time.Hour))...)

	candidates := &fakeCandidates{friends: friends}
	svc := newTestService(t, cfg, candidates, &fakeStats{})

	page, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, "")
	if err != nil {
		t.Fatalf("FriendsFeed: %v", err)
	}

	if len(candidates.friendsWindows) != 3 {
		t.Fatalf("fetched %d windows, want 3 (primary, fallback, extended)", len(candidates.friendsWindows))
	}
	for i := 1; i < len(candidates.friendsWindows); i++ {
		if !candidates.friendsWindows[i].Before(candidates.friendsWindows[i-1]) {
			t.Errorf("window %d start %s does not widen over %s",
				i, candidates.friendsWindows[i], candidates.friendsWindows[i-1])
		}
	}
	if want := []string{"new1", "new2", "new3", "old1", "old2"}; !equalIDs(idsOf(page.Items), want) {
		t.Errorf("page = %v, want %v", idsOf(page.Items), want)
	}
}

func TestService_FriendsFeed_StopsAtPrimaryWindowWhenFull(t *testing.T) {
	candidates := &fakeCandidates{friends: timeline("p", 8, scoreNow.Add(-time.Hour))}
	svc := newTestService(t, smallConfig(), candidates, &fakeStats{})

	if _, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, ""); err != nil {
		t.Fatalf("FriendsFeed: %v", err)
	}
	if len(candidates.friendsWindows) != 1 {
		t.Errorf("fetched %d windows, want 1 when the primary window fills the page", len(candidates.friendsWindows))
	}
}

func TestService_FriendsFeed_SourceError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	svc := newTestService(t, smallConfig(), &fakeCandidates{err: wantErr}, &fakeStats{})

	if _, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, ""); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestService_FriendsFeed_StatsError(t *testing.T) {
	wantErr := errors.New("stats unavailable")
	candidates := &fakeCandidates{friends: timeline("p", 3, scoreNow.Add(-time.Hour))}
	svc := newTestService(t, smallConfig(), candidates, &fakeStats{err: wantErr})

	if _, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, ""); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestService_FriendsFeed_EngagementChangesOrder(t *testing.T) {
	// A heavily engaged older post outranks a slightly newer quiet one.
	newest := scoreNow.Add(-time.Hour)
	candidates := &fakeCandidates{friends: []Post{
		{ID: "quiet", AuthorID: "alice", CreatedAt: newest},
		{ID: "busy", AuthorID: "bob", CreatedAt: newest.Add(-2 * time.Hour)},
	}}
	stats := &fakeStats{posts: map[string]PostStats{
		"busy": {Upvotes: 500, Comments: 80},
	}}
	svc := newTestService(t, smallConfig(), candidates, stats)

	page, err := svc.FriendsFeed(context.Background(), ViewerContext{ViewerID: "v"}, "")
	if err != nil {
		t.Fatalf("FriendsFeed: %v", err)
	}
	if want := []string{"busy", "quiet"}; !equalIDs(idsOf(page.Items), want) {
		t.Errorf("page = %v, want %v", idsOf(page.Items), want)
	}
}

func TestService_PublicFeed(t *testing.T) {
	now := scoreNow
	candidates := &fakeCandidates{
		recent:      timeline("r", 6, now.Add(-time.Hour)),
		trending:    timeline("t", 3, now.Add(-2*time.Hour)),
		newCreators: timeline("n", 3, now.Add(-3*time.Hour)),
	}
	svc := newTestService(t, smallConfig(), candidates, &fakeStats{})
	viewer := ViewerContext{ViewerID: "viewer-1"}

	seen := make(map[string]bool)
	cursor := ""
	for pageNum := 1; ; pageNum++ {
		page, err := svc.PublicFeed(context.Background(), viewer, cursor)
		if err != nil {
			t.Fatalf("page %d: %v", pageNum, err)
		}
		for _, it := range page.Items {
			if seen[it.Post.ID] {
				t.Fatalf("page %d repeats %s", pageNum, it.Post.ID)
			}
			seen[it.Post.ID] = true
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
		if pageNum > 10 {
			t.Fatal("pagination did not terminate")
		}
	}
	if len(seen) != 12 {
		t.Errorf("delivered %d distinct items, want 12", len(seen))
	}
}

func TestService_PublicFeed_SourceError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	svc := newTestService(t, smallConfig(), &fakeCandidates{err: wantErr}, &fakeStats{})

	if _, err := svc.PublicFeed(context.Background(), ViewerContext{ViewerID: "v"}, ""); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}
