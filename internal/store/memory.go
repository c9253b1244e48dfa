// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/linksideapp/linkside/internal/feed"
	"github.com/linksideapp/linkside/internal/metrics"
)

// MemoryStore is an in-memory post store implementing feed.CandidateSource
// and feed.StatsSource. It backs the service in development and tests; a
// production deployment swaps in a database-backed implementation behind
// the same interfaces.
//
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	cfg         *feed.Config
	logger      zerolog.Logger
	posts       map[string]feed.Post
	postStats   map[string]feed.PostStats
	authorStats map[string]feed.AuthorStats
	follows     map[string]map[string]struct{}

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an empty store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMemoryStore(cfg *feed.Config, logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		cfg:         cfg,
		logger:      logger.With().Str("component", "store").Logger(),
		posts:       make(map[string]feed.Post),
		postStats:   make(map[string]feed.PostStats),
		authorStats: make(map[string]feed.AuthorStats),
		follows:     make(map[string]map[string]struct{}),
		now:         time.Now,
	}
}

// AddPost inserts or replaces a post and maintains the author's lifetime
// post count and new-author flag.
func (s *MemoryStore) AddPost(p feed.Post) error {
	if !p.Valid() {
		return fmt.Errorf("invalid post %q: missing id, author or timestamp", p.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, replacing := s.posts[p.ID]
	s.posts[p.ID] = p

	if !replacing {
		as := s.authorStats[p.AuthorID]
		if as.AccountCreatedAt.IsZero() {
			as.AccountCreatedAt = p.CreatedAt
		}
		as.PostCount++
		as.IsNewAuthor = s.cfg.IsNewAuthor(as.AccountCreatedAt, as.PostCount, s.now())
		s.authorStats[p.AuthorID] = as
	}

	metrics.StorePosts.Set(float64(len(s.posts)))
	return nil
}

// DeletePost soft-deletes a post. The tombstone stays so that candidate
// fetches racing the delete still see a consistent record.
func (s *MemoryStore) DeletePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return
	}
	p.Deleted = true
	s.posts[id] = p
}

// Follow records that viewerID follows authorID.
func (s *MemoryStore) Follow(viewerID, authorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.follows[viewerID]
	if !ok {
		set = make(map[string]struct{})
		s.follows[viewerID] = set
	}
	set[authorID] = struct{}{}
}

// Unfollow removes a follow edge. Unknown edges are a no-op.
func (s *MemoryStore) Unfollow(viewerID, authorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows[viewerID], authorID)
}

// SetPostStats replaces the engagement aggregates for a post. HotScore is
// maintained by the caller; the store never recomputes it.
func (s *MemoryStore) SetPostStats(postID string, stats feed.PostStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postStats[postID] = stats
}

// SetAuthorStats replaces an author's aggregates, recomputing the
// new-author flag from the configured thresholds.
func (s *MemoryStore) SetAuthorStats(authorID string, stats feed.AuthorStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats.IsNewAuthor = s.cfg.IsNewAuthor(stats.AccountCreatedAt, stats.PostCount, s.now())
	s.authorStats[authorID] = stats
}

// PostCount returns the number of posts held, tombstones included.
func (s *MemoryStore) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// FriendsCandidates returns in-window posts by authors the viewer follows,
// newest first.
func (s *MemoryStore) FriendsCandidates(ctx context.Context, viewerID string, windowStart time.Time, limit int) ([]feed.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("friends_candidates", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	followed := s.follows[viewerID]
	return s.collect(limit, func(p feed.Post) bool {
		if _, ok := followed[p.AuthorID]; !ok {
			return false
		}
		return p.CreatedAt.After(windowStart)
	}, byCreatedAtDesc), nil
}

// RecentCandidates returns in-window posts, newest first.
func (s *MemoryStore) RecentCandidates(ctx context.Context, windowStart time.Time, limit int) ([]feed.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("recent_candidates", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(limit, func(p feed.Post) bool {
		return p.CreatedAt.After(windowStart)
	}, byCreatedAtDesc), nil
}

// TrendingCandidates returns in-window posts ordered by the externally
// maintained hot score.
func (s *MemoryStore) TrendingCandidates(ctx context.Context, windowStart time.Time, limit int) ([]feed.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("trending_candidates", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(limit, func(p feed.Post) bool {
		return p.CreatedAt.After(windowStart)
	}, s.byHotScoreDesc), nil
}

// NewCreatorCandidates returns in-window posts by authors currently
// classified as new, newest first. The flag is re-evaluated at read time so
// authors age out without a write.
func (s *MemoryStore) NewCreatorCandidates(ctx context.Context, windowStart time.Time, limit int) ([]feed.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("new_creator_candidates", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	return s.collect(limit, func(p feed.Post) bool {
		if !p.CreatedAt.After(windowStart) {
			return false
		}
		as, ok := s.authorStats[p.AuthorID]
		if !ok {
			return false
		}
		return s.cfg.IsNewAuthor(as.AccountCreatedAt, as.PostCount, now)
	}, byCreatedAtDesc), nil
}

// PostStats returns engagement aggregates for the requested posts. Posts
// with no recorded engagement resolve to zero counts.
func (s *MemoryStore) PostStats(ctx context.Context, postIDs []string) (map[string]feed.PostStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("post_stats", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]feed.PostStats, len(postIDs))
	for _, id := range postIDs {
		out[id] = s.postStats[id]
	}
	return out, nil
}

// AuthorStats returns aggregates for the requested authors. Unknown
// authors resolve to a fresh new-account record, never an error.
func (s *MemoryStore) AuthorStats(ctx context.Context, authorIDs []string) (map[string]feed.AuthorStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStoreFetch("author_stats", time.Since(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make(map[string]feed.AuthorStats, len(authorIDs))
	for _, id := range authorIDs {
		as, ok := s.authorStats[id]
		if !ok {
			as = feed.AuthorStats{AccountCreatedAt: now, IsNewAuthor: true}
		}
		out[id] = as
	}
	return out, nil
}

// collect gathers non-deleted posts passing the filter, sorts them with
// less and truncates to limit. Callers hold at least the read lock.
func (s *MemoryStore) collect(limit int, filter func(feed.Post) bool, less func(a, b feed.Post) bool) []feed.Post {
	matched := make([]feed.Post, 0, limit)
	for _, p := range s.posts {
		if p.Deleted || !filter(p) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// byCreatedAtDesc orders newest first with the post ID as the final
// tiebreak so map iteration order never leaks into results.
func byCreatedAtDesc(a, b feed.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *MemoryStore) byHotScoreDesc(a, b feed.Post) bool {
	ha, hb := s.postStats[a.ID].HotScore, s.postStats[b.ID].HotScore
	if ha != hb {
		return ha > hb
	}
	return byCreatedAtDesc(a, b)
}
