// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/linksideapp/linkside/internal/metrics"
)

// CandidateSource fetches raw candidate pools. Implementations must return
// up to limit non-deleted posts newer than windowStart; the engine
// re-checks the deleted flag but does not fetch replacements.
// This is typically implemented by the post store.
type CandidateSource interface {
	// FriendsCandidates returns posts by authors the viewer follows.
	FriendsCandidates(ctx context.Context, viewerID string, windowStart time.Time, limit int) ([]Post, error)

	// RecentCandidates returns recent publicly visible posts.
	RecentCandidates(ctx context.Context, windowStart time.Time, limit int) ([]Post, error)

	// TrendingCandidates returns posts pre-ranked by the external hot score.
	TrendingCandidates(ctx context.Context, windowStart time.Time, limit int) ([]Post, error)

	// NewCreatorCandidates returns posts by authors currently flagged new.
	NewCreatorCandidates(ctx context.Context, windowStart time.Time, limit int) ([]Post, error)
}

// StatsSource fetches externally maintained aggregates. Unknown authors
// resolve to a zero-valued new-account record, never an error.
type StatsSource interface {
	PostStats(ctx context.Context, postIDs []string) (map[string]PostStats, error)
	AuthorStats(ctx context.Context, authorIDs []string) (map[string]AuthorStats, error)
}

// Service glues the external sources to the pure engine: it fetches each
// candidate pool with escalating time windows, batches the stats lookups,
// and runs one ranking pass per request.
type Service struct {
	engine     *Engine
	cfg        *Config
	candidates CandidateSource
	stats      StatsSource
	logger     zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a feed service over an engine and its sources.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(engine *Engine, candidates CandidateSource, stats StatsSource, logger zerolog.Logger) *Service {
	return &Service{
		engine:     engine,
		cfg:        engine.cfg,
		candidates: candidates,
		stats:      stats,
		logger:     logger.With().Str("component", "feed_service").Logger(),
		now:        time.Now,
	}
}

// FriendsFeed serves one page of the viewer's friends feed.
func (s *Service) FriendsFeed(ctx context.Context, viewer ViewerContext, cursor string) (*Page, error) {
	now := s.now()
	posts, err := s.fetchWindowed(ctx, now, "friends", func(ctx context.Context, windowStart time.Time, limit int) ([]Post, error) {
		return s.candidates.FriendsCandidates(ctx, viewer.ViewerID, windowStart, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch friends candidates: %w", err)
	}

	postStats, authorStats, err := s.fetchStats(ctx, posts)
	if err != nil {
		return nil, err
	}

	return s.engine.FriendsPage(FriendsInput{
		Viewer:      viewer,
		Candidates:  posts,
		PostStats:   postStats,
		AuthorStats: authorStats,
		Cursor:      cursor,
		Now:         now,
	})
}

// PublicFeed serves one page of the seeded, mixed public feed.
func (s *Service) PublicFeed(ctx context.Context, viewer ViewerContext, cursor string) (*Page, error) {
	now := s.now()

	recent, err := s.fetchWindowed(ctx, now, "recent", s.candidates.RecentCandidates)
	if err != nil {
		return nil, fmt.Errorf("fetch recent candidates: %w", err)
	}
	trending, err := s.fetchWindowed(ctx, now, "trending", s.candidates.TrendingCandidates)
	if err != nil {
		return nil, fmt.Errorf("fetch trending candidates: %w", err)
	}
	newCreators, err := s.fetchWindowed(ctx, now, "new_creators", s.candidates.NewCreatorCandidates)
	if err != nil {
		return nil, fmt.Errorf("fetch new-creator candidates: %w", err)
	}

	all := make([]Post, 0, len(recent)+len(trending)+len(newCreators))
	all = append(all, recent...)
	all = append(all, trending...)
	all = append(all, newCreators...)
	postStats, authorStats, err := s.fetchStats(ctx, all)
	if err != nil {
		return nil, err
	}

	return s.engine.PublicPage(PublicInput{
		Viewer:      viewer,
		Recent:      recent,
		Trending:    trending,
		NewCreators: newCreators,
		PostStats:   postStats,
		AuthorStats: authorStats,
		Cursor:      cursor,
		Now:         now,
	})
}

type fetchFunc func(ctx context.Context, windowStart time.Time, limit int) ([]Post, error)

// fetchWindowed tries the primary window first and escalates to the
// fallback and extended windows while the pool is too thin to fill a page.
func (s *Service) fetchWindowed(ctx context.Context, now time.Time, bucket string, fetch fetchFunc) ([]Post, error) {
	limit := s.cfg.Limits.FetchLimit
	windows := [...]struct {
		name string
		days int
	}{
		{"primary", s.cfg.Windows.PrimaryDays},
		{"fallback", s.cfg.Windows.FallbackDays},
		{"extended", s.cfg.Windows.ExtendedDays},
	}

	var posts []Post
	var err error
	for i, w := range windows {
		if i > 0 {
			metrics.RecordWindowEscalation(bucket, w.name)
			s.logger.Debug().
				Str("bucket", bucket).
				Str("window", w.name).
				Int("have", len(posts)).
				Msg("widening candidate window")
		}
		windowStart := now.AddDate(0, 0, -w.days)
		posts, err = fetch(ctx, windowStart, limit)
		if err != nil {
			return nil, err
		}
		if len(posts) >= s.cfg.Limits.PageSize {
			break
		}
	}
	return posts, nil
}

// fetchStats batches the per-post and per-author aggregate lookups.
func (s *Service) fetchStats(ctx context.Context, posts []Post) (map[string]PostStats, map[string]AuthorStats, error) {
	postIDs := make([]string, 0, len(posts))
	authorSet := make(map[string]struct{}, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if _, ok := authorSet[p.AuthorID]; !ok {
			authorSet[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	postStats, err := s.stats.PostStats(ctx, postIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch post stats: %w", err)
	}
	authorStats, err := s.stats.AuthorStats(ctx, authorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch author stats: %w", err)
	}
	return postStats, authorStats, nil
}
