// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/linksideapp/linkside/internal/metrics"
)

// scoreParallelThreshold is the candidate count above which scoring fans
// out across goroutines. Scoring is order-independent; the sorter imposes
// the final order afterward.
const scoreParallelThreshold = 64

// scoreWorkers bounds the scoring fan-out per ranking pass.
const scoreWorkers = 4

// Engine runs the pure ranking pipeline: it consumes already-fetched
// candidates and aggregate stats and produces one deterministic page. It
// performs no I/O and holds no state between calls beyond the immutable
// config, so it is safe for concurrent use.
type Engine struct {
	cfg    *Config
	scorer *Scorer
	logger zerolog.Logger
}

// NewEngine creates an engine, validating the config. Config errors are
// fatal at process start and never surfaced per-request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		scorer: NewScorer(cfg),
		logger: logger.With().Str("component", "feed").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}

// FriendsInput carries everything one friends-feed ranking pass consumes.
type FriendsInput struct {
	Viewer      ViewerContext
	Candidates  []Post
	PostStats   map[string]PostStats
	AuthorStats map[string]AuthorStats
	Cursor      string
	Now         time.Time
}

// PublicInput carries everything one public-feed ranking pass consumes.
type PublicInput struct {
	Viewer      ViewerContext
	Recent      []Post
	Trending    []Post
	NewCreators []Post
	PostStats   map[string]PostStats
	AuthorStats map[string]AuthorStats
	Cursor      string
	Now         time.Time
}

// FriendsPage assembles one page of the friends feed: score all candidates,
// sort, enforce author diversity, slice, and emit the (createdAt, id)
// cursor of the last delivered item. The friends variant is deliberately a
// single-stream pipeline; no bucket mixing applies.
func (e *Engine) FriendsPage(in FriendsInput) (*Page, error) {
	cursor, err := DecodeFriendsCursor(in.Cursor)
	if err != nil {
		return nil, fmt.Errorf("friends cursor: %w", err)
	}

	candidates := e.sanitize(in.Candidates, "friends")
	if !cursor.IsZero() {
		undelivered := candidates[:0]
		for _, p := range candidates {
			if cursor.After(p) {
				undelivered = append(undelivered, p)
			}
		}
		candidates = undelivered
	}

	scored := e.scoreAll(candidates, in.PostStats, in.AuthorStats, in.Viewer, true, in.Now)
	SortByScore(scored)
	ordered := EnforceAuthorDiversity(scored, e.cfg.MaxConsecutiveSameAuthor)

	page := &Page{Items: ordered}
	if len(ordered) > e.cfg.Limits.PageSize {
		page.Items = ordered[:e.cfg.Limits.PageSize]
		page.HasMore = true
	}
	if page.HasMore && len(page.Items) > 0 {
		last := page.Items[len(page.Items)-1]
		token, err := EncodeFriendsCursor(FriendsCursor{
			LastCreatedAt: last.Post.CreatedAt,
			LastID:        last.Post.ID,
		})
		if err != nil {
			return nil, err
		}
		page.NextCursor = token
	}
	return page, nil
}

// PublicPage assembles one page of the public feed: score and sort each
// bucket, interleave them with the per-viewer per-day seed, enforce author
// diversity over the merged stream, strip already-delivered ids, and
// advance the cursor. A cursor from a previous calendar day resets to page
// one.
func (e *Engine) PublicPage(in PublicInput) (*Page, error) {
	dayKey := DayKey(in.Now)
	cursor, err := DecodePublicCursor(in.Cursor)
	if err != nil {
		return nil, fmt.Errorf("public cursor: %w", err)
	}
	if cursor.DayKey != dayKey {
		if cursor.DayKey != "" {
			metrics.FeedCursorResets.Inc()
			e.logger.Debug().
				Str("viewer_id", in.Viewer.ViewerID).
				Str("cursor_day", cursor.DayKey).
				Str("today", dayKey).
				Msg("public cursor from previous day, starting fresh")
		}
		cursor = NewPublicCursor(dayKey)
	}

	buckets := [numBuckets][]ScoredPost{
		e.rankBucket(in.Recent, in, BucketRecent),
		e.rankBucket(in.Trending, in, BucketTrending),
		e.rankBucket(in.NewCreators, in, BucketNewCreators),
	}

	remaining := 0
	for b := range buckets {
		if off := cursor.Offsets[b]; off < len(buckets[b]) {
			buckets[b] = buckets[b][off:]
		} else {
			buckets[b] = nil
		}
		remaining += len(buckets[b])
	}

	seed := Seed(in.Viewer.ViewerID, dayKey)
	mix := Interleave(buckets[BucketRecent], buckets[BucketTrending], buckets[BucketNewCreators],
		seed, e.cfg.Limits.PageSize, e.cfg.Buckets.InjectionInterval)

	merged := DedupeWithin(mix.Items)
	merged = EnforceAuthorDiversity(merged, e.cfg.MaxConsecutiveSameAuthor)
	items := Dedupe(merged, cursor.SeenSet())

	drawnTotal := 0
	for _, n := range mix.Drawn {
		drawnTotal += n
	}

	page := &Page{Items: items, HasMore: remaining > drawnTotal}
	if page.HasMore {
		delivered := make([]string, len(items))
		for i, it := range items {
			delivered[i] = it.Post.ID
		}
		token, err := EncodePublicCursor(cursor.Advance(mix.Drawn, delivered, e.cfg.Limits.SeenIDCap))
		if err != nil {
			return nil, err
		}
		page.NextCursor = token
	}
	return page, nil
}

// rankBucket filters, scores and sorts one candidate bucket.
func (e *Engine) rankBucket(posts []Post, in PublicInput, b Bucket) []ScoredPost {
	clean := e.sanitize(posts, b.String())
	scored := e.scoreAll(clean, in.PostStats, in.AuthorStats, in.Viewer, false, in.Now)
	SortByScore(scored)
	return scored
}

// sanitize drops soft-deleted and malformed candidates. Upstream fetches
// must already exclude deleted posts; anything that slips through is
// logged and skipped rather than failing the page.
func (e *Engine) sanitize(posts []Post, source string) []Post {
	out := make([]Post, 0, len(posts))
	var deleted, malformed int
	for _, p := range posts {
		if p.Deleted {
			deleted++
			e.logger.Warn().Str("post_id", p.ID).Str("source", source).
				Msg("soft-deleted candidate reached ranking, dropping")
			continue
		}
		if !p.Valid() {
			malformed++
			e.logger.Warn().Str("post_id", p.ID).Str("source", source).
				Msg("malformed candidate, dropping")
			continue
		}
		out = append(out, p)
	}
	metrics.RecordCandidates(source, len(out), deleted, malformed)
	return out
}

// scoreAll scores every candidate exactly once. Large sets fan out over a
// fixed worker pool; workers write by index so the result is identical to
// the sequential pass.
func (e *Engine) scoreAll(posts []Post, postStats map[string]PostStats, authorStats map[string]AuthorStats, viewer ViewerContext, friendsFeed bool, now time.Time) []ScoredPost {
	scored := make([]ScoredPost, len(posts))
	scoreAt := func(i int) {
		p := posts[i]
		scored[i] = ScoredPost{
			Post:  p,
			Score: e.scorer.Score(p, postStats[p.ID], authorStats[p.AuthorID], viewer, friendsFeed, now),
		}
	}

	if len(posts) < scoreParallelThreshold {
		for i := range posts {
			scoreAt(i)
		}
		return scored
	}

	var wg sync.WaitGroup
	for w := 0; w < scoreWorkers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(posts); i += scoreWorkers {
				scoreAt(i)
			}
		}(w)
	}
	wg.Wait()
	return scored
}
