// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"math"
	"time"
)

// Scorer computes a total score for one candidate. Scoring one post depends
// only on that post, its stats, its author's stats and the viewer context,
// so a candidate set can be scored in any order or concurrently.
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer over an already-validated config.
func NewScorer(cfg *Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the full signal breakdown and total for one candidate.
// friendsFeed selects the friends-feed half-life instead of the public one.
//
// A post created in the future (clock skew) yields a negative age and a time
// component above 1. That is intentional: near-simultaneous posts must not
// be penalized by minor skew, so callers never special-case it.
func (s *Scorer) Score(post Post, stats PostStats, author AuthorStats, viewer ViewerContext, friendsFeed bool, now time.Time) Score {
	halfLife := s.cfg.PublicHalfLifeHours
	if friendsFeed {
		halfLife = s.cfg.FriendsHalfLifeHours
	}

	b := ScoreBreakdown{
		Time:       timeDecay(now.Sub(post.CreatedAt).Hours(), halfLife),
		Engagement: s.engagement(stats),
		NewAuthor:  s.newAuthor(author),
		Geo:        s.geo(post, viewer),
		Course:     s.course(post, viewer),
		Tags:       s.tags(post, viewer),
	}
	return Score{Breakdown: b, Total: b.Sum()}
}

// timeDecay halves the component every halfLife hours: 2^(-age/halfLife).
// This is the dominant signal; it is the only unbounded-decay component, so
// sufficiently old content sinks regardless of the other capped boosts.
func timeDecay(ageHours, halfLife float64) float64 {
	return math.Exp2(-ageHours / halfLife)
}

// engagement is log-scaled to resist runaway viral dominance and hard
// capped. Comments count double. Negative counters (repair jobs, replays)
// are clamped to zero rather than producing NaN.
func (s *Scorer) engagement(stats PostStats) float64 {
	up, com := stats.Upvotes, stats.Comments
	if up < 0 {
		up = 0
	}
	if com < 0 {
		com = 0
	}
	raw := s.cfg.EngagementWeight * math.Log(1+float64(up)+2*float64(com))
	return math.Min(s.cfg.MaxEngagementBoost, raw)
}

func (s *Scorer) newAuthor(author AuthorStats) float64 {
	if author.IsNewAuthor {
		return s.cfg.NewAuthorBoost
	}
	return 0
}

func (s *Scorer) geo(post Post, viewer ViewerContext) float64 {
	if post.CityID != "" && post.CityID == viewer.HomeCityID {
		return s.cfg.SameCityBoost
	}
	return 0
}

func (s *Scorer) course(post Post, viewer ViewerContext) float64 {
	if post.CourseID != "" && post.CourseID == viewer.HomeCourseID {
		return s.cfg.SameCourseBoost
	}
	return 0
}

func (s *Scorer) tags(post Post, viewer ViewerContext) float64 {
	if len(post.Tags) == 0 || len(viewer.InterestTags) == 0 {
		return 0
	}
	interests := make(map[string]struct{}, len(viewer.InterestTags))
	for _, t := range viewer.InterestTags {
		interests[t] = struct{}{}
	}
	overlap := 0
	for _, t := range post.Tags {
		if _, ok := interests[t]; ok {
			overlap++
		}
	}
	return math.Min(s.cfg.MaxTagBoost, s.cfg.TagBoost*float64(overlap))
}

// IsNewAuthor applies the configured thresholds that define a "new" author.
// The stats layer uses it to maintain AuthorStats.IsNewAuthor; the engine
// itself only reads the precomputed flag.
func (c *Config) IsNewAuthor(accountCreatedAt time.Time, postCount int, now time.Time) bool {
	if accountCreatedAt.IsZero() {
		return true
	}
	age := now.Sub(accountCreatedAt)
	return age <= time.Duration(c.NewAuthorMaxAgeDays)*24*time.Hour &&
		postCount <= c.NewAuthorMaxPosts
}
