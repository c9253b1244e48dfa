// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import "time"

// Post is a candidate content item, consumed read-only. Posts are produced
// by the durable store; the engine never mutates or persists them.
type Post struct {
	// ID is the unique post identifier.
	ID string `json:"id"`

	// AuthorID identifies the posting member.
	AuthorID string `json:"author_id"`

	// CreatedAt is the post creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// CityID is the optional city the post is tagged with.
	CityID string `json:"city_id,omitempty"`

	// CourseID is the optional golf course the post is tagged with.
	CourseID string `json:"course_id,omitempty"`

	// Tags is the optional list of interest tags.
	Tags []string `json:"tags,omitempty"`

	// Deleted marks soft-deleted posts. Upstream fetches must already
	// exclude these; the engine drops any that remain.
	Deleted bool `json:"deleted,omitempty"`
}

// Valid reports whether the post carries the fields the ranking pass
// requires. Invalid posts are dropped with a diagnostic, never propagated
// as a request failure.
func (p Post) Valid() bool {
	return p.ID != "" && p.AuthorID != "" && !p.CreatedAt.IsZero()
}

// PostStats holds externally maintained per-post aggregate counters.
type PostStats struct {
	// Upvotes is the lifetime upvote count.
	Upvotes int `json:"upvotes"`

	// Comments is the lifetime comment count.
	Comments int `json:"comments"`

	// LastEngagedAt is the timestamp of the most recent engagement.
	LastEngagedAt time.Time `json:"last_engaged_at"`

	// HotScore is the rolling hotness maintained by the stats layer.
	// Only the external trending fetch ranks by it; the scorer does not.
	HotScore float64 `json:"hot_score"`
}

// AuthorStats holds externally maintained per-author aggregates.
type AuthorStats struct {
	// AccountCreatedAt is when the author joined.
	AccountCreatedAt time.Time `json:"account_created_at"`

	// PostCount is the author's lifetime post count.
	PostCount int `json:"post_count"`

	// IsNewAuthor is recomputed externally from the configured age and
	// post-count thresholds.
	IsNewAuthor bool `json:"is_new_author"`
}

// ViewerContext is the per-request viewer input. Immutable per request.
type ViewerContext struct {
	// ViewerID is the opaque viewer identity.
	ViewerID string `json:"viewer_id"`

	// HomeCityID is the viewer's optional home city.
	HomeCityID string `json:"home_city_id,omitempty"`

	// HomeCourseID is the viewer's optional home course.
	HomeCourseID string `json:"home_course_id,omitempty"`

	// InterestTags is the viewer's interest tag set, possibly empty.
	InterestTags []string `json:"interest_tags,omitempty"`
}

// ScoreBreakdown is the six independent signal components of a score.
type ScoreBreakdown struct {
	// Time is the half-life decay component, in (0, 1] for non-negative
	// ages. Clock skew can push it slightly above 1; that is allowed.
	Time float64 `json:"time"`

	// Engagement is the capped log-scaled engagement component.
	Engagement float64 `json:"engagement"`

	// NewAuthor is the flat new-author fairness bonus.
	NewAuthor float64 `json:"new_author"`

	// Geo is the same-city bonus.
	Geo float64 `json:"geo"`

	// Course is the same-home-course bonus.
	Course float64 `json:"course"`

	// Tags is the capped interest-tag overlap bonus.
	Tags float64 `json:"tags"`
}

// Sum returns the arithmetic sum of all components.
func (b ScoreBreakdown) Sum() float64 {
	return b.Time + b.Engagement + b.NewAuthor + b.Geo + b.Course + b.Tags
}

// Score pairs a breakdown with its total. Total is always the sum of the
// breakdown components; it is computed once per candidate per ranking pass
// and never recomputed at sort time.
type Score struct {
	Breakdown ScoreBreakdown `json:"breakdown"`
	Total     float64        `json:"total"`
}

// ScoredPost pairs a candidate with its score for one ranking pass.
// Never mutated after creation within that pass.
type ScoredPost struct {
	Post  Post  `json:"post"`
	Score Score `json:"score"`
}

// Page is one delivered slice of a feed.
type Page struct {
	// Items is the ordered page content.
	Items []ScoredPost `json:"items"`

	// NextCursor is the opaque token for the next page. Empty when the
	// feed is exhausted.
	NextCursor string `json:"next_cursor,omitempty"`

	// HasMore reports whether more items remain beyond this page.
	HasMore bool `json:"has_more"`
}
