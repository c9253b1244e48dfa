// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package models

import (
	"time"

	"github.com/linksideapp/linkside/internal/feed"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, BAD_CURSOR, INTERNAL_ERROR,
// METHOD_NOT_ALLOWED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports process health for the probes.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	StoreReady    bool    `json:"store_ready"`
	PostsHeld     int     `json:"posts_held"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// FeedItemView is the wire form of one ranked feed entry. The score
// breakdown is included so clients can render "why am I seeing this".
type FeedItemView struct {
	PostID    string              `json:"post_id"`
	AuthorID  string              `json:"author_id"`
	CreatedAt time.Time           `json:"created_at"`
	CityID    string              `json:"city_id,omitempty"`
	CourseID  string              `json:"course_id,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
	Score     float64             `json:"score"`
	Breakdown feed.ScoreBreakdown `json:"breakdown"`
}

// FeedPageView is the wire form of one feed page.
type FeedPageView struct {
	Items      []FeedItemView `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

// NewFeedPageView converts an engine page to its wire form.
func NewFeedPageView(page *feed.Page) FeedPageView {
	items := make([]FeedItemView, 0, len(page.Items))
	for _, sp := range page.Items {
		items = append(items, FeedItemView{
			PostID:    sp.Post.ID,
			AuthorID:  sp.Post.AuthorID,
			CreatedAt: sp.Post.CreatedAt,
			CityID:    sp.Post.CityID,
			CourseID:  sp.Post.CourseID,
			Tags:      sp.Post.Tags,
			Score:     sp.Score.Total,
			Breakdown: sp.Score.Breakdown,
		})
	}
	return FeedPageView{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
}
