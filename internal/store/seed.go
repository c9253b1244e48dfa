// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package store

import (
	"fmt"
	"time"

	"github.com/linksideapp/linkside/internal/feed"
)

// demoAuthor describes one seeded account.
type demoAuthor struct {
	id         string
	cityID     string
	courseID   string
	tags       []string
	accountAge time.Duration
	posts      int
	upvotes    int
	comments   int
	hotScore   float64
}

// demoAuthors is the fixed demo roster. Account ages and post counts are
// chosen so the last two authors classify as new under the default
// thresholds and the first two trend.
var demoAuthors = []demoAuthor{
	{"author-maya", "city-portland", "course-heron-lakes", []string{"scramble", "weekend"}, 400 * 24 * time.Hour, 9, 320, 45, 88.5},
	{"author-jun", "city-portland", "course-eastmoreland", []string{"nine-holes", "after-work"}, 200 * 24 * time.Hour, 7, 210, 30, 74.0},
	{"author-priya", "city-seattle", "course-jefferson-park", []string{"weekend", "walking"}, 90 * 24 * time.Hour, 6, 80, 12, 31.0},
	{"author-sam", "city-seattle", "course-west-seattle", []string{"beginner-friendly"}, 45 * 24 * time.Hour, 5, 40, 6, 12.5},
	{"author-noor", "city-portland", "course-heron-lakes", []string{"scramble"}, 10 * 24 * time.Hour, 2, 15, 3, 4.0},
	{"author-theo", "city-bend", "course-lost-tracks", []string{"walking", "weekend"}, 5 * 24 * time.Hour, 1, 8, 1, 2.0},
}

// SeedDemoData populates the store with a deterministic set of golf-meetup
// posts spread over the past month, plus follow edges for the demo viewer
// "viewer-demo". Safe to call once at startup.
func (s *MemoryStore) SeedDemoData(now time.Time) error {
	for _, a := range demoAuthors {
		accountCreatedAt := now.Add(-a.accountAge)
		for i := 0; i < a.posts; i++ {
			// Spread posts backwards from now, oldest author first so
			// timestamps interleave across authors.
			createdAt := now.Add(-time.Duration(i*11+len(a.id)) * time.Hour)
			post := feed.Post{
				ID:        fmt.Sprintf("%s-post-%02d", a.id, i+1),
				AuthorID:  a.id,
				CreatedAt: createdAt,
				CityID:    a.cityID,
				CourseID:  a.courseID,
				Tags:      a.tags,
			}
			if err := s.AddPost(post); err != nil {
				return fmt.Errorf("seed post %s: %w", post.ID, err)
			}
			// Older posts accumulated more engagement.
			s.SetPostStats(post.ID, feed.PostStats{
				Upvotes:       a.upvotes / (i + 1),
				Comments:      a.comments / (i + 1),
				LastEngagedAt: createdAt.Add(2 * time.Hour),
				HotScore:      a.hotScore / float64(i+1),
			})
		}
		s.SetAuthorStats(a.id, feed.AuthorStats{
			AccountCreatedAt: accountCreatedAt,
			PostCount:        a.posts,
		})
	}

	// The demo viewer follows the two Portland regulars.
	s.Follow("viewer-demo", "author-maya")
	s.Follow("viewer-demo", "author-jun")

	s.logger.Info().
		Int("posts", s.PostCount()).
		Int("authors", len(demoAuthors)).
		Msg("seeded demo data")
	return nil
}
