// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import "fmt"

// Config contains all tunable constants for the ranking engine.
// It is loaded once per process and never mutated at runtime.
type Config struct {
	// FriendsHalfLifeHours is the time-decay half-life for the friends feed.
	// Default: 24.
	FriendsHalfLifeHours float64 `json:"friends_half_life_hours" koanf:"friends_half_life_hours"`

	// PublicHalfLifeHours is the time-decay half-life for the public feed.
	// Default: 48.
	PublicHalfLifeHours float64 `json:"public_half_life_hours" koanf:"public_half_life_hours"`

	// EngagementWeight scales the log-scaled engagement signal.
	// Default: 0.3.
	EngagementWeight float64 `json:"engagement_weight" koanf:"engagement_weight"`

	// MaxEngagementBoost is the hard cap on the engagement component.
	// Default: 1.5.
	MaxEngagementBoost float64 `json:"max_engagement_boost" koanf:"max_engagement_boost"`

	// SameCityBoost is the flat bonus when post and viewer share a city.
	// Default: 0.3.
	SameCityBoost float64 `json:"same_city_boost" koanf:"same_city_boost"`

	// SameCourseBoost is the flat bonus when post and viewer share a home course.
	// Default: 0.4.
	SameCourseBoost float64 `json:"same_course_boost" koanf:"same_course_boost"`

	// TagBoost is the bonus per shared interest tag.
	// Default: 0.15.
	TagBoost float64 `json:"tag_boost" koanf:"tag_boost"`

	// MaxTagBoost is the cap on the total tag component.
	// Default: 0.45.
	MaxTagBoost float64 `json:"max_tag_boost" koanf:"max_tag_boost"`

	// NewAuthorBoost is the flat fairness bonus for new authors.
	// Default: 0.5.
	NewAuthorBoost float64 `json:"new_author_boost" koanf:"new_author_boost"`

	// NewAuthorMaxAgeDays is the account-age threshold defining "new".
	// Default: 14.
	NewAuthorMaxAgeDays int `json:"new_author_max_age_days" koanf:"new_author_max_age_days"`

	// NewAuthorMaxPosts is the lifetime post-count threshold defining "new".
	// Default: 3.
	NewAuthorMaxPosts int `json:"new_author_max_posts" koanf:"new_author_max_posts"`

	// MaxConsecutiveSameAuthor caps same-author runs in delivered feeds.
	// Zero or negative disables diversity enforcement.
	// Default: 2.
	MaxConsecutiveSameAuthor int `json:"max_consecutive_same_author" koanf:"max_consecutive_same_author"`

	// Buckets contains public-feed bucket mixing parameters.
	Buckets BucketConfig `json:"buckets" koanf:"buckets"`

	// Limits contains fetch and pagination limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Windows contains the escalating candidate time windows used by the
	// fetch layer. The engine itself never windows; listing them here
	// constrains the window starts it may observe.
	Windows WindowConfig `json:"windows" koanf:"windows"`
}

// BucketConfig contains public-feed bucket mixing parameters.
type BucketConfig struct {
	// RecentWeight, TrendingWeight and NewCreatorWeight document the
	// intended bucket split. The mixer uses a fixed pattern, not these
	// weights, so that output stays deterministic.
	// Defaults: 0.6 / 0.2 / 0.2.
	RecentWeight     float64 `json:"recent_weight" koanf:"recent_weight"`
	TrendingWeight   float64 `json:"trending_weight" koanf:"trending_weight"`
	NewCreatorWeight float64 `json:"new_creator_weight" koanf:"new_creator_weight"`

	// InjectionInterval forces one new-creator item into the stream every
	// this many emitted items, independent of the pattern.
	// Default: 5.
	InjectionInterval int `json:"injection_interval" koanf:"injection_interval"`
}

// LimitsConfig contains fetch and pagination limits.
type LimitsConfig struct {
	// FetchLimit is the per-bucket candidate fetch limit.
	// Default: 100.
	FetchLimit int `json:"fetch_limit" koanf:"fetch_limit"`

	// PageSize is the delivered page length.
	// Default: 20.
	PageSize int `json:"page_size" koanf:"page_size"`

	// SeenIDCap bounds the public cursor's recently-seen id list.
	// Default: 200.
	SeenIDCap int `json:"seen_id_cap" koanf:"seen_id_cap"`
}

// WindowConfig contains the escalating candidate time windows in days.
type WindowConfig struct {
	// PrimaryDays is the first window tried by the fetch layer.
	// Default: 7.
	PrimaryDays int `json:"primary_days" koanf:"primary_days"`

	// FallbackDays is tried when the primary window yields too few items.
	// Default: 30.
	FallbackDays int `json:"fallback_days" koanf:"fallback_days"`

	// ExtendedDays is the last resort window.
	// Default: 90.
	ExtendedDays int `json:"extended_days" koanf:"extended_days"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		FriendsHalfLifeHours:     24,
		PublicHalfLifeHours:      48,
		EngagementWeight:         0.3,
		MaxEngagementBoost:       1.5,
		SameCityBoost:            0.3,
		SameCourseBoost:          0.4,
		TagBoost:                 0.15,
		MaxTagBoost:              0.45,
		NewAuthorBoost:           0.5,
		NewAuthorMaxAgeDays:      14,
		NewAuthorMaxPosts:        3,
		MaxConsecutiveSameAuthor: 2,
		Buckets: BucketConfig{
			RecentWeight:      0.6,
			TrendingWeight:    0.2,
			NewCreatorWeight:  0.2,
			InjectionInterval: 5,
		},
		Limits: LimitsConfig{
			FetchLimit: 100,
			PageSize:   20,
			SeenIDCap:  200,
		},
		Windows: WindowConfig{
			PrimaryDays:  7,
			FallbackDays: 30,
			ExtendedDays: 90,
		},
	}
}

// Validate checks the configuration for errors. A malformed ranking config
// is fatal at process start; it is never surfaced per-request.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.FriendsHalfLifeHours <= 0 {
		return fmt.Errorf("friends_half_life_hours must be positive, got %f", c.FriendsHalfLifeHours)
	}
	if c.PublicHalfLifeHours <= 0 {
		return fmt.Errorf("public_half_life_hours must be positive, got %f", c.PublicHalfLifeHours)
	}
	if c.EngagementWeight < 0 {
		return fmt.Errorf("engagement_weight must be non-negative, got %f", c.EngagementWeight)
	}
	if c.MaxEngagementBoost < 0 {
		return fmt.Errorf("max_engagement_boost must be non-negative, got %f", c.MaxEngagementBoost)
	}
	if c.SameCityBoost < 0 || c.SameCourseBoost < 0 {
		return fmt.Errorf("geo boosts must be non-negative, got city=%f course=%f", c.SameCityBoost, c.SameCourseBoost)
	}
	if c.TagBoost < 0 || c.MaxTagBoost < 0 {
		return fmt.Errorf("tag boosts must be non-negative, got tag=%f max=%f", c.TagBoost, c.MaxTagBoost)
	}
	if c.NewAuthorBoost < 0 {
		return fmt.Errorf("new_author_boost must be non-negative, got %f", c.NewAuthorBoost)
	}
	if c.NewAuthorMaxAgeDays < 0 || c.NewAuthorMaxPosts < 0 {
		return fmt.Errorf("new-author thresholds must be non-negative, got age=%d posts=%d",
			c.NewAuthorMaxAgeDays, c.NewAuthorMaxPosts)
	}
	if c.Buckets.InjectionInterval < 0 {
		return fmt.Errorf("buckets.injection_interval must be non-negative, got %d", c.Buckets.InjectionInterval)
	}
	if c.Limits.FetchLimit < 1 {
		return fmt.Errorf("limits.fetch_limit must be positive, got %d", c.Limits.FetchLimit)
	}
	if c.Limits.PageSize < 1 {
		return fmt.Errorf("limits.page_size must be positive, got %d", c.Limits.PageSize)
	}
	if c.Limits.SeenIDCap < c.Limits.PageSize {
		return fmt.Errorf("limits.seen_id_cap must be >= limits.page_size, got %d < %d",
			c.Limits.SeenIDCap, c.Limits.PageSize)
	}
	if c.Windows.PrimaryDays < 1 {
		return fmt.Errorf("windows.primary_days must be positive, got %d", c.Windows.PrimaryDays)
	}
	if c.Windows.FallbackDays < c.Windows.PrimaryDays {
		return fmt.Errorf("windows.fallback_days must be >= windows.primary_days, got %d < %d",
			c.Windows.FallbackDays, c.Windows.PrimaryDays)
	}
	if c.Windows.ExtendedDays < c.Windows.FallbackDays {
		return fmt.Errorf("windows.extended_days must be >= windows.fallback_days, got %d < %d",
			c.Windows.ExtendedDays, c.Windows.FallbackDays)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - nested structs contain only value types
	cp := *c
	return &cp
}
