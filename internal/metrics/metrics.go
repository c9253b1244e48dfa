// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed Assembly Metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed assembly requests",
		},
		[]string{"feed_type", "status"}, // feed_type: "friends", "public"; status: "ok", "bad_cursor", "error"
	)

	FeedAssemblyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_assembly_duration_seconds",
			Help:    "Duration of one feed ranking pass in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"feed_type"},
	)

	FeedPageItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_page_items",
			Help:    "Number of items in delivered feed pages",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 30, 50},
		},
		[]string{"feed_type"},
	)

	FeedCandidatesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_candidates_scored_total",
			Help: "Total number of candidates scored per bucket",
		},
		[]string{"bucket"}, // "friends", "recent", "trending", "new_creators"
	)

	FeedCandidatesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_candidates_dropped_total",
			Help: "Total number of candidates dropped before scoring",
		},
		[]string{"bucket", "reason"}, // reason: "deleted", "malformed"
	)

	FeedCursorResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cursor_day_resets_total",
			Help: "Total number of public cursors reset at the day boundary",
		},
	)

	FeedWindowEscalations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_window_escalations_total",
			Help: "Total number of candidate fetches that widened past the primary window",
		},
		[]string{"bucket", "window"}, // window: "fallback", "extended"
	)

	// Candidate Store Metrics
	StoreFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_fetch_duration_seconds",
			Help:    "Duration of candidate and stats fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	StorePosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_posts",
			Help: "Current number of posts held by the store",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordFeedRequest records one feed assembly request and its outcome.
func RecordFeedRequest(feedType, status string, duration time.Duration, items int) {
	FeedRequestsTotal.WithLabelValues(feedType, status).Inc()
	FeedAssemblyDuration.WithLabelValues(feedType).Observe(duration.Seconds())
	if status == "ok" {
		FeedPageItems.WithLabelValues(feedType).Observe(float64(items))
	}
}

// RecordCandidates records scored and dropped candidate counts for a bucket.
func RecordCandidates(bucket string, scored, deleted, malformed int) {
	FeedCandidatesScored.WithLabelValues(bucket).Add(float64(scored))
	if deleted > 0 {
		FeedCandidatesDropped.WithLabelValues(bucket, "deleted").Add(float64(deleted))
	}
	if malformed > 0 {
		FeedCandidatesDropped.WithLabelValues(bucket, "malformed").Add(float64(malformed))
	}
}

// RecordWindowEscalation records a fetch that had to widen its time window.
func RecordWindowEscalation(bucket, window string) {
	FeedWindowEscalations.WithLabelValues(bucket, window).Inc()
}

// RecordStoreFetch records a store query metric.
func RecordStoreFetch(query string, duration time.Duration) {
	StoreFetchDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
