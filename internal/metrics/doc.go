// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

/*
Package metrics provides Prometheus metrics collection and export for
observability.

The package instruments feed assembly, the candidate store, and the HTTP
API using the Prometheus client library. Metrics are exposed at the
/metrics endpoint in Prometheus text format.

# Available Metrics

Feed Metrics:
  - feed_requests_total: feed assembly requests (counter)
    Labels: feed_type (friends, public), status (ok, bad_cursor, error)
  - feed_assembly_duration_seconds: one ranking pass (histogram)
    Labels: feed_type
  - feed_page_items: delivered page sizes (histogram)
    Labels: feed_type
  - feed_candidates_scored_total / feed_candidates_dropped_total:
    per-bucket candidate throughput (counters)
  - feed_cursor_day_resets_total: public cursors reset at the day
    boundary (counter)
  - feed_window_escalations_total: fetches that widened past the primary
    candidate window (counter)

Store Metrics:
  - store_fetch_duration_seconds: candidate and stats query latency
  - store_posts: posts currently held

API Metrics:
  - api_requests_total, api_request_duration_seconds,
    api_active_requests, api_rate_limit_hits_total

# Usage Example

	start := time.Now()
	page, err := svc.FriendsFeed(ctx, viewer, cursor)
	status := "ok"
	if err != nil {
	    status = "error"
	}
	metrics.RecordFeedRequest("friends", status, time.Since(start), len(page.Items))

# Cardinality

Labels stay bounded: feed types, buckets, and drop reasons are fixed
constants, endpoints are route patterns rather than raw paths, and viewer
identifiers never appear as label values.

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus
client library synchronizes internally.
*/
package metrics
