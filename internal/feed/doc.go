// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package feed implements the feed ranking and composition engine.
//
// # Architecture
//
// The engine turns pools of candidate posts into a single deterministic,
// paginated ordering for a viewer. It combines several heuristic signals:
//
//   - Time decay: half-life based, the dominant signal
//   - Engagement: log-scaled upvotes and comments, hard capped
//   - Fairness: flat boost for new authors plus periodic forced injection
//   - Affinity: same city, same home course, shared interest tags
//
// Two feed variants share the same scoring core. The friends feed is a
// single-stream pipeline: score, sort, enforce author diversity, slice.
// The public feed interleaves three independently fetched buckets (recent,
// trending, new creators) using a fixed repeating pattern whose start
// position is derived from a per-viewer per-day seed.
//
// # Design Principles
//
//   - Deterministic: identical inputs produce byte-identical ordering, so
//     pagination cursors stay stable across requests and processes
//   - Bounded influence: every non-time signal is a small capped constant,
//     so old content always sinks eventually
//   - Stateless: the engine holds only its immutable Config; every request
//     recomputes the ordering from raw counters
//
// # Usage
//
//	cfg := feed.DefaultConfig()
//	engine, err := feed.NewEngine(cfg, logger)
//	svc := feed.NewService(engine, candidateSource, statsSource, logger)
//
//	page, err := svc.PublicFeed(ctx, viewer, cursorToken)
//
// # Thread Safety
//
// The engine and service are safe for concurrent use: all per-request state
// lives on the stack, and Config is never mutated after NewEngine.
package feed
