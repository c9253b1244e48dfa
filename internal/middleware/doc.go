// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package middleware provides plain net/http middleware shared by the API
// layer: request-ID propagation and Prometheus request instrumentation.
// CORS and rate limiting come from the chi ecosystem and are wired in the
// api package.
package middleware
