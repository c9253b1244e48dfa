// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

/*
Package api provides the HTTP surface of the feed service using the chi
router.

Endpoints:

	GET /api/v1/feed/friends   one page of the viewer's friends feed
	GET /api/v1/feed/public    one page of the mixed public feed
	GET /api/v1/health/live    liveness probe
	GET /api/v1/health/ready   readiness probe
	GET /metrics               Prometheus exporter

The viewer identity arrives in the X-Viewer-ID header (or the viewer
query parameter in development); city, course and tags query parameters
carry the personalization context. Cursor tokens are opaque: clients
replay the next_cursor value verbatim.

Middleware: request-ID propagation, real-IP extraction, panic recovery,
CORS (go-chi/cors), per-viewer rate limiting (go-chi/httprate) and
Prometheus request instrumentation.
*/
package api
