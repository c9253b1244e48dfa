// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/linksideapp/linkside/internal/feed"
	"github.com/linksideapp/linkside/internal/logging"
	"github.com/linksideapp/linkside/internal/metrics"
	"github.com/linksideapp/linkside/internal/models"
)

// ViewerIDHeader carries the viewer identity, set by the edge proxy. The
// viewer query parameter is accepted as a fallback for local development.
const ViewerIDHeader = "X-Viewer-ID"

// StoreStatus is the slice of the post store the health probes read.
type StoreStatus interface {
	PostCount() int
}

// Handler serves the feed and health endpoints.
type Handler struct {
	svc       *feed.Service
	store     StoreStatus
	version   string
	startTime time.Time
}

// NewHandler creates a handler over the feed service.
func NewHandler(svc *feed.Service, store StoreStatus, version string) *Handler {
	return &Handler{
		svc:       svc,
		store:     store,
		version:   version,
		startTime: time.Now(),
	}
}

type feedFunc func(ctx context.Context, viewer feed.ViewerContext, cursor string) (*feed.Page, error)

// FriendsFeed serves GET /api/v1/feed/friends.
//
// Query parameters: cursor (opaque token from the previous page), plus the
// viewer-context parameters shared with the public feed: city, course and
// tags (comma-separated interest tags).
func (h *Handler) FriendsFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, "friends", h.svc.FriendsFeed)
}

// PublicFeed serves GET /api/v1/feed/public.
func (h *Handler) PublicFeed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, "public", h.svc.PublicFeed)
}

func (h *Handler) serveFeed(w http.ResponseWriter, r *http.Request, feedType string, fetch feedFunc) {
	start := time.Now()

	viewer, ok := viewerFromRequest(r)
	if !ok {
		metrics.RecordFeedRequest(feedType, "bad_request", time.Since(start), 0)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"viewer identity required: set "+ViewerIDHeader+" or the viewer query parameter", nil)
		return
	}
	cursor := r.URL.Query().Get("cursor")

	ctx := logging.ContextWithViewerID(r.Context(), viewer.ViewerID)
	page, err := fetch(ctx, viewer, cursor)
	if err != nil {
		if errors.Is(err, feed.ErrBadCursor) {
			metrics.RecordFeedRequest(feedType, "bad_cursor", time.Since(start), 0)
			respondError(w, http.StatusBadRequest, "BAD_CURSOR", "cursor token is malformed", err)
			return
		}
		metrics.RecordFeedRequest(feedType, "error", time.Since(start), 0)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "feed assembly failed", err)
		return
	}

	metrics.RecordFeedRequest(feedType, "ok", time.Since(start), len(page.Items))
	logging.Ctx(ctx).Debug().
		Str("feed_type", feedType).
		Int("items", len(page.Items)).
		Bool("has_more", page.HasMore).
		Dur("duration", time.Since(start)).
		Msg("feed page served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.NewFeedPageView(page),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(ctx),
		},
	})
}

// viewerFromRequest assembles the viewer context from the identity header
// and the optional personalization query parameters.
func viewerFromRequest(r *http.Request) (feed.ViewerContext, bool) {
	q := r.URL.Query()
	viewerID := r.Header.Get(ViewerIDHeader)
	if viewerID == "" {
		viewerID = q.Get("viewer")
	}
	if viewerID == "" {
		return feed.ViewerContext{}, false
	}
	return feed.ViewerContext{
		ViewerID:     viewerID,
		HomeCityID:   q.Get("city"),
		HomeCourseID: q.Get("course"),
		InterestTags: splitCSVParam(q.Get("tags")),
	}, true
}

// HealthLive handles liveness probe requests (Kubernetes-style). Returns
// 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles readiness probe requests. Ready means the store is
// wired; an empty store still serves (empty) pages.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	health := models.HealthStatus{
		Status:        "ready",
		Version:       h.version,
		StoreReady:    h.store != nil,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.store != nil {
		health.PostsHeld = h.store.PostCount()
	} else {
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
