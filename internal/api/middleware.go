// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/linksideapp/linkside/internal/metrics"
)

// ChiMiddlewareConfig holds configuration for the chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultChiMiddlewareConfig returns the default middleware configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID", ViewerIDHeader},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddleware provides chi-compatible middleware factories built on the
// production-hardened chi ecosystem packages.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: config.CORSAllowedOrigins,
		AllowedMethods: config.CORSAllowedMethods,
		AllowedHeaders: config.CORSAllowedHeaders,
		MaxAge:         config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the CORS middleware built on go-chi/cors.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// rateLimitEndpoint builds an httprate limiter keyed by viewer identity
// when present and client IP otherwise, recording limit hits per endpoint.
func (m *ChiMiddleware) rateLimitEndpoint(endpoint string, requests int, window time.Duration) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(keyByViewerOrIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
		}),
	)
}

// RateLimitFeed returns the rate limiter for the feed endpoints, using the
// configured per-client budget.
func (m *ChiMiddleware) RateLimitFeed() func(http.Handler) http.Handler {
	return m.rateLimitEndpoint("feed", m.config.RateLimitRequests, m.config.RateLimitWindow)
}

// RateLimitHealth is permissive limiting for the health endpoints so
// monitoring probes never starve while abuse stays bounded.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.rateLimitEndpoint("health", 1000, time.Minute)
}

// keyByViewerOrIP keys rate limiting by the viewer header when set, so
// users behind shared NAT get independent budgets, and falls back to IP.
func keyByViewerOrIP(r *http.Request) (string, error) {
	if viewer := r.Header.Get(ViewerIDHeader); viewer != "" {
		return viewer, nil
	}
	return httprate.KeyByIP(r)
}
