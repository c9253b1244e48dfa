// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package logging provides centralized zerolog-based structured logging
// for Linkside.
//
// The package exposes a process-global logger with JSON output for
// production and console output for development, plus context helpers that
// carry request and viewer identifiers through the request path.
//
// # Quick Start
//
//	import "github.com/linksideapp/linkside/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("viewer_id", id).Msg("feed served")
//	logging.Error().Err(err).Msg("feed assembly failed")
//
//	// Context-aware logging inside handlers
//	logging.Ctx(ctx).Info().Msg("processing request")
//
// # Conventions
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped. Prefer structured fields over Msgf formatting.
//
// The slog adapter in this package backs libraries that require an
// slog.Logger, such as sutureslog, with the same zerolog output.
package logging
