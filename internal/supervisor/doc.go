// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package supervisor builds the suture v4 supervision tree that runs the
// service. Lifecycle events are logged through sutureslog, bridged to
// zerolog by the logging package's slog adapter.
package supervisor
