// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package models defines the wire types shared by the HTTP API: the
// response envelope, structured errors, health payloads and the feed page
// views derived from engine output.
package models
