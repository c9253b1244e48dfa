// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

/*
Package store provides the in-memory post store backing the feed service.

MemoryStore implements feed.CandidateSource and feed.StatsSource: windowed
candidate queries for the friends, recent, trending and new-creator pools,
plus batched post and author aggregate lookups. Deletes are soft; candidate
queries skip tombstones and results are ordered deterministically so
identical store contents always yield identical pools.

SeedDemoData loads a fixed roster of golf-meetup posts so the service runs
end to end without external infrastructure.
*/
package store
