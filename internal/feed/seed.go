// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// dayKeyFormat scopes seeds and public cursors to one UTC calendar day.
const dayKeyFormat = "2006-01-02"

// DayKey returns the UTC calendar-day key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyFormat)
}

// Seed derives the deterministic per-viewer per-day mixing seed. It hashes
// "viewerID_dayKey" with SHA-256 and takes the first four bytes as a
// big-endian integer with the sign bit cleared. The same pair always yields
// the same seed across processes and over time; only determinism and
// reasonable distribution matter here, not the hash family itself.
func Seed(viewerID, dayKey string) uint32 {
	sum := sha256.Sum256([]byte(viewerID + "_" + dayKey))
	return binary.BigEndian.Uint32(sum[:4]) & 0x7fffffff
}
