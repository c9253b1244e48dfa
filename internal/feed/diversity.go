// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

// EnforceAuthorDiversity reorders a ranked sequence so no author appears
// more than maxRun times consecutively, without dropping any item. When the
// next pending item would exceed the cap, the earliest pending item by a
// different author is pulled forward instead. If every remaining item
// shares the capped author, the cap is waived rather than starving the
// feed, and the streak counter restarts from the waived item.
//
// maxRun <= 0 disables enforcement and returns the input unchanged.
func EnforceAuthorDiversity(items []ScoredPost, maxRun int) []ScoredPost {
	if maxRun <= 0 || len(items) <= 1 {
		return items
	}

	pending := make([]ScoredPost, len(items))
	copy(pending, items)
	out := make([]ScoredPost, 0, len(items))

	var lastAuthor string
	run := 0
	for len(pending) > 0 {
		idx := 0
		if pending[0].Post.AuthorID == lastAuthor && run >= maxRun {
			for j := 1; j < len(pending); j++ {
				if pending[j].Post.AuthorID != lastAuthor {
					idx = j
					break
				}
			}
		}

		pick := pending[idx]
		pending = append(pending[:idx], pending[idx+1:]...)
		out = append(out, pick)

		switch {
		case pick.Post.AuthorID != lastAuthor:
			lastAuthor = pick.Post.AuthorID
			run = 1
		case run < maxRun:
			run++
		default:
			// Pool exhausted of alternatives: cap waived, streak restarts.
			run = 1
		}
	}
	return out
}
