// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

// Bucket identifies one of the three public-feed candidate sources.
type Bucket int

const (
	// BucketRecent holds recent public posts.
	BucketRecent Bucket = iota
	// BucketTrending holds posts pre-ranked by the external hot score.
	BucketTrending
	// BucketNewCreators holds posts by new authors.
	BucketNewCreators

	numBuckets
)

// String returns a human-readable bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketRecent:
		return "recent"
	case BucketTrending:
		return "trending"
	case BucketNewCreators:
		return "new_creators"
	default:
		return "unknown"
	}
}

// mixPattern is the fixed repeating bucket selection pattern, weighted
// toward recent to approximate the configured 60/20/20 split. The pattern
// content is fixed; only the start position varies, by seed, so mixing
// stays reproducible for a viewer within a day.
var mixPattern = [...]Bucket{
	BucketRecent, BucketRecent, BucketRecent, BucketTrending, BucketRecent,
	BucketRecent, BucketNewCreators, BucketRecent, BucketTrending, BucketNewCreators,
}

// fallbackOrder is tried in order when the selected bucket is exhausted.
var fallbackOrder = [...]Bucket{BucketRecent, BucketTrending, BucketNewCreators}

// MixResult is the interleaved stream plus per-bucket consumption counts.
// Drawn counts advance the public cursor's bucket offsets.
type MixResult struct {
	Items []ScoredPost
	Drawn [numBuckets]int
}

// Interleave merges three individually pre-sorted bucket lists into one
// stream of at most target items.
//
// Selection walks mixPattern starting at seed mod len(pattern). Every
// injectEvery emitted items one unused new-creators item is force-emitted
// regardless of pattern position; the injection consumes that step's
// pattern slot rather than adding to it, so output length is unchanged.
// An exhausted selection falls through recent, trending, new-creators; when
// all three are empty the stream ends early.
func Interleave(recent, trending, newCreators []ScoredPost, seed uint32, target, injectEvery int) MixResult {
	lists := [numBuckets][]ScoredPost{recent, trending, newCreators}

	total := len(recent) + len(trending) + len(newCreators)
	if target > total {
		target = total
	}
	if target < 0 {
		target = 0
	}

	res := MixResult{Items: make([]ScoredPost, 0, target)}
	pos := int(seed) % len(mixPattern)
	sinceInject := 0

	for len(res.Items) < target {
		sinceInject++

		pick, ok := Bucket(-1), false
		if injectEvery > 0 && sinceInject >= injectEvery {
			sinceInject = 0
			if res.Drawn[BucketNewCreators] < len(lists[BucketNewCreators]) {
				pick, ok = BucketNewCreators, true
			}
		}
		if !ok {
			pick = mixPattern[pos]
			if res.Drawn[pick] >= len(lists[pick]) {
				for _, b := range fallbackOrder {
					if res.Drawn[b] < len(lists[b]) {
						pick = b
						break
					}
				}
			}
		}

		res.Items = append(res.Items, lists[pick][res.Drawn[pick]])
		res.Drawn[pick]++
		pos = (pos + 1) % len(mixPattern)
	}
	return res
}
