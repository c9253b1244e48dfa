// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

package feed

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Cursors are opaque to callers: base64url-wrapped JSON the service hands
// out and replays verbatim. The engine never persists them.

// ErrBadCursor marks a token that cannot be decoded. Callers match it with
// errors.Is to distinguish client mistakes from internal failures.
var ErrBadCursor = errors.New("malformed cursor")

// FriendsCursor is a strict (createdAt DESC, id DESC) position marker into
// the friends feed.
type FriendsCursor struct {
	LastCreatedAt time.Time `json:"t"`
	LastID        string    `json:"id"`
}

// IsZero reports whether the cursor marks the start of the feed.
func (c FriendsCursor) IsZero() bool {
	return c.LastID == "" && c.LastCreatedAt.IsZero()
}

// After reports whether post p sits strictly after the cursor position in
// the (createdAt DESC, id DESC) order, i.e. still undelivered.
func (c FriendsCursor) After(p Post) bool {
	if c.IsZero() {
		return true
	}
	if !p.CreatedAt.Equal(c.LastCreatedAt) {
		return p.CreatedAt.Before(c.LastCreatedAt)
	}
	return p.ID < c.LastID
}

// PublicCursor tracks pagination through one day's mixed public feed:
// independent consumed-offsets into each bucket plus a bounded list of
// recently delivered ids for cross-page dedupe. A cursor whose DayKey no
// longer matches today is discarded and the feed restarts from page one.
type PublicCursor struct {
	DayKey  string   `json:"d"`
	Offsets [3]int   `json:"o"`
	SeenIDs []string `json:"s,omitempty"`
}

// NewPublicCursor returns a fresh first-page cursor for the given day.
func NewPublicCursor(dayKey string) PublicCursor {
	return PublicCursor{DayKey: dayKey}
}

// SeenSet returns the seen ids as a set.
func (c PublicCursor) SeenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.SeenIDs))
	for _, id := range c.SeenIDs {
		set[id] = struct{}{}
	}
	return set
}

// Advance returns the cursor for the next page: offsets moved by the items
// drawn from each bucket and delivered ids appended to the seen list,
// trimmed to the cap from the front so the most recent ids survive.
func (c PublicCursor) Advance(drawn [3]int, delivered []string, seenCap int) PublicCursor {
	next := PublicCursor{DayKey: c.DayKey}
	for i := range next.Offsets {
		next.Offsets[i] = c.Offsets[i] + drawn[i]
	}
	next.SeenIDs = append(append([]string(nil), c.SeenIDs...), delivered...)
	if seenCap > 0 && len(next.SeenIDs) > seenCap {
		next.SeenIDs = next.SeenIDs[len(next.SeenIDs)-seenCap:]
	}
	return next
}

// EncodeFriendsCursor serializes a friends cursor to an opaque token.
func EncodeFriendsCursor(c FriendsCursor) (string, error) {
	return encodeCursor(c)
}

// DecodeFriendsCursor parses an opaque friends cursor token. An empty token
// yields the zero cursor (start of feed).
func DecodeFriendsCursor(token string) (FriendsCursor, error) {
	var c FriendsCursor
	if token == "" {
		return c, nil
	}
	if err := decodeCursor(token, &c); err != nil {
		return FriendsCursor{}, err
	}
	return c, nil
}

// EncodePublicCursor serializes a public cursor to an opaque token.
func EncodePublicCursor(c PublicCursor) (string, error) {
	return encodeCursor(c)
}

// DecodePublicCursor parses an opaque public cursor token. An empty token
// yields a zero cursor; the caller stamps the current day key.
func DecodePublicCursor(token string) (PublicCursor, error) {
	var c PublicCursor
	if token == "" {
		return c, nil
	}
	if err := decodeCursor(token, &c); err != nil {
		return PublicCursor{}, err
	}
	for _, off := range c.Offsets {
		if off < 0 {
			return PublicCursor{}, fmt.Errorf("%w: negative bucket offset %d", ErrBadCursor, off)
		}
	}
	return c, nil
}

func encodeCursor(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(token string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	return nil
}
