// Package hold provides a short-lived exclusive hold on a room and date
// range while a booking request is in flight. The hold does not replace the
// transactional capacity check; it keeps two guests from racing each other
// through the same checkout flow and surfaces a friendly "being processed"
// signal instead of a capacity conflict.
package hold

import (
	"context"
	"fmt"
	"time"
)

// Store places and releases holds. Acquire returns false when the key is
// already held by someone else.
type Store interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Key builds the hold key for a room and half-open date range.
func Key(roomID string, start, end time.Time) string {
	return fmt.Sprintf("booking-hold:%s:%s:%s",
		roomID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
