package ports

import (
	"context"
	"time"
)

// RateLimitStore counts operations per key inside a fixed window.
// It is cache-backed so hot auth paths never write to the primary store.
type RateLimitStore interface {
	// Incr bumps the counter for key, setting the window TTL on first use,
	// and returns the count inside the current window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
