package ratelimit

import (
	"context"
	"time"
)

// Result describes the state of a key after a request was counted.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter counts requests per key over a sliding window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}

func remaining(limit int, used int64) int {
	left := int64(limit) - used
	if left < 0 {
		return 0
	}
	return int(left)
}
