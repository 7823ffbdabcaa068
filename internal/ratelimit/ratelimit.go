package ratelimit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Limiter bounds pipeline invocations per key within a sliding time
// window. Implementations must be safe for concurrent callers.
//
// The interface is deliberately narrow so the in-process implementation
// can be swapped for a shared one (see RedisLimiter) without touching
// callers.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Key builds the composite limiter key for a subject acting on a
// resource.
func Key(subjectID, resourceID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", subjectID, resourceID)
}
