package usecase

import (
	"context"
	"time"
)

// Cache is the slice of the redis client the usecases need. A nil or
// unavailable cache degrades to direct store reads.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateSkills(ctx context.Context) error
	InvalidateEntity(ctx context.Context, prefix string) error
}

func cacheGet(ctx context.Context, c Cache, key string, out any) bool {
	if c == nil {
		return false
	}
	found, err := c.GetJSON(ctx, key, out)
	return err == nil && found
}

func cacheSet(ctx context.Context, c Cache, key string, value any) {
	if c == nil {
		return
	}
	_ = c.SetJSON(ctx, key, value, 0)
}

func invalidateSkills(ctx context.Context, c Cache) {
	if c == nil {
		return
	}
	_ = c.InvalidateSkills(ctx)
}

func invalidateEntity(ctx context.Context, c Cache, prefix string) {
	if c == nil {
		return
	}
	_ = c.InvalidateEntity(ctx, prefix)
}
