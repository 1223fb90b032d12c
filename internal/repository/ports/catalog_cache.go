package ports

import (
	"context"
	"time"
)

// CatalogCache stores JSON-encoded reference data. Get reports false on a miss.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
