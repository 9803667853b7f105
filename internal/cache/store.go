// Package cache keeps date-keyed snapshots of fetched sheet data behind a
// pluggable key-value store.
package cache

import (
	"context"
	"time"
)

// Store is a string-keyed byte store. Get reports when the value was written
// so callers can apply their own TTL.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, storedAt time.Time, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
