package cache

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 24 * time.Hour

// Snapshots stores values in a Store as zstd-compressed msgpack and treats
// entries older than the TTL as absent. A write replaces the whole entry.
type Snapshots struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSnapshots wraps store. A non-positive ttl selects DefaultTTL.
func NewSnapshots(store Store, ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Snapshots{store: store, ttl: ttl, now: time.Now}
}

// TTL returns the freshness window.
func (s *Snapshots) TTL() time.Duration {
	return s.ttl
}

// Load decodes the entry for key into out. ok is false when the entry is
// missing, stale or unreadable.
func (s *Snapshots) Load(ctx context.Context, key string, out any) (bool, error) {
	raw, storedAt, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if s.now().Sub(storedAt) > s.ttl {
		slog.Debug("Snapshot expired", "key", key, "stored_at", storedAt)
		if err := s.store.Delete(ctx, key); err != nil {
			slog.Warn("Failed to delete expired snapshot", "key", key, "error", err)
		}
		return false, nil
	}
	if err := decode(raw, out); err != nil {
		slog.Warn("Discarding unreadable snapshot", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save encodes v and writes it under key.
func (s *Snapshots) Save(ctx context.Context, key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Invalidate removes the entry for key.
func (s *Snapshots) Invalidate(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}

	enc := msgpack.NewEncoder(zw)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(raw []byte, out any) error {
	zr, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	dec := msgpack.NewDecoder(zr)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return nil
}
