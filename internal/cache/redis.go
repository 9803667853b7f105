package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stampLen is the size of the write-time prefix on every stored value.
const stampLen = 8

// Redis is a Store backed by a Redis server. Values carry their write time in
// an 8-byte prefix and expire server-side after ttl.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configures the Redis store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Key namespace, e.g. "fleet_status:"
	TTL      time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisWithClient(client, opts.Prefix, opts.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	bs, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if len(bs) < stampLen {
		return nil, time.Time{}, false, nil
	}
	storedAt := time.Unix(0, int64(binary.BigEndian.Uint64(bs[:stampLen])))
	return bs[stampLen:], storedAt, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	payload := make([]byte, stampLen+len(value))
	binary.BigEndian.PutUint64(payload, uint64(time.Now().UnixNano()))
	copy(payload[stampLen:], value)
	if err := r.client.Set(ctx, r.prefix+key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
