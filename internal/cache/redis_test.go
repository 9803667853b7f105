package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := NewRedis(ctx, RedisOptions{Addr: "127.0.0.1:1", TTL: time.Hour})
	assert.Error(t, err)
	assert.Nil(t, r)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
