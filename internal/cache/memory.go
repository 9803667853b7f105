package cache

import (
	"bytes"
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// Memory is an in-process Store bounded by size and age.
type Memory struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemory creates a store holding at most size entries for up to ttl.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 64
	}
	return &Memory{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl),
		now: time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, time.Time{}, false, nil
	}
	return bytes.Clone(e.value), e.storedAt, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.lru.Add(key, memoryEntry{value: bytes.Clone(value), storedAt: m.now()})
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}
