package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is a shared key-value cache with per-entry TTL, addressed by
// (cache name, key). Implementations must be safe for concurrent use and
// are allowed to drop entries at any time: every value is reconstructible
// from the database.
type Store interface {
	Get(ctx context.Context, cache, key string) ([]byte, bool, error)
	Set(ctx context.Context, cache, key string, value []byte, ttl time.Duration) error
	Evict(ctx context.Context, cache string, keys ...string) error
	// EvictAll drops every entry of the named cache.
	EvictAll(ctx context.Context, cache string) error
}

// Memory is an in-process Store. Each policy row gets its own expirable LRU
// with the row's TTL, mirroring a per-cache-name TTL configuration of an
// external cache server.
type Memory struct {
	buckets map[string]*expirable.LRU[string, []byte]
}

func NewMemory(policies []Policy) *Memory {
	m := &Memory{buckets: make(map[string]*expirable.LRU[string, []byte], len(policies))}
	for _, p := range policies {
		m.buckets[p.Name] = expirable.NewLRU[string, []byte](p.Size, nil, p.TTL)
	}
	return m
}

func (m *Memory) bucket(cache string) (*expirable.LRU[string, []byte], error) {
	b, ok := m.buckets[cache]
	if !ok {
		return nil, fmt.Errorf("unknown cache %q", cache)
	}
	return b, nil
}

func (m *Memory) Get(_ context.Context, cache, key string) ([]byte, bool, error) {
	b, err := m.bucket(cache)
	if err != nil {
		return nil, false, err
	}
	v, ok := b.Get(key)
	return v, ok, nil
}

// Set stores value under its bucket. The ttl argument is carried for
// external backends; the in-memory bucket already expires entries with the
// same TTL from the policy table.
func (m *Memory) Set(_ context.Context, cache, key string, value []byte, _ time.Duration) error {
	b, err := m.bucket(cache)
	if err != nil {
		return err
	}
	b.Add(key, value)
	return nil
}

func (m *Memory) Evict(_ context.Context, cache string, keys ...string) error {
	b, err := m.bucket(cache)
	if err != nil {
		return err
	}
	for _, k := range keys {
		b.Remove(k)
	}
	return nil
}

func (m *Memory) EvictAll(_ context.Context, cache string) error {
	b, err := m.bucket(cache)
	if err != nil {
		return err
	}
	b.Purge()
	return nil
}

// Lookup reads and decodes one entry. The second result reports a hit;
// decode failures count as a miss with an error so callers can fall through
// to the database.
func Lookup[T any](ctx context.Context, s Store, cache, key string) (T, bool, error) {
	var v T
	raw, ok, err := s.Get(ctx, cache, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Put encodes and stores one entry under the policy TTL.
func Put[T any](ctx context.Context, s Store, cache, key string, v T, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, cache, key, raw, ttl)
}
