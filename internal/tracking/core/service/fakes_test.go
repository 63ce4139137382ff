package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

// memCache is an in-memory LatestStateCache. TTLs are recorded but only
// enforced when the test advances expiry manually via expire().
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	sets    int
	setErr  error
	getErr  error
	scanErr error
}

func newMemCache() *memCache {
	return &memCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[key] = append([]byte(nil), value...)
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	value, ok := c.entries[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return value, nil
}

func (c *memCache) ListKeysByPrefix(_ context.Context, prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanErr != nil {
		return nil, c.scanErr
	}
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *memCache) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.ttls, key)
}

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// memStore is an in-memory append-only HistoryStore.
type memStore struct {
	mu   sync.Mutex
	rows []model.Report

	appendErr error
	getErr    error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Append(_ context.Context, r *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, *r)
	return nil
}

func (s *memStore) GetLatestByKey(_ context.Context, vehicleID string) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	var best *model.Report
	for i := range s.rows {
		r := &s.rows[i]
		if r.VehicleID != vehicleID {
			continue
		}
		if best == nil || r.Timestamp > best.Timestamp {
			best = r
		}
	}
	if best == nil {
		return nil, core.ErrNotFound
	}
	out := *best
	return &out, nil
}

func (s *memStore) count(vehicleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.VehicleID == vehicleID {
			n++
		}
	}
	return n
}

// stubFeed returns a fixed result or error for every Fetch.
type stubFeed struct {
	reports []model.Report
	err     error
	calls   int
}

func (f *stubFeed) Fetch(context.Context) ([]model.Report, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

func newTestService(cache *memCache, store *memStore, feed *stubFeed) *Service {
	return New(cache, store, feed, Config{})
}
