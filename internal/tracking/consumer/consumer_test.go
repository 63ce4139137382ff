package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/service"
)

type fakeCache struct {
	entries map[string][]byte
	setErr  error
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := c.entries[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return value, nil
}

func (c *fakeCache) ListKeysByPrefix(context.Context, string) ([]string, error) {
	return nil, nil
}

type fakeStore struct {
	rows      []model.Report
	appendErr error
}

func (s *fakeStore) Append(_ context.Context, r *model.Report) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, *r)
	return nil
}

func (s *fakeStore) GetLatestByKey(context.Context, string) (*model.Report, error) {
	return nil, core.ErrNotFound
}

type noFeed struct{}

func (noFeed) Fetch(context.Context) ([]model.Report, error) { return nil, nil }

func newTestConsumer() (*Consumer, *fakeCache, *fakeStore) {
	cache := &fakeCache{entries: make(map[string][]byte)}
	store := &fakeStore{}
	svc := service.New(cache, store, noFeed{}, service.Config{})
	return New(nil, svc, "fleet/v1/locations", "tracking-group"), cache, store
}

func TestHandleMessageIngests(t *testing.T) {
	c, cache, store := newTestConsumer()

	c.handleMessage(t.Context(), "fleet/v1/locations",
		[]byte(`{"vehicle_id":"v1","latitude":41.8,"longitude":-87.6,"timestamp":100}`))

	require.Len(t, store.rows, 1)
	assert.Equal(t, "v1", store.rows[0].VehicleID)

	_, err := cache.Get(t.Context(), core.CacheKey("v1"))
	assert.NoError(t, err)
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	c, cache, store := newTestConsumer()

	c.handleMessage(t.Context(), "fleet/v1/locations", []byte(`{"vehicle_id":`))

	assert.Empty(t, store.rows)
	assert.Empty(t, cache.entries)
}

func TestHandleMessageDropsInvalid(t *testing.T) {
	c, cache, store := newTestConsumer()

	payloads := []string{
		`{"vehicle_id":"v1","latitude":95,"longitude":0}`,
		`{"vehicle_id":"../etc","latitude":1,"longitude":2}`,
		`{"vehicle_id":"v1","latitude":1,"longitude":2,"speed":88}`,
	}
	for _, p := range payloads {
		c.handleMessage(t.Context(), "fleet/v1/locations", []byte(p))
	}

	assert.Empty(t, store.rows)
	assert.Empty(t, cache.entries)
}

func TestHandleMessageHistoryFailureKeepsCacheWrite(t *testing.T) {
	c, cache, store := newTestConsumer()
	store.appendErr = errors.New("disk full")

	c.handleMessage(t.Context(), "fleet/v1/locations",
		[]byte(`{"vehicle_id":"v1","latitude":1,"longitude":2,"timestamp":100}`))

	// The writes are independent: cache succeeded, history did not, and the
	// handler returned normally so the message is acknowledged either way.
	assert.Empty(t, store.rows)
	_, err := cache.Get(t.Context(), core.CacheKey("v1"))
	assert.NoError(t, err)
}

func TestHandleMessageCacheFailureKeepsHistoryWrite(t *testing.T) {
	c, cache, store := newTestConsumer()
	cache.setErr = errors.New("connection refused")

	c.handleMessage(t.Context(), "fleet/v1/locations",
		[]byte(`{"vehicle_id":"v1","latitude":1,"longitude":2,"timestamp":100}`))

	require.Len(t, store.rows, 1)
}
