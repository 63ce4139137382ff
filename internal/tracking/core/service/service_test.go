package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

func TestIngestDualWrite(t *testing.T) {
	cache := newMemCache()
	store := newMemStore()
	svc := newTestService(cache, store, &stubFeed{})

	r := &model.Report{VehicleID: "v1", Latitude: 41.8, Longitude: -87.6, Timestamp: 100}
	res := svc.Ingest(t.Context(), r)
	require.True(t, res.Ok())

	value, err := cache.Get(t.Context(), core.CacheKey("v1"))
	require.NoError(t, err)

	var cached model.Report
	require.NoError(t, json.Unmarshal(value, &cached))
	assert.Equal(t, *r, cached)
	assert.Equal(t, core.LatestTTL, cache.ttls[core.CacheKey("v1")])

	assert.Equal(t, 1, store.count("v1"))
}

func TestIngestStampsMissingTimestamp(t *testing.T) {
	cache := newMemCache()
	store := newMemStore()
	svc := newTestService(cache, store, &stubFeed{})

	before := time.Now().Unix()
	res := svc.Ingest(t.Context(), &model.Report{VehicleID: "v1", Latitude: 1, Longitude: 2})
	require.True(t, res.Ok())

	got, err := store.GetLatestByKey(t.Context(), "v1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Timestamp, before)
}

func TestIngestRedeliveryAppendsDuplicateRows(t *testing.T) {
	cache := newMemCache()
	store := newMemStore()
	svc := newTestService(cache, store, &stubFeed{})

	r := &model.Report{VehicleID: "v1", Latitude: 1, Longitude: 2, Timestamp: 100}
	require.True(t, svc.Ingest(t.Context(), r).Ok())
	require.True(t, svc.Ingest(t.Context(), r).Ok())

	// The cache deduplicates by key, history does not.
	assert.Equal(t, 1, cache.len())
	assert.Equal(t, 2, store.count("v1"))
}

func TestIngestLastProcessedWins(t *testing.T) {
	cache := newMemCache()
	store := newMemStore()
	svc := newTestService(cache, store, &stubFeed{})

	newer := &model.Report{VehicleID: "v1", Latitude: 1, Longitude: 1, Timestamp: 100}
	older := &model.Report{VehicleID: "v1", Latitude: 2, Longitude: 2, Timestamp: 50}
	require.True(t, svc.Ingest(t.Context(), newer).Ok())
	require.True(t, svc.Ingest(t.Context(), older).Ok())

	// The cache holds whatever was processed last, even when its reported
	// timestamp is older.
	value, err := cache.Get(t.Context(), core.CacheKey("v1"))
	require.NoError(t, err)

	var cached model.Report
	require.NoError(t, json.Unmarshal(value, &cached))
	assert.Equal(t, int64(50), cached.Timestamp)
	assert.Equal(t, 2.0, cached.Latitude)
}

func TestIngestCacheFailureStillAppendsHistory(t *testing.T) {
	cache := newMemCache()
	cache.setErr = errors.New("connection refused")
	store := newMemStore()
	svc := newTestService(cache, store, &stubFeed{})

	res := svc.Ingest(t.Context(), &model.Report{VehicleID: "v1", Latitude: 1, Longitude: 2, Timestamp: 100})

	assert.Error(t, res.CacheErr)
	assert.NoError(t, res.StoreErr)
	assert.Equal(t, 1, store.count("v1"), "history write must not depend on the cache write")
}

func TestIngestHistoryFailureLeavesCacheWritten(t *testing.T) {
	cache := newMemCache()
	store := newMemStore()
	store.appendErr = errors.New("disk full")
	svc := newTestService(cache, store, &stubFeed{})

	res := svc.Ingest(t.Context(), &model.Report{VehicleID: "v1", Latitude: 1, Longitude: 2, Timestamp: 100})

	assert.NoError(t, res.CacheErr)
	assert.Error(t, res.StoreErr)
	assert.Equal(t, 1, cache.len(), "cache write is kept even when the history append fails")
}
