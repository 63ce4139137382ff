package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nexus-logistics/tracking-service/internal/pkg/metrics"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/log"
)

// GetLatest resolves the most recent report for one vehicle, cache first.
//
// On a cache miss the history store is consulted and, when it has a row, the
// entry is written back into the cache with a fresh TTL so the next read is
// served hot again. A vehicle unknown to both sides yields core.ErrNotFound.
func (s *Service) GetLatest(ctx context.Context, vehicleID string) (*model.Report, error) {
	if err := model.ValidateVehicleID(vehicleID); err != nil {
		return nil, err
	}

	key := core.CacheKey(vehicleID)

	value, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var r model.Report
		if uerr := json.Unmarshal(value, &r); uerr == nil {
			metrics.CacheHits.Inc()
			r.Source = model.SourceReal
			return &r, nil
		}
		// Undecodable entry: treat as a miss and let the store repair it.
		log.Warn("Discarding undecodable cache entry", "key", key)
	case errors.Is(err, core.ErrNotFound):
		// fall through to the store
	default:
		return nil, fmt.Errorf("%w: cache get %s: %v", core.ErrUnavailable, key, err)
	}
	metrics.CacheMisses.Inc()

	r, err := s.store.GetLatestByKey(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("%w: history lookup %s: %v", core.ErrUnavailable, vehicleID, err)
	}

	// Write-back on miss. Best effort: a failure here only costs the next
	// read another store round trip.
	if value, merr := json.Marshal(r); merr == nil {
		if serr := s.cache.Set(ctx, key, value, core.LatestTTL); serr != nil {
			log.Warn("Cache write-back failed", "key", key, "error", serr)
		}
	}

	r.Source = model.SourceReal
	return r, nil
}

// ListAll enumerates the currently cached vehicles. The listing is a
// snapshot approximation: a key that expires between the scan and its fetch
// is silently dropped, never an error. Vehicles whose cache entry has
// expired are omitted even when history still has rows for them.
func (s *Service) ListAll(ctx context.Context) ([]model.Report, error) {
	keys, err := s.cache.ListKeysByPrefix(ctx, core.CacheKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: cache scan: %v", core.ErrUnavailable, err)
	}

	reports := make([]model.Report, 0, len(keys))
	for _, key := range keys {
		// The prefix scan can surface foreign keys sharing the namespace;
		// only well-formed latest-state keys qualify.
		if _, ok := core.VehicleIDFromKey(key); !ok {
			log.Warn("Skipping cache key outside the latest-state shape", "key", key)
			continue
		}

		value, err := s.cache.Get(ctx, key)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue // expired between scan and fetch
			}
			return nil, fmt.Errorf("%w: cache get %s: %v", core.ErrUnavailable, key, err)
		}

		var r model.Report
		if err := json.Unmarshal(value, &r); err != nil {
			log.Warn("Skipping undecodable cache entry", "key", key)
			continue
		}
		r.Source = model.SourceReal
		reports = append(reports, r)
	}

	return reports, nil
}
