package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/pkg/metrics"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

// Config tunes the parts of the service that are not adapter concerns.
type Config struct {
	// FeedTimeout is the hard deadline for the external feed call inside
	// aggregation. Zero means 5s.
	FeedTimeout time.Duration

	// LiveFeedCap truncates the aircraft category of the aggregated view.
	// Zero means 50.
	LiveFeedCap int
}

// Service is the core of the tracking pipeline: ingestion writes, cache-aside
// reads and the live fleet aggregation. It owns no I/O itself; everything
// goes through the injected ports.
type Service struct {
	cache core.LatestStateCache
	store core.HistoryStore
	feed  core.FeedSource

	feedTimeout time.Duration
	liveFeedCap int
}

// New wires a Service from its ports.
func New(cache core.LatestStateCache, store core.HistoryStore, feed core.FeedSource, cfg Config) *Service {
	if cfg.FeedTimeout == 0 {
		cfg.FeedTimeout = 5 * time.Second
	}
	if cfg.LiveFeedCap == 0 {
		cfg.LiveFeedCap = 50
	}

	return &Service{
		cache:       cache,
		store:       store,
		feed:        feed,
		feedTimeout: cfg.FeedTimeout,
		liveFeedCap: cfg.LiveFeedCap,
	}
}

// IngestResult reports the outcome of the two independent writes an ingest
// performs. The writes share no transaction: one side failing while the
// other succeeds is an accepted divergence (cache is "latest, maybe not
// durable"; history is "durable, maybe momentarily stale"), repaired by the
// next successful ingest.
type IngestResult struct {
	CacheErr error
	StoreErr error
}

// Ok reports whether both writes succeeded.
func (r IngestResult) Ok() bool {
	return r.CacheErr == nil && r.StoreErr == nil
}

// Ingest performs the dual write for one validated report: latest-state
// upsert with a fresh TTL, then a history append. Both writes are always
// attempted; neither is retried.
func (s *Service) Ingest(ctx context.Context, r *model.Report) IngestResult {
	if r.Timestamp == 0 {
		stamped := *r
		stamped.Timestamp = time.Now().Unix()
		r = &stamped
	}

	var res IngestResult

	value, err := json.Marshal(r)
	if err != nil {
		// A validated report always marshals; this guards programmer error.
		res.CacheErr = fmt.Errorf("marshal report: %w", err)
	} else {
		res.CacheErr = s.cache.Set(ctx, core.CacheKey(r.VehicleID), value, core.LatestTTL)
	}
	if res.CacheErr != nil {
		metrics.CacheWriteErrors.Inc()
	}

	res.StoreErr = s.store.Append(ctx, r)
	if res.StoreErr != nil {
		metrics.HistoryWriteErrors.Inc()
	}

	return res
}
