package core

import (
	"context"
	"strings"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

// CacheKeyPrefix namespaces all latest-state entries.
const CacheKeyPrefix = "vehicle:"

const cacheKeySuffix = ":latest"

// LatestTTL is the retention window for a latest-state entry; it is reset on
// every write.
const LatestTTL = 24 * time.Hour

// CacheKey returns the latest-state key for a vehicle: "vehicle:{id}:latest".
func CacheKey(vehicleID string) string {
	return CacheKeyPrefix + vehicleID + cacheKeySuffix
}

// VehicleIDFromKey reverses CacheKey. The bool is false for keys that do not
// carry the expected shape.
func VehicleIDFromKey(key string) (string, bool) {
	if len(key) < len(CacheKeyPrefix)+len(cacheKeySuffix) {
		return "", false
	}
	if !strings.HasPrefix(key, CacheKeyPrefix) || !strings.HasSuffix(key, cacheKeySuffix) {
		return "", false
	}
	id := key[len(CacheKeyPrefix) : len(key)-len(cacheKeySuffix)]
	return id, id != ""
}

// LatestStateCache is the latest-state store: one entry per vehicle, bounded
// by a TTL the cache itself enforces. This core never scans for expired
// entries; a Get after the TTL simply reports ErrNotFound.
type LatestStateCache interface {
	// Set upserts the entry, unconditionally replacing any prior value and
	// resetting the TTL. There is no timestamp comparison: the last write
	// processed wins even if it carries an older reported timestamp.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the entry value, or ErrNotFound when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// ListKeysByPrefix enumerates keys. The result is a snapshot
	// approximation: entries can expire or be replaced between the scan and
	// any subsequent Get.
	ListKeysByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// HistoryStore is the append-only durable record of every ingested report.
type HistoryStore interface {
	// Append inserts one row. Failures propagate to the caller and are never
	// retried here. There is no uniqueness constraint, so redelivered
	// messages produce duplicate rows.
	Append(ctx context.Context, r *model.Report) error

	// GetLatestByKey returns the max-timestamp row for the vehicle, or
	// ErrNotFound when no rows exist.
	GetLatestByKey(ctx context.Context, vehicleID string) (*model.Report, error)
}

// FeedSource fetches vehicle reports from an external telemetry provider.
// Implementations must honor the context deadline; callers treat any error
// as "feed unavailable" and fall back.
type FeedSource interface {
	Fetch(ctx context.Context) ([]model.Report, error)
}
