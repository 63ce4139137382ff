package service

import (
	"context"

	"github.com/nexus-logistics/tracking-service/internal/pkg/metrics"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/log"
)

// LiveAll composes the aggregated fleet snapshot: cached real vehicles, the
// external aircraft feed, and the synthetic ground fleets, in that order.
// Categories are computed independently; a failing category degrades to an
// empty or fallback list and never aborts the others. The snapshot is
// ephemeral and recomputed per call.
func (s *Service) LiveAll(ctx context.Context) []model.Report {
	out := make([]model.Report, 0, 64)

	cached, err := s.ListAll(ctx)
	if err != nil {
		log.Warn("Cached category unavailable, continuing without it", "error", err)
		cached = nil
	}
	for _, r := range cached {
		if r.Type == "" {
			r.Type = model.CategoryTruck
		}
		out = append(out, r)
	}

	out = append(out, s.fetchAircraft(ctx, s.liveFeedCap)...)
	out = append(out, syntheticTrucks(truckHubs)...)
	out = append(out, syntheticBuses(busRoutes)...)

	return out
}

// LiveAircraft serves the aircraft category on its own, uncapped beyond what
// the feed adapter already enforces.
func (s *Service) LiveAircraft(ctx context.Context) []model.Report {
	return s.fetchAircraft(ctx, 0)
}

// LiveTrucks serves the full synthetic distribution-hub roster.
func (s *Service) LiveTrucks() []model.Report {
	return syntheticTrucks(distributionHubs)
}

// LiveBuses serves the full synthetic transit-route roster.
func (s *Service) LiveBuses() []model.Report {
	return syntheticBuses(transitRoutes)
}

// fetchAircraft runs the external feed call under its deadline and applies
// the fallback policy: any error OR an empty qualifying result substitutes
// the fixed synthetic flight roster. The caller can further cap the result
// with limit > 0.
func (s *Service) fetchAircraft(ctx context.Context, limit int) []model.Report {
	fctx, cancel := context.WithTimeout(ctx, s.feedTimeout)
	defer cancel()

	reports, err := s.feed.Fetch(fctx)
	switch {
	case err != nil:
		metrics.FeedRequests.WithLabelValues("failure").Inc()
		log.Warn("Aircraft feed failed, serving fallback roster", "error", err)
		return fallbackAircraft()
	case len(reports) == 0:
		// Empty success is treated exactly like a failure.
		metrics.FeedRequests.WithLabelValues("empty").Inc()
		log.Debug("Aircraft feed returned no qualifying states, serving fallback roster")
		return fallbackAircraft()
	}
	metrics.FeedRequests.WithLabelValues("success").Inc()

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	out := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		r.Type = model.CategoryAircraft
		r.Source = model.SourceReal
		out = append(out, r)
	}
	return out
}
