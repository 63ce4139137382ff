package tracking

import (
	"context"
	"fmt"
	"io"

	"github.com/nexus-logistics/tracking-service/internal/tracking/cache"
	"github.com/nexus-logistics/tracking-service/internal/tracking/consumer"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/service"
	"github.com/nexus-logistics/tracking-service/internal/tracking/feed"
	"github.com/nexus-logistics/tracking-service/internal/tracking/server"
	httpserver "github.com/nexus-logistics/tracking-service/internal/tracking/server/http"
	"github.com/nexus-logistics/tracking-service/internal/tracking/store"
	"github.com/nexus-logistics/tracking-service/pkg/log"
	"github.com/nexus-logistics/tracking-service/pkg/mqtt"
)

// TrackingServer binds the adapters, service and ingress servers together.
type TrackingServer struct {
	manager *server.Manager
	closers []io.Closer
}

// NewTrackingServer wires the full pipeline from configuration. It connects
// to the cache and history store eagerly; failures there are fatal.
func (c *Config) NewTrackingServer() (*TrackingServer, error) {
	latestCache, err := cache.New(c.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect cache: %w", err)
	}

	historyStore, err := store.New(c.Sqlite)
	if err != nil {
		latestCache.Close()
		return nil, fmt.Errorf("open history store: %w", err)
	}

	feedSource := feed.New(c.Feed)

	svc := service.New(latestCache, historyStore, feedSource, service.Config{
		FeedTimeout: c.Feed.Timeout,
	})

	mqttClient, err := mqtt.NewClient(c.Mqtt.ToClientConfig())
	if err != nil {
		latestCache.Close()
		historyStore.Close()
		return nil, fmt.Errorf("create mqtt client: %w", err)
	}

	ingestConsumer := consumer.New(mqttClient, svc, c.Mqtt.Topic, c.Mqtt.Group)

	apiServer := httpserver.NewServer(c.Http, svc, map[string]httpserver.HealthCheck{
		"cache":   latestCache.Ping,
		"history": historyStore.Ping,
	})

	return &TrackingServer{
		manager: server.NewManager(ingestConsumer, apiServer),
		closers: []io.Closer{latestCache, historyStore},
	}, nil
}

// Run starts all servers and blocks until the context is cancelled or a
// server fails, then releases the backing connections.
func (s *TrackingServer) Run(ctx context.Context) error {
	defer func() {
		for _, c := range s.closers {
			if err := c.Close(); err != nil {
				log.Error(err, "Failed to close backing connection")
			}
		}
	}()

	return s.manager.Start(ctx)
}
