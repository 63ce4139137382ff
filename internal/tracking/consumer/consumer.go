package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/pkg/metrics"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/service"
	"github.com/nexus-logistics/tracking-service/pkg/log"
	"github.com/nexus-logistics/tracking-service/pkg/mqtt"
)

const qosAtLeastOnce = 1

// Consumer subscribes to the position-report topic and feeds each message
// through decode, validation and the dual write. Messages are processed one
// at a time per connection; the broker acknowledgement is released only
// after the handler returns, so a crash mid-message causes redelivery
// rather than loss.
type Consumer struct {
	client mqtt.Client
	svc    *service.Service
	topic  string
	group  string
}

// New creates a Consumer for the given topic. A non-empty group makes the
// subscription shared so replicas split the stream.
func New(client mqtt.Client, svc *service.Service, topic, group string) *Consumer {
	return &Consumer{
		client: client,
		svc:    svc,
		topic:  topic,
		group:  group,
	}
}

// Start connects, subscribes and blocks until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.client.Start(ctx); err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.client.Disconnect(shutdownCtx)
	}()

	log.Info("Waiting for broker connection...")
	if err := c.client.AwaitConnection(ctx); err != nil {
		return err
	}

	filter := mqtt.SharedTopic(c.group, c.topic)
	if err := c.client.Subscribe(ctx, filter, qosAtLeastOnce, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", filter, err)
	}
	log.Info("Ingestion consumer running", "topic", c.topic, "group", c.group)

	<-ctx.Done()
	return nil
}

// handleMessage processes one stream message. No outcome is fatal to the
// loop: malformed or invalid payloads are dropped and a failed write is
// logged and skipped, never retried inline, so one bad message cannot stall
// the stream.
func (c *Consumer) handleMessage(ctx context.Context, _ string, payload []byte) {
	r, err := model.DecodeReport(payload)
	if err != nil {
		reason := "malformed"
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			reason = "invalid"
		}
		metrics.IngestDropped.WithLabelValues(reason).Inc()
		log.Warn("Dropping position report", "reason", reason, "error", err)
		return
	}

	metrics.IngestProcessed.Inc()

	res := c.svc.Ingest(ctx, r)
	if res.CacheErr != nil {
		log.Error(res.CacheErr, "Latest-state write failed; cache lags history until the next ingest",
			"vehicleID", r.VehicleID)
	}
	if res.StoreErr != nil {
		log.Error(res.StoreErr, "History append failed; cache is ahead of history until the next ingest",
			"vehicleID", r.VehicleID)
	}
}
