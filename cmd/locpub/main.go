// The locpub tool publishes synthetic vehicle position reports to the
// broker. It simulates a small fleet doing a random walk, which is handy
// for exercising the tracker end to end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/log"
	"github.com/nexus-logistics/tracking-service/pkg/mqtt"
)

const stepDeg = 0.001

type fleet struct {
	reports []model.Report
}

// newFleet seeds the simulated vehicles around downtown Chicago.
func newFleet(size int) *fleet {
	f := &fleet{reports: make([]model.Report, size)}
	for i := range f.reports {
		f.reports[i] = model.Report{
			VehicleID: fmt.Sprintf("sim-truck-%03d", i+1),
			Type:      model.CategoryTruck,
			Latitude:  41.8781 + (rand.Float64()*2-1)*0.05,
			Longitude: -87.6298 + (rand.Float64()*2-1)*0.05,
		}
	}
	return f
}

// step advances every vehicle one random-walk step and returns the fleet.
func (f *fleet) step() []model.Report {
	now := time.Now().Unix()
	for i := range f.reports {
		f.reports[i].Latitude += (rand.Float64()*2 - 1) * stepDeg
		f.reports[i].Longitude += (rand.Float64()*2 - 1) * stepDeg
		f.reports[i].Timestamp = now
	}
	return f.reports
}

func main() {
	broker := pflag.String("broker", "tcp://localhost:1883", "MQTT broker URL.")
	topic := pflag.String("topic", "fleet/v1/locations", "Topic to publish position reports to.")
	clientID := pflag.String("client-id", "locpub", "MQTT client ID.")
	vehicles := pflag.Int("vehicles", 5, "Number of simulated vehicles.")
	interval := pflag.Duration("interval", 2*time.Second, "Publish interval per round.")
	pflag.Parse()

	if err := run(*broker, *topic, *clientID, *vehicles, *interval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(broker, topic, clientID string, vehicles int, interval time.Duration) error {
	log.Init(log.NewOptions())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mqtt.NewClient(&mqtt.ClientConfig{
		BrokerURL: broker,
		ClientID:  clientID,
		KeepAlive: 60,
	})
	if err != nil {
		return err
	}

	if err := client.Start(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(shutdownCtx)
	}()

	if err := client.AwaitConnection(ctx); err != nil {
		return err
	}
	log.Info("Connected to broker", "broker", broker, "topic", topic)

	f := newFleet(vehicles)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, r := range f.step() {
				payload, err := json.Marshal(r)
				if err != nil {
					log.Error(err, "Failed to marshal report", "vehicleID", r.VehicleID)
					continue
				}
				if err := client.Publish(ctx, topic, 1, false, payload); err != nil {
					log.Error(err, "Failed to publish report", "vehicleID", r.VehicleID)
				}
			}
			log.Debug("Published round", "vehicles", vehicles)
		case <-ctx.Done():
			log.Info("Shutting down")
			return nil
		}
	}
}
