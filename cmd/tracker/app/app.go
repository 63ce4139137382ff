// Package app builds the tracker command.
package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/nexus-logistics/tracking-service/cmd/tracker/app/options"
	"github.com/nexus-logistics/tracking-service/pkg/app"
	"github.com/nexus-logistics/tracking-service/pkg/log"
)

const description = `The tracker consumes vehicle position reports from the broker,
maintains the latest known location per vehicle in the cache alongside a
full location history, and serves the tracking query API over HTTP.`

// NewTrackerCommand creates the tracker application.
func NewTrackerCommand() *app.App {
	opts := options.NewTrackerOptions()

	return app.NewApp("tracker", "Vehicle location tracking service",
		app.WithDescription(description),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return run(opts)
		}),
	)
}

func run(opts *options.TrackerOptions) error {
	log.Init(opts.Log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := opts.Config().NewTrackingServer()
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
