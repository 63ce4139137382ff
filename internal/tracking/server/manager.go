package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nexus-logistics/tracking-service/pkg/log"
)

// Server is the common interface for the long-running parts of the service
// (ingestion consumer, HTTP API).
type Server interface {
	Start(ctx context.Context) error
}

// Manager runs a set of servers in parallel and stops all of them when one
// fails or the context is cancelled.
type Manager struct {
	servers []Server
}

// NewManager creates a manager over the given servers.
func NewManager(servers ...Server) *Manager {
	return &Manager{servers: servers}
}

// Start launches all servers and waits for termination.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range m.servers {
		g.Go(func() error {
			return s.Start(ctx)
		})
	}

	log.Info("All servers starting...")
	return g.Wait()
}
