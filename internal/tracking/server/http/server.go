package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexus-logistics/tracking-service/internal/pkg/metrics"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/service"
	"github.com/nexus-logistics/tracking-service/pkg/log"
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

// HealthCheck reports whether a single backing component is reachable.
type HealthCheck func(ctx context.Context) error

// Server exposes the tracking query API over HTTP.
type Server struct {
	server *http.Server
	router *mux.Router
	svc    *service.Service
	health map[string]HealthCheck
}

// NewServer builds the HTTP server with all routes registered.
func NewServer(opts *options.HttpOptions, svc *service.Service, health map[string]HealthCheck) *Server {
	s := &Server{
		router: mux.NewRouter(),
		svc:    svc,
		health: health,
	}
	s.installRoutes()

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the route handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) installRoutes() {
	s.router.Use(s.metricsMiddleware)

	s.router.HandleFunc("/tracking/{vehicleId}", s.handleTracking).Methods(http.MethodGet)
	s.router.HandleFunc("/vehicles", s.handleVehicles).Methods(http.MethodGet)
	s.router.HandleFunc("/live/all", s.handleLiveAll).Methods(http.MethodGet)
	s.router.HandleFunc("/live/aircraft", s.handleLiveAircraft).Methods(http.MethodGet)
	s.router.HandleFunc("/live/trucks", s.handleLiveTrucks).Methods(http.MethodGet)
	s.router.HandleFunc("/live/buses", s.handleLiveBuses).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("HTTP server shutting down")
		return s.server.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
