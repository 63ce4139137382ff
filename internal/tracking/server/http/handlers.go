package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/log"
)

const healthCheckTimeout = 2 * time.Second

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(err, "Failed to encode response body")
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) handleTracking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["vehicleId"]

	report, err := s.svc.GetLatest(r.Context(), id)
	var verr *model.ValidationError
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, report)
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "vehicle not found")
	default:
		log.Error(err, "Failed to resolve latest location", "vehicleID", id)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	reports, err := s.svc.ListAll(r.Context())
	if err != nil {
		log.Error(err, "Failed to list tracked vehicles")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (s *Server) handleLiveAll(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.LiveAll(r.Context()))
}

func (s *Server) handleLiveAircraft(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.LiveAircraft(r.Context()))
}

func (s *Server) handleLiveTrucks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.LiveTrucks())
}

func (s *Server) handleLiveBuses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.LiveBuses())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := "UP"
	components := make(map[string]string, len(s.health))
	for name, check := range s.health {
		if err := check(ctx); err != nil {
			components[name] = err.Error()
			status = "DEGRADED"
			continue
		}
		components[name] = "UP"
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"components": components,
	})
}
