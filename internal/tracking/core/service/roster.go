package service

import (
	"math/rand/v2"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

// Jitter bounds, in degrees, applied to synthetic entries on every request
// so the fleet view stays visually alive. Each bound is the maximum absolute
// offset from the reference coordinate.
const (
	AircraftJitterDeg = 0.1
	TruckJitterDeg    = 0.02
	BusJitterDeg      = 0.001
)

type refPoint struct {
	id    string
	label string
	lat   float64
	lon   float64
}

// fallbackFlights is the fixed roster substituted when the external aircraft
// feed is down or empty: major-hub flights across the continental US.
var fallbackFlights = []refPoint{
	{id: "UAL123", lat: 40.7128, lon: -74.0060},
	{id: "AAL456", lat: 33.9425, lon: -118.4080},
	{id: "DAL789", lat: 41.8781, lon: -87.6298},
	{id: "SWA101", lat: 32.8998, lon: -97.0403},
	{id: "JBU202", lat: 42.3656, lon: -71.0096},
	{id: "FFT303", lat: 33.6407, lon: -84.4277},
	{id: "UAL404", lat: 37.6213, lon: -122.3790},
	{id: "AAL505", lat: 47.4502, lon: -122.3090},
	{id: "DAL606", lat: 39.8561, lon: -104.6740},
	{id: "SWA707", lat: 25.7959, lon: -80.2870},
	{id: "ASA808", lat: 33.4373, lon: -112.0080},
	{id: "UAL909", lat: 38.8512, lon: -77.0402},
	{id: "FDX001", lat: 35.0421, lon: -89.9792},
	{id: "UPS002", lat: 38.1740, lon: -85.7364},
}

// truckHubs is the compact hub roster used inside the aggregated view.
var truckHubs = []refPoint{
	{id: "truck-la", label: "Los Angeles", lat: 34.0522, lon: -118.2437},
	{id: "truck-sf", label: "San Francisco", lat: 37.7749, lon: -122.4194},
	{id: "truck-sea", label: "Seattle", lat: 47.6062, lon: -122.3321},
	{id: "truck-den", label: "Denver", lat: 39.7392, lon: -104.9903},
	{id: "truck-dal", label: "Dallas", lat: 32.7767, lon: -96.7970},
	{id: "truck-chi", label: "Chicago", lat: 41.8781, lon: -87.6298},
	{id: "truck-nyc", label: "New York", lat: 40.7128, lon: -74.0060},
	{id: "truck-atl", label: "Atlanta", lat: 33.7490, lon: -84.3880},
	{id: "truck-mia", label: "Miami", lat: 25.7617, lon: -80.1918},
	{id: "truck-bos", label: "Boston", lat: 42.3601, lon: -71.0589},
}

// distributionHubs is the full per-category roster served by /live/trucks.
var distributionHubs = []refPoint{
	{id: "truck-la-01", label: "Los Angeles", lat: 34.0522, lon: -118.2437},
	{id: "truck-la-02", label: "Los Angeles", lat: 33.9425, lon: -118.4081},
	{id: "truck-sf-01", label: "San Francisco", lat: 37.7749, lon: -122.4194},
	{id: "truck-sea-01", label: "Seattle", lat: 47.6062, lon: -122.3321},
	{id: "truck-phx-01", label: "Phoenix", lat: 33.4484, lon: -112.0740},
	{id: "truck-den-01", label: "Denver", lat: 39.7392, lon: -104.9903},
	{id: "truck-slc-01", label: "Salt Lake City", lat: 40.7608, lon: -111.8910},
	{id: "truck-dal-01", label: "Dallas", lat: 32.7767, lon: -96.7970},
	{id: "truck-hou-01", label: "Houston", lat: 29.7604, lon: -95.3698},
	{id: "truck-chi-01", label: "Chicago", lat: 41.8781, lon: -87.6298},
	{id: "truck-chi-02", label: "Chicago", lat: 41.8527, lon: -87.6180},
	{id: "truck-kc-01", label: "Kansas City", lat: 39.0997, lon: -94.5786},
	{id: "truck-mem-01", label: "Memphis", lat: 35.1495, lon: -90.0490},
	{id: "truck-nyc-01", label: "New York", lat: 40.7128, lon: -74.0060},
	{id: "truck-nyc-02", label: "New York", lat: 40.7589, lon: -73.9851},
	{id: "truck-bos-01", label: "Boston", lat: 42.3601, lon: -71.0589},
	{id: "truck-phi-01", label: "Philadelphia", lat: 39.9526, lon: -75.1652},
	{id: "truck-atl-01", label: "Atlanta", lat: 33.7490, lon: -84.3880},
	{id: "truck-atl-02", label: "Atlanta", lat: 33.6407, lon: -84.4277},
	{id: "truck-mia-01", label: "Miami", lat: 25.7617, lon: -80.1918},
	{id: "truck-dc-01", label: "Washington DC", lat: 38.9072, lon: -77.0369},
}

// busRoutes is the compact roster used inside the aggregated view. The
// coordinates are real MUNI/AC Transit street positions.
var busRoutes = []refPoint{
	{id: "muni-14-001", label: "14-Mission", lat: 37.7599, lon: -122.4194},
	{id: "muni-38-001", label: "38-Geary", lat: 37.7854, lon: -122.4195},
	{id: "act-51a-001", label: "51A-Broadway", lat: 37.8044, lon: -122.2712},
	{id: "act-72-001", label: "72-MLK", lat: 37.8716, lon: -122.2727},
}

// transitRoutes is the full per-category roster served by /live/buses.
var transitRoutes = []refPoint{
	{id: "muni-14-001", label: "14-Mission", lat: 37.7599, lon: -122.4194},
	{id: "muni-14-002", label: "14-Mission", lat: 37.7521, lon: -122.4182},
	{id: "muni-38-001", label: "38-Geary", lat: 37.7854, lon: -122.4195},
	{id: "muni-38-002", label: "38-Geary", lat: 37.7814, lon: -122.4589},
	{id: "muni-49-001", label: "49-Van Ness", lat: 37.7749, lon: -122.4194},
	{id: "act-51a-001", label: "51A-Broadway", lat: 37.8044, lon: -122.2712},
	{id: "act-51a-002", label: "51A-Broadway", lat: 37.8256, lon: -122.2621},
	{id: "act-72-001", label: "72-MLK", lat: 37.8716, lon: -122.2727},
	{id: "bart-bus-001", label: "BART-Shuttle", lat: 37.8044, lon: -122.2711},
	{id: "samtrans-001", label: "SamTrans-292", lat: 37.5548, lon: -122.2717},
}

// jitter returns a uniform offset in [-bound, bound].
func jitter(bound float64) float64 {
	return (rand.Float64()*2 - 1) * bound
}

// fallbackAircraft materializes the synthetic flight roster with fresh
// jitter and cruise altitudes.
func fallbackAircraft() []model.Report {
	now := time.Now().Unix()
	out := make([]model.Report, 0, len(fallbackFlights))
	for _, f := range fallbackFlights {
		out = append(out, model.Report{
			VehicleID: "aircraft-" + f.id,
			Latitude:  f.lat + jitter(AircraftJitterDeg),
			Longitude: f.lon + jitter(AircraftJitterDeg),
			Timestamp: now,
			Type:      model.CategoryAircraft,
			Callsign:  f.id,
			Altitude:  30000 + rand.Float64()*10000,
			Source:    model.SourceSynthetic,
		})
	}
	return out
}

func syntheticTrucks(roster []refPoint) []model.Report {
	now := time.Now().Unix()
	out := make([]model.Report, 0, len(roster))
	for _, hub := range roster {
		out = append(out, model.Report{
			VehicleID: hub.id,
			Latitude:  hub.lat + jitter(TruckJitterDeg),
			Longitude: hub.lon + jitter(TruckJitterDeg),
			Timestamp: now,
			Type:      model.CategoryTruck,
			City:      hub.label,
			Source:    model.SourceSynthetic,
		})
	}
	return out
}

func syntheticBuses(roster []refPoint) []model.Report {
	now := time.Now().Unix()
	out := make([]model.Report, 0, len(roster))
	for _, route := range roster {
		out = append(out, model.Report{
			VehicleID: route.id,
			Latitude:  route.lat + jitter(BusJitterDeg),
			Longitude: route.lon + jitter(BusJitterDeg),
			Timestamp: now,
			Type:      model.CategoryBus,
			Route:     route.label,
			Source:    model.SourceSynthetic,
		})
	}
	return out
}
