package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

var _ core.FeedSource = (*OpenSky)(nil)

// OpenSky state-vector indices. The API returns each aircraft as a bare
// array: [icao24, callsign, origin_country, time_position, last_contact,
// longitude, latitude, baro_altitude, on_ground, velocity, ...].
const (
	stateIcao24      = 0
	stateCallsign    = 1
	stateLastContact = 4
	stateLongitude   = 5
	stateLatitude    = 6
	stateAltitude    = 7
	stateOnGround    = 8
	stateVelocity    = 9
)

// OpenSky fetches live aircraft positions from an OpenSky-compatible
// states/all endpoint, scoped to a fixed bounding box. Every request honors
// the caller's context deadline on top of the client timeout; the caller
// treats any error as "feed unavailable".
type OpenSky struct {
	queryURL        string
	maxResults      int
	excludeOnGround bool
	httpClient      *http.Client
}

// New builds the feed source from its options.
func New(opts *options.FeedOptions) *OpenSky {
	q := url.Values{}
	q.Set("lamin", formatCoord(opts.LatMin))
	q.Set("lomin", formatCoord(opts.LonMin))
	q.Set("lamax", formatCoord(opts.LatMax))
	q.Set("lomax", formatCoord(opts.LonMax))

	return &OpenSky{
		queryURL:        opts.BaseURL + "?" + q.Encode(),
		maxResults:      opts.MaxResults,
		excludeOnGround: opts.ExcludeOnGround,
		httpClient:      &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch returns the qualifying aircraft inside the bounding box: entries
// with a usable position, optionally airborne only, capped at maxResults.
func (f *OpenSky) Fetch(ctx context.Context) ([]model.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.queryURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed http status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Time   int64   `json:"time"`
		States [][]any `json:"states"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("feed payload: %w", err)
	}

	now := time.Now().Unix()
	reports := make([]model.Report, 0, min(len(payload.States), f.maxResults))
	for _, state := range payload.States {
		lon, lonOK := floatAt(state, stateLongitude)
		lat, latOK := floatAt(state, stateLatitude)
		if !lonOK || !latOK {
			continue
		}
		if f.excludeOnGround && boolAt(state, stateOnGround) {
			continue
		}

		callsign := strings.TrimSpace(stringAt(state, stateCallsign))
		id := callsign
		if id == "" {
			id = stringAt(state, stateIcao24)
			callsign = "N/A"
		}
		if id == "" {
			continue
		}

		ts := now
		if lastContact, ok := floatAt(state, stateLastContact); ok && lastContact > 0 {
			ts = int64(lastContact)
		}

		altitude, _ := floatAt(state, stateAltitude)
		velocity, _ := floatAt(state, stateVelocity)

		reports = append(reports, model.Report{
			VehicleID: "aircraft-" + id,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: ts,
			Type:      model.CategoryAircraft,
			Callsign:  callsign,
			Altitude:  altitude,
			Velocity:  velocity,
		})
		if len(reports) >= f.maxResults {
			break
		}
	}

	return reports, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatAt(state []any, i int) (float64, bool) {
	if i >= len(state) {
		return 0, false
	}
	v, ok := state[i].(float64)
	return v, ok
}

func stringAt(state []any, i int) string {
	if i >= len(state) {
		return ""
	}
	s, _ := state[i].(string)
	return s
}

func boolAt(state []any, i int) bool {
	if i >= len(state) {
		return false
	}
	b, _ := state[i].(bool)
	return b
}
